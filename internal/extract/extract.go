package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/hirelink/hirelink/internal/config"
)

// Extractor turns an uploaded resume document into plain text plus a small
// metadata map describing the extraction.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader, filename string) (string, map[string]interface{}, error)
}

type Factory func(args interface{}) (Extractor, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registryMu.Lock()
	registry[key] = factory
	registryMu.Unlock()
}

func New(cfg config.ExtractorConfig) (Extractor, error) {
	key := strings.ToLower(strings.TrimSpace(cfg.Type))
	if key == "" {
		return nil, fmt.Errorf("extractor.type is required")
	}
	registryMu.RLock()
	factory := registry[key]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("unsupported extractor type: %s", cfg.Type)
	}
	return factory(cfg.Data)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("extractor config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode extractor config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode extractor config: %w", err)
	}
	return nil
}
