package extract

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

func init() {
	Register("plain", func(args interface{}) (Extractor, error) {
		return &plainExtractor{}, nil
	})
}

// plainExtractor reads the document as UTF-8 text. It is the fallback for
// .txt uploads and for environments without a Tika server.
type plainExtractor struct{}

func (e *plainExtractor) Extract(ctx context.Context, r io.Reader, filename string) (string, map[string]interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("read document: %w", err)
	}
	if !utf8.Valid(data) {
		return "", nil, fmt.Errorf("document %s is not valid text", filename)
	}
	text := strings.TrimSpace(string(data))
	meta := map[string]interface{}{
		"extractor":       "plain",
		"source_file":     filename,
		"text_length":     len(text),
		"extraction_time": time.Now().Format(time.RFC3339),
	}
	return text, meta, nil
}
