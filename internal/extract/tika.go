package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

func init() {
	Register("tika", func(args interface{}) (Extractor, error) {
		c := &tikaConfig{}
		if err := decodeConfig(args, c); err != nil {
			return nil, err
		}
		if c.ServerURL == "" {
			return nil, fmt.Errorf("tika server_url is required")
		}
		timeout := time.Duration(c.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		return &tikaExtractor{
			serverURL: strings.TrimRight(c.ServerURL, "/"),
			client:    &http.Client{Timeout: timeout},
		}, nil
	})
}

type tikaConfig struct {
	ServerURL      string `json:"server_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// tikaExtractor sends documents to an Apache Tika server and reads back the
// plain-text rendition. Handles pdf, docx, doc and anything else Tika can
// sniff from the payload.
type tikaExtractor struct {
	serverURL string
	client    *http.Client
}

var tikaContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

func (e *tikaExtractor) Extract(ctx context.Context, r io.Reader, filename string) (string, map[string]interface{}, error) {
	start := time.Now()
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("read document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, e.serverURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("build tika request: %w", err)
	}
	if ct, ok := tikaContentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		req.Header.Set("Content-Type", ct)
	}
	req.Header.Set("Accept", "text/plain")
	if filename != "" {
		req.Header.Set("X-Tika-Resource-Name", filename)
	}

	rsp, err := e.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("call tika server: %w", err)
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("tika server returned status %d", rsp.StatusCode)
	}

	body, err := io.ReadAll(rsp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read tika response: %w", err)
	}

	text := strings.TrimSpace(string(body))
	meta := map[string]interface{}{
		"extractor":              "tika",
		"source_file":            filename,
		"text_length":            len(text),
		"extraction_time":        time.Now().Format(time.RFC3339),
		"processing_duration_ms": time.Since(start).Milliseconds(),
	}
	return text, meta, nil
}
