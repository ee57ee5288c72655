package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hirelink/hirelink/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewUnknownType(t *testing.T) {
	_, err := New(config.ExtractorConfig{Type: "nope"})
	require.Error(t, err)
}

func TestPlainExtractor(t *testing.T) {
	ex, err := New(config.ExtractorConfig{Type: "plain"})
	require.NoError(t, err)

	text, meta, err := ex.Extract(context.Background(), strings.NewReader("  hello resume  "), "cv.txt")
	require.NoError(t, err)
	require.Equal(t, "hello resume", text)
	require.Equal(t, "plain", meta["extractor"])
	require.Equal(t, len("hello resume"), meta["text_length"])
}

func TestPlainExtractorRejectsBinary(t *testing.T) {
	ex, err := New(config.ExtractorConfig{Type: "plain"})
	require.NoError(t, err)

	_, _, err = ex.Extract(context.Background(), strings.NewReader("\xff\xfe\x00bad"), "cv.txt")
	require.Error(t, err)
}

func TestTikaExtractor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/tika", r.URL.Path)
		require.Equal(t, "application/pdf", r.Header.Get("Content-Type"))
		require.Equal(t, "cv.pdf", r.Header.Get("X-Tika-Resource-Name"))
		_, _ = w.Write([]byte("extracted text\n"))
	}))
	defer srv.Close()

	ex, err := New(config.ExtractorConfig{
		Type: "tika",
		Data: map[string]interface{}{"server_url": srv.URL},
	})
	require.NoError(t, err)

	text, meta, err := ex.Extract(context.Background(), strings.NewReader("%PDF-1.4 fake"), "cv.pdf")
	require.NoError(t, err)
	require.Equal(t, "extracted text", text)
	require.Equal(t, "tika", meta["extractor"])
}

func TestTikaExtractorServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	ex, err := New(config.ExtractorConfig{
		Type: "tika",
		Data: map[string]interface{}{"server_url": srv.URL},
	})
	require.NoError(t, err)

	_, _, err = ex.Extract(context.Background(), strings.NewReader("data"), "cv.pdf")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 422")
}
