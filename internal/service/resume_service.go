package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hirelink/hirelink/internal/config"
	"github.com/hirelink/hirelink/internal/extract"
	"github.com/hirelink/hirelink/internal/filestore"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
	"github.com/hirelink/hirelink/internal/pkg/timeutil"
	"github.com/hirelink/hirelink/internal/repo"
	"github.com/hirelink/hirelink/internal/resume"
)

var allowedResumeExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

type ResumeService struct {
	users     *repo.UserRepo
	store     filestore.Store
	extractor extract.Extractor
	cache     *expirable.LRU[string, resume.Report]
	maxBytes  int64
}

func NewResumeService(users *repo.UserRepo, store filestore.Store, extractor extract.Extractor, cfg config.ResumeConfig) *ResumeService {
	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = 256
	}
	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	maxBytes := cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &ResumeService{
		users:     users,
		store:     store,
		extractor: extractor,
		cache:     expirable.NewLRU[string, resume.Report](cacheSize, nil, ttl),
		maxBytes:  maxBytes,
	}
}

// ValidateFile rejects unsupported extensions and oversized uploads before
// any byte is read.
func (s *ResumeService) ValidateFile(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedResumeExts[ext] {
		return appErr.ErrInvalidFile
	}
	if size <= 0 || size > s.maxBytes {
		return appErr.ErrInvalidFile
	}
	return nil
}

type readSeekNopCloser struct {
	*bytes.Reader
}

func (readSeekNopCloser) Close() error { return nil }

// UploadResume validates, stores the document and records the storage key on
// the candidate profile.
func (s *ResumeService) UploadResume(ctx context.Context, userID, filename string, r io.Reader, size int64) (string, error) {
	if err := s.ValidateFile(filename, size); err != nil {
		return "", err
	}
	data, err := readLimited(r, s.maxBytes)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("resumes/%s/%s%s", userID, newID(), ext)
	if err := s.store.Save(ctx, key, readSeekNopCloser{bytes.NewReader(data)}, int64(len(data))); err != nil {
		return "", err
	}
	if err := s.users.UpdateResumeKey(ctx, userID, key, timeutil.NowUnix()); err != nil {
		return "", err
	}
	return key, nil
}

// AnalyzeUpload runs the resume scorer on an uploaded document. Results are
// cached by content hash so re-submitting the same file is free.
func (s *ResumeService) AnalyzeUpload(ctx context.Context, filename string, r io.Reader, size int64) (resume.Report, error) {
	if err := s.ValidateFile(filename, size); err != nil {
		return resume.Report{}, err
	}
	data, err := readLimited(r, s.maxBytes)
	if err != nil {
		return resume.Report{}, err
	}
	sum := sha256.Sum256(data)
	cacheKey := hex.EncodeToString(sum[:])
	if report, ok := s.cache.Get(cacheKey); ok {
		return report, nil
	}

	text, meta, err := s.extractor.Extract(ctx, bytes.NewReader(data), filename)
	if err != nil {
		logutil.GetLogger(ctx).Error("resume text extraction failed",
			zap.String("filename", filename), zap.Error(err))
		return resume.Report{
			Success: false,
			Error:   "Could not extract text from the uploaded document",
		}, nil
	}
	logutil.GetLogger(ctx).Debug("resume text extracted",
		zap.String("filename", filename), zap.Any("meta", meta))

	report := resume.Analyze(text)
	s.cache.Add(cacheKey, report)
	return report, nil
}

// AnalyzeText scores raw resume text directly.
func (s *ResumeService) AnalyzeText(text string) resume.Report {
	sum := sha256.Sum256([]byte(text))
	cacheKey := hex.EncodeToString(sum[:])
	if report, ok := s.cache.Get(cacheKey); ok {
		return report
	}
	report := resume.Analyze(text)
	s.cache.Add(cacheKey, report)
	return report
}

// OpenResume streams a stored resume document.
func (s *ResumeService) OpenResume(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.store.Open(ctx, key)
}

func readLimited(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, appErr.ErrInvalidFile
	}
	return data, nil
}
