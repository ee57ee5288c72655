package service

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hirelink/hirelink/internal/ai"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

// EmailService generates candidate-facing recruitment emails with a
// configured language model and dispatches them over SMTP.
type EmailService struct {
	generator *ai.EmailGenerator
	sender    EmailSender
	markdown  goldmark.Markdown
	timeout   time.Duration
}

func NewEmailService(generator *ai.EmailGenerator, sender EmailSender, timeout time.Duration) *EmailService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &EmailService{
		generator: generator,
		sender:    sender,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		timeout:   timeout,
	}
}

func (s *EmailService) Generate(ctx context.Context, ectx ai.EmailContext) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	body, err := s.generator.Generate(ctx, ectx)
	if err != nil {
		if err == ai.ErrUnavailable {
			return "", appErr.ErrAIUnavailable
		}
		return "", err
	}
	return body, nil
}

// Send dispatches a ready email. Markdown bodies are rendered to HTML;
// plain text goes out as-is.
func (s *EmailService) Send(ctx context.Context, to, subject, body string) error {
	if to == "" || subject == "" || strings.TrimSpace(body) == "" {
		return appErr.ErrInvalid
	}
	if looksLikeMarkdown(body) {
		var buf bytes.Buffer
		if err := s.markdown.Convert([]byte(body), &buf); err == nil {
			return s.sender.SendHTML(to, subject, buf.String())
		}
	}
	return s.sender.Send(to, subject, body)
}

func looksLikeMarkdown(body string) bool {
	for _, marker := range []string{"**", "##", "- ", "* ", "[", "`"} {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}
