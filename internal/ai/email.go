package ai

import (
	"context"
	"fmt"
	"strings"

	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

const (
	EmailTypeRejection  = "rejection"
	EmailTypeFollowup   = "followup"
	EmailTypeInvitation = "invitation"
)

// EmailContext carries the recruitment facts the generated email must not
// alter.
type EmailContext struct {
	CandidateName   string
	CandidateEmail  string
	JobTitle        string
	CompanyName     string
	ApplicationDate string
	InterviewDate   string
	EmailType       string
	Language        string
	Tone            string
}

func (c *EmailContext) normalize() {
	if c.Language == "" {
		c.Language = "English"
	}
	if c.Tone == "" {
		c.Tone = "professional"
	}
}

// BuildEmailPrompt renders the instruction sent to the language model for a
// candidate-facing recruitment email.
func BuildEmailPrompt(ctx EmailContext) (string, error) {
	ctx.normalize()

	var b strings.Builder
	b.WriteString("You are an AI assistant specialized in recruitment.\n")
	b.WriteString("Recruitment context:\n")
	fmt.Fprintf(&b, "- Candidate: %s\n", ctx.CandidateName)
	fmt.Fprintf(&b, "- Position: %s\n", ctx.JobTitle)
	fmt.Fprintf(&b, "- Company: %s\n", ctx.CompanyName)
	fmt.Fprintf(&b, "- Application date: %s\n", ctx.ApplicationDate)
	if ctx.InterviewDate != "" {
		fmt.Fprintf(&b, "- Scheduled interview date: %s\n", ctx.InterviewDate)
	}
	b.WriteString("\n")

	switch ctx.EmailType {
	case EmailTypeRejection:
		fmt.Fprintf(&b, "Write a polite and respectful application rejection email in %s, with a %s tone, without proposing another concrete position.\n", ctx.Language, ctx.Tone)
	case EmailTypeFollowup:
		fmt.Fprintf(&b, "Write a follow-up email for a candidate still in the hiring process, in %s, with a %s tone, asking whether they are still interested.\n", ctx.Language, ctx.Tone)
	case EmailTypeInvitation:
		fmt.Fprintf(&b, "Write an interview invitation email for this position, in %s, with a %s tone, mentioning the scheduled interview date.\n", ctx.Language, ctx.Tone)
	default:
		return "", fmt.Errorf("%w: unsupported email type %s", appErr.ErrInvalid, ctx.EmailType)
	}

	b.WriteString("\nWriting constraints:\n")
	b.WriteString("- Address the candidate directly by name.\n")
	b.WriteString("- Keep a professional and human tone.\n")
	b.WriteString("- Do not exceed a few paragraphs.\n")
	b.WriteString("- Do not change the factual information (name, position, company, dates).\n")
	b.WriteString("\nExpected answer: only the email body, without HTML tags.")
	return b.String(), nil
}

// EmailGenerator produces candidate-facing emails through a configured
// generator chain.
type EmailGenerator struct {
	gen IGenerator
}

func NewEmailGenerator(gen IGenerator) *EmailGenerator {
	return &EmailGenerator{gen: gen}
}

func (g *EmailGenerator) Generate(ctx context.Context, ectx EmailContext) (string, error) {
	if g.gen == nil {
		return "", ErrUnavailable
	}
	prompt, err := BuildEmailPrompt(ectx)
	if err != nil {
		return "", err
	}
	body, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(body), nil
}
