package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

type fakeGenerator struct {
	prompt string
	out    string
	err    error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.out, f.err
}

func TestBuildEmailPromptTypes(t *testing.T) {
	base := EmailContext{
		CandidateName:   "Alice Martin",
		CandidateEmail:  "alice@example.com",
		JobTitle:        "Backend Engineer",
		CompanyName:     "Acme",
		ApplicationDate: "2026-08-01",
	}

	tests := []struct {
		emailType string
		contains  string
	}{
		{EmailTypeRejection, "rejection email"},
		{EmailTypeFollowup, "follow-up email"},
		{EmailTypeInvitation, "interview invitation email"},
	}
	for _, tc := range tests {
		t.Run(tc.emailType, func(t *testing.T) {
			ctx := base
			ctx.EmailType = tc.emailType
			prompt, err := BuildEmailPrompt(ctx)
			require.NoError(t, err)
			require.Contains(t, prompt, tc.contains)
			require.Contains(t, prompt, "Alice Martin")
			require.Contains(t, prompt, "Backend Engineer")
			require.Contains(t, prompt, "Acme")
			require.Contains(t, prompt, "2026-08-01")
		})
	}
}

func TestBuildEmailPromptInterviewDate(t *testing.T) {
	ctx := EmailContext{
		CandidateName:   "Bob",
		JobTitle:        "Data Engineer",
		CompanyName:     "Acme",
		ApplicationDate: "2026-08-01",
		InterviewDate:   "2026-09-10",
		EmailType:       EmailTypeInvitation,
	}
	prompt, err := BuildEmailPrompt(ctx)
	require.NoError(t, err)
	require.Contains(t, prompt, "Scheduled interview date: 2026-09-10")
}

func TestBuildEmailPromptUnknownType(t *testing.T) {
	_, err := BuildEmailPrompt(EmailContext{EmailType: "spam"})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	gen := NewEmailGenerator(&fakeGenerator{out: "hi"})
	_, err = gen.Generate(context.Background(), EmailContext{EmailType: "spam"})
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestEmailGeneratorTrimsOutput(t *testing.T) {
	fake := &fakeGenerator{out: "\n  Dear Alice,\nWe regret...  \n"}
	gen := NewEmailGenerator(fake)

	body, err := gen.Generate(context.Background(), EmailContext{
		CandidateName:   "Alice",
		JobTitle:        "Backend Engineer",
		CompanyName:     "Acme",
		ApplicationDate: "2026-08-01",
		EmailType:       EmailTypeRejection,
	})
	require.NoError(t, err)
	require.Equal(t, "Dear Alice,\nWe regret...", body)
	require.Contains(t, fake.prompt, "professional tone")
}

func TestEmailGeneratorNotConfigured(t *testing.T) {
	gen := NewEmailGenerator(nil)
	_, err := gen.Generate(context.Background(), EmailContext{EmailType: EmailTypeRejection})
	require.ErrorIs(t, err, ErrUnavailable)
}
