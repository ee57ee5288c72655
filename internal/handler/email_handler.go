package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hirelink/hirelink/internal/ai"
	appErr "github.com/hirelink/hirelink/internal/pkg/errcode"
	"github.com/hirelink/hirelink/internal/pkg/response"
	"github.com/hirelink/hirelink/internal/service"
)

type EmailHandler struct {
	emails *service.EmailService
}

func NewEmailHandler(emails *service.EmailService) *EmailHandler {
	return &EmailHandler{emails: emails}
}

type emailGenerateRequest struct {
	CandidateName   string `json:"candidate_name"`
	CandidateEmail  string `json:"candidate_email"`
	JobTitle        string `json:"job_title"`
	CompanyName     string `json:"company_name"`
	ApplicationDate string `json:"application_date"`
	InterviewDate   string `json:"interview_date"`
	EmailType       string `json:"email_type"`
	Language        string `json:"language"`
	Tone            string `json:"tone"`
}

func (r *emailGenerateRequest) toContext() ai.EmailContext {
	return ai.EmailContext{
		CandidateName:   r.CandidateName,
		CandidateEmail:  r.CandidateEmail,
		JobTitle:        r.JobTitle,
		CompanyName:     r.CompanyName,
		ApplicationDate: r.ApplicationDate,
		InterviewDate:   r.InterviewDate,
		EmailType:       r.EmailType,
		Language:        r.Language,
		Tone:            r.Tone,
	}
}

func (h *EmailHandler) Generate(c *gin.Context) {
	var req emailGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErr.ErrInvalid, "invalid request")
		return
	}
	body, err := h.emails.Generate(c.Request.Context(), req.toContext())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"body": body, "email_type": req.EmailType})
}

type emailSendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (h *EmailHandler) Send(c *gin.Context) {
	var req emailSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErr.ErrInvalid, "invalid request")
		return
	}
	if req.To == "" || req.Subject == "" || req.Body == "" {
		response.Error(c, appErr.ErrInvalid, "to, subject and body are required")
		return
	}
	if err := h.emails.Send(c.Request.Context(), req.To, req.Subject, req.Body); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
