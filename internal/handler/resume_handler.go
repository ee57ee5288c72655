package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hirelink/hirelink/internal/config"
	appErr "github.com/hirelink/hirelink/internal/pkg/errcode"
	"github.com/hirelink/hirelink/internal/pkg/response"
	"github.com/hirelink/hirelink/internal/service"
)

type ResumeHandler struct {
	resumes *service.ResumeService
	cfg     config.ResumeConfig
}

func NewResumeHandler(resumes *service.ResumeService, cfg config.ResumeConfig) *ResumeHandler {
	return &ResumeHandler{resumes: resumes, cfg: cfg}
}

type analyzeTextRequest struct {
	Text string `json:"text"`
}

// Analyze scores a resume document. It accepts either a multipart
// upload under "file" or a JSON body with a raw "text" field.
func (h *ResumeHandler) Analyze(c *gin.Context) {
	file, err := c.FormFile("file")
	if err == nil {
		if file.Size > h.cfg.MaxUploadBytes {
			response.Error(c, appErr.ErrInvalidFile, "file exceeds "+formatUploadLimit(h.cfg.MaxUploadBytes))
			return
		}
		opened, err := file.Open()
		if err != nil {
			response.Error(c, appErr.ErrInvalidFile, "failed to open file")
			return
		}
		defer opened.Close()
		report, err := h.resumes.AnalyzeUpload(c.Request.Context(), file.Filename, opened, file.Size)
		if err != nil {
			handleError(c, err)
			return
		}
		response.Success(c, report)
		return
	}

	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		response.Error(c, appErr.ErrInvalid, "either a file upload or a text field is required")
		return
	}
	response.Success(c, h.resumes.AnalyzeText(req.Text))
}
