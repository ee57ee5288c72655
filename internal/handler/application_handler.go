package handler

import (
	"github.com/gin-gonic/gin"

	appErr "github.com/hirelink/hirelink/internal/pkg/errcode"
	"github.com/hirelink/hirelink/internal/pkg/response"
	"github.com/hirelink/hirelink/internal/service"
)

type ApplicationHandler struct {
	applications *service.ApplicationService
	resumes      *service.ResumeService
}

func NewApplicationHandler(applications *service.ApplicationService, resumes *service.ResumeService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, resumes: resumes}
}

type applyRequest struct {
	JobID       string `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
	ResumeKey   string `json:"resume_key"`
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErr.ErrInvalid, "invalid request")
		return
	}
	if req.JobID == "" {
		response.Error(c, appErr.ErrInvalid, "job_id required")
		return
	}
	app, err := h.applications.Apply(c.Request.Context(), getUserID(c), req.JobID, req.CoverLetter, req.ResumeKey)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, app)
}

// ApplyToJob handles the multipart variant where the candidate attaches
// a resume while applying. The file field is optional; without it the
// profile resume key recorded earlier still applies.
func (h *ApplicationHandler) ApplyToJob(c *gin.Context) {
	jobID := c.Param("id")
	userID := getUserID(c)
	coverLetter := c.PostForm("cover_letter")
	resumeKey := c.PostForm("resume_key")
	if file, err := c.FormFile("file"); err == nil {
		opened, err := file.Open()
		if err != nil {
			response.Error(c, appErr.ErrUploadFailed, "cannot read uploaded file")
			return
		}
		defer opened.Close()
		key, err := h.resumes.UploadResume(c.Request.Context(), userID, file.Filename, opened, file.Size)
		if err != nil {
			handleError(c, err)
			return
		}
		resumeKey = key
	}
	app, err := h.applications.Apply(c.Request.Context(), userID, jobID, coverLetter, resumeKey)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, app)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.applications.Get(c.Request.Context(), getUserID(c), getRole(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, app)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.applications.ListMine(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, apps)
}

// List is role-scoped: candidates get their own applications, recruiters
// get every application across their postings.
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.applications.List(c.Request.Context(), getUserID(c), getRole(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, apps)
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	apps, err := h.applications.ListForJob(c.Request.Context(), getUserID(c), getRole(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, apps)
}

type statusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErr.ErrInvalid, "invalid request")
		return
	}
	app, err := h.applications.UpdateStatus(c.Request.Context(), getUserID(c), getRole(c), c.Param("id"), req.Status, req.Reason)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, app)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	if err := h.applications.Withdraw(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *ApplicationHandler) StatusHistory(c *gin.Context) {
	logs, err := h.applications.StatusHistory(c.Request.Context(), getUserID(c), getRole(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, logs)
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *ApplicationHandler) UpdateNotes(c *gin.Context) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErr.ErrInvalid, "invalid request")
		return
	}
	if err := h.applications.UpdateNotes(c.Request.Context(), getUserID(c), getRole(c), c.Param("id"), req.Notes); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
