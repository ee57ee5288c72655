package handler

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	appErr "github.com/hirelink/hirelink/internal/pkg/errcode"
	"github.com/hirelink/hirelink/internal/pkg/response"
	"github.com/hirelink/hirelink/internal/service"
)

type ProfileHandler struct {
	auth    *service.AuthService
	resumes *service.ResumeService
}

func NewProfileHandler(auth *service.AuthService, resumes *service.ResumeService) *ProfileHandler {
	return &ProfileHandler{auth: auth, resumes: resumes}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

type profileRequest struct {
	FullName         *string  `json:"full_name"`
	Phone            *string  `json:"phone"`
	Headline         *string  `json:"headline"`
	Location         *string  `json:"location"`
	Bio              *string  `json:"bio"`
	Skills           *string  `json:"skills"`
	ExperienceLevel  *string  `json:"experience_level"`
	PreferredJobType *string  `json:"preferred_job_type"`
	RemotePreference *string  `json:"remote_preference"`
	DesiredSalary    *float64 `json:"desired_salary"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErr.ErrInvalid, "invalid request")
		return
	}
	user, err := h.auth.UpdateProfile(c.Request.Context(), getUserID(c), service.ProfileUpdate{
		FullName:         req.FullName,
		Phone:            req.Phone,
		Headline:         req.Headline,
		Location:         req.Location,
		Bio:              req.Bio,
		Skills:           req.Skills,
		ExperienceLevel:  req.ExperienceLevel,
		PreferredJobType: req.PreferredJobType,
		RemotePreference: req.RemotePreference,
		DesiredSalary:    req.DesiredSalary,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

func (h *ProfileHandler) UploadResume(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErr.ErrInvalidFile, "file is required")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, appErr.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()
	key, err := h.resumes.UploadResume(c.Request.Context(), getUserID(c), file.Filename, opened, file.Size)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"resume_key": key, "name": file.Filename})
}

func (h *ProfileHandler) DownloadResume(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	if user.ResumeKey == "" {
		response.Error(c, appErr.ErrNotFound, "no resume uploaded")
		return
	}
	body, err := h.resumes.OpenResume(c.Request.Context(), user.ResumeKey)
	if err != nil {
		handleError(c, err)
		return
	}
	defer body.Close()
	contentType := mime.TypeByExtension(filepath.Ext(user.ResumeKey))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}
