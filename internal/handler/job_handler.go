package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErr "github.com/hirelink/hirelink/internal/pkg/errcode"
	"github.com/hirelink/hirelink/internal/pkg/response"
	"github.com/hirelink/hirelink/internal/repo"
	"github.com/hirelink/hirelink/internal/service"
)

type JobHandler struct {
	jobs *service.JobService
}

func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Company             string   `json:"company"`
	Location            string   `json:"location"`
	SalaryMin           *float64 `json:"salary_min"`
	SalaryMax           *float64 `json:"salary_max"`
	SalaryCurrency      string   `json:"salary_currency"`
	JobType             string   `json:"job_type"`
	ExperienceLevel     string   `json:"experience_level"`
	RequiredSkills      string   `json:"required_skills"`
	PreferredSkills     string   `json:"preferred_skills"`
	ApplicationDeadline *int64   `json:"application_deadline"`
}

func (r *jobRequest) toInput() service.JobInput {
	return service.JobInput{
		Title:               r.Title,
		Description:         r.Description,
		Company:             r.Company,
		Location:            r.Location,
		SalaryMin:           r.SalaryMin,
		SalaryMax:           r.SalaryMax,
		SalaryCurrency:      r.SalaryCurrency,
		JobType:             r.JobType,
		ExperienceLevel:     r.ExperienceLevel,
		RequiredSkills:      r.RequiredSkills,
		PreferredSkills:     r.PreferredSkills,
		ApplicationDeadline: r.ApplicationDeadline,
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErr.ErrInvalid, "invalid request")
		return
	}
	job, err := h.jobs.Create(c.Request.Context(), getUserID(c), req.toInput())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, job)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, job)
}

func (h *JobHandler) List(c *gin.Context) {
	filter := repo.JobFilter{
		Keyword:    c.Query("keyword"),
		Location:   c.Query("location"),
		JobType:    c.Query("job_type"),
		ActiveOnly: c.Query("include_inactive") != "1",
		Limit:      parseUint(c.Query("limit"), 20, 100),
		Offset:     parseUint(c.Query("offset"), 0, 0),
	}
	jobs, err := h.jobs.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, jobs)
}

// ListMine returns the calling recruiter's own postings, inactive ones
// included.
func (h *JobHandler) ListMine(c *gin.Context) {
	filter := repo.JobFilter{
		RecruiterID: getUserID(c),
		Limit:       parseUint(c.Query("limit"), 20, 100),
		Offset:      parseUint(c.Query("offset"), 0, 0),
	}
	jobs, err := h.jobs.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, jobs)
}

func (h *JobHandler) Update(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErr.ErrInvalid, "invalid request")
		return
	}
	job, err := h.jobs.Update(c.Request.Context(), getUserID(c), getRole(c), c.Param("id"), req.toInput())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, job)
}

type jobActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func (h *JobHandler) SetActive(c *gin.Context) {
	var req jobActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErr.ErrInvalid, "invalid request")
		return
	}
	if err := h.jobs.SetActive(c.Request.Context(), getUserID(c), getRole(c), c.Param("id"), req.IsActive); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobs.Delete(c.Request.Context(), getUserID(c), getRole(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *JobHandler) Save(c *gin.Context) {
	if err := h.jobs.SaveJob(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *JobHandler) Unsave(c *gin.Context) {
	if err := h.jobs.UnsaveJob(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *JobHandler) ListSaved(c *gin.Context) {
	jobs, err := h.jobs.ListSavedJobs(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, jobs)
}

func parseUint(raw string, def, max uint) uint {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return def
	}
	value := uint(v)
	if max > 0 && value > max {
		return max
	}
	return value
}
