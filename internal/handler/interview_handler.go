package handler

import (
	"github.com/gin-gonic/gin"

	appErr "github.com/hirelink/hirelink/internal/pkg/errcode"
	"github.com/hirelink/hirelink/internal/pkg/response"
	"github.com/hirelink/hirelink/internal/service"
)

type InterviewHandler struct {
	interviews *service.InterviewService
}

func NewInterviewHandler(interviews *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

type scheduleRequest struct {
	ApplicationID   string `json:"application_id"`
	ScheduledAt     int64  `json:"scheduled_at"`
	DurationMinutes int    `json:"duration_minutes"`
	InterviewType   string `json:"interview_type"`
	MeetingLink     string `json:"meeting_link"`
	Notes           string `json:"notes"`
}

func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErr.ErrInvalid, "invalid request")
		return
	}
	if req.ApplicationID == "" {
		response.Error(c, appErr.ErrInvalid, "application_id required")
		return
	}
	iv, err := h.interviews.Schedule(c.Request.Context(), getUserID(c), getRole(c), service.InterviewInput{
		ApplicationID:   req.ApplicationID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		InterviewType:   req.InterviewType,
		MeetingLink:     req.MeetingLink,
		Notes:           req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, iv)
}

// ScheduleForApplication is the nested-route variant: the application
// comes from the path, the rest of the payload stays the same.
func (h *InterviewHandler) ScheduleForApplication(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErr.ErrInvalid, "invalid request")
		return
	}
	iv, err := h.interviews.Schedule(c.Request.Context(), getUserID(c), getRole(c), service.InterviewInput{
		ApplicationID:   c.Param("id"),
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		InterviewType:   req.InterviewType,
		MeetingLink:     req.MeetingLink,
		Notes:           req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, iv)
}

func (h *InterviewHandler) ListMine(c *gin.Context) {
	ivs, err := h.interviews.ListMine(c.Request.Context(), getUserID(c), getRole(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, ivs)
}

func (h *InterviewHandler) Get(c *gin.Context) {
	iv, err := h.interviews.Get(c.Request.Context(), getUserID(c), getRole(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, iv)
}

func (h *InterviewHandler) ListForApplication(c *gin.Context) {
	ivs, err := h.interviews.ListForApplication(c.Request.Context(), getUserID(c), getRole(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, ivs)
}

type interviewUpdateRequest struct {
	ScheduledAt     *int64  `json:"scheduled_at"`
	DurationMinutes *int    `json:"duration_minutes"`
	InterviewType   *string `json:"interview_type"`
	MeetingLink     *string `json:"meeting_link"`
	Notes           *string `json:"notes"`
	Feedback        *string `json:"feedback"`
}

func (h *InterviewHandler) Update(c *gin.Context) {
	var req interviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErr.ErrInvalid, "invalid request")
		return
	}
	iv, err := h.interviews.Update(c.Request.Context(), getUserID(c), getRole(c), c.Param("id"), service.InterviewUpdate{
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		InterviewType:   req.InterviewType,
		MeetingLink:     req.MeetingLink,
		Notes:           req.Notes,
		Feedback:        req.Feedback,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, iv)
}
