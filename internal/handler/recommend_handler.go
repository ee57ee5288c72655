package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hirelink/hirelink/internal/pkg/response"
	"github.com/hirelink/hirelink/internal/service"
)

type RecommendHandler struct {
	recommend    *service.RecommendService
	defaultLimit int
}

func NewRecommendHandler(recommend *service.RecommendService, defaultLimit int) *RecommendHandler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &RecommendHandler{recommend: recommend, defaultLimit: defaultLimit}
}

func (h *RecommendHandler) Recommend(c *gin.Context) {
	limit := int(parseUint(c.Query("limit"), uint(h.defaultLimit), 50))
	items, err := h.recommend.Recommend(c.Request.Context(), getUserID(c), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"recommendations": items, "count": len(items)})
}

func (h *RecommendHandler) Info(c *gin.Context) {
	info, err := h.recommend.Info()
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, info)
}

// Rebuild recomputes the match index from the current active catalog.
// Admin only; the periodic job covers the normal path.
func (h *RecommendHandler) Rebuild(c *gin.Context) {
	idx, err := h.recommend.Rebuild(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"build_version": idx.Version(),
		"job_count":     idx.JobCount(),
		"dimension":     idx.Dimension(),
	})
}
