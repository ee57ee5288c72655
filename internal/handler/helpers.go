package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hirelink/hirelink/internal/middleware"
	appErr "github.com/hirelink/hirelink/internal/pkg/errcode"
	svcErr "github.com/hirelink/hirelink/internal/pkg/errors"
	"github.com/hirelink/hirelink/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

func getRole(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextRoleKey)
	role, _ := value.(string)
	return role
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("user_id", getUserID(c)),
		zap.Error(err))
	switch {
	case errors.Is(err, svcErr.ErrUnauthorized):
		response.Error(c, appErr.ErrUnauthorized, "unauthorized")
	case errors.Is(err, svcErr.ErrForbidden):
		response.Error(c, appErr.ErrForbidden, "forbidden")
	case errors.Is(err, svcErr.ErrNotFound):
		response.Error(c, appErr.ErrNotFound, "not found")
	case errors.Is(err, svcErr.ErrInvalid):
		response.Error(c, appErr.ErrInvalid, "invalid request")
	case errors.Is(err, svcErr.ErrConflict):
		response.Error(c, appErr.ErrConflict, "conflict")
	case errors.Is(err, svcErr.ErrTooMany):
		response.Error(c, appErr.ErrTooMany, "too many requests")
	case errors.Is(err, svcErr.ErrInvalidFile):
		response.Error(c, appErr.ErrInvalidFile, err.Error())
	case errors.Is(err, svcErr.ErrEmptyCatalog):
		response.Error(c, appErr.ErrEmptyCatalog, "no active jobs to match against")
	case errors.Is(err, svcErr.ErrIndexNotBuilt):
		response.Error(c, appErr.ErrIndexNotBuilt, "recommendation index not built yet")
	case errors.Is(err, svcErr.ErrAIUnavailable):
		response.Error(c, appErr.ErrAIUnavailable, "generation service unavailable")
	default:
		response.Error(c, appErr.ErrInternal, "internal error")
	}
}
