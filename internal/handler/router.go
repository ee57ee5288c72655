package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirelink/hirelink/internal/middleware"
	"github.com/hirelink/hirelink/internal/model"
)

type RouterDeps struct {
	Auth            *AuthHandler
	Profile         *ProfileHandler
	Jobs            *JobHandler
	Applications    *ApplicationHandler
	Interviews      *InterviewHandler
	Notifications   *NotificationHandler
	Recommend       *RecommendHandler
	Resume          *ResumeHandler
	Email           *EmailHandler
	JWTSecret       []byte
	AnalyzeInterval time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/logout", deps.Auth.Logout)

	api.GET("/jobs", deps.Jobs.List)
	api.GET("/jobs/:id", deps.Jobs.Get)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))

	authGroup.POST("/auth/password", deps.Auth.ChangePassword)
	authGroup.GET("/profile", deps.Profile.Get)
	authGroup.PUT("/profile", deps.Profile.Update)
	authGroup.POST("/profile/resume", deps.Profile.UploadResume)
	authGroup.GET("/profile/resume", deps.Profile.DownloadResume)

	recruiterGroup := authGroup.Group("")
	recruiterGroup.Use(middleware.RequireRole(model.RoleRecruiter, model.RoleAdmin))
	recruiterGroup.POST("/jobs", deps.Jobs.Create)
	recruiterGroup.GET("/jobs/mine", deps.Jobs.ListMine)
	recruiterGroup.PUT("/jobs/:id", deps.Jobs.Update)
	recruiterGroup.PUT("/jobs/:id/active", deps.Jobs.SetActive)
	recruiterGroup.DELETE("/jobs/:id", deps.Jobs.Delete)
	recruiterGroup.GET("/jobs/:id/applications", deps.Applications.ListForJob)
	recruiterGroup.PUT("/applications/:id/status", deps.Applications.UpdateStatus)
	recruiterGroup.PUT("/applications/:id/notes", deps.Applications.UpdateNotes)
	recruiterGroup.POST("/interviews", deps.Interviews.Schedule)
	recruiterGroup.POST("/applications/:id/interviews", deps.Interviews.ScheduleForApplication)
	recruiterGroup.PUT("/interviews/:id", deps.Interviews.Update)
	recruiterGroup.POST("/ai/email/generate", deps.Email.Generate)
	recruiterGroup.POST("/ai/email/send", deps.Email.Send)

	candidateGroup := authGroup.Group("")
	candidateGroup.Use(middleware.RequireRole(model.RoleCandidate, model.RoleAdmin))
	candidateGroup.POST("/applications", deps.Applications.Apply)
	candidateGroup.POST("/jobs/:id/apply", deps.Applications.ApplyToJob)
	candidateGroup.GET("/applications/mine", deps.Applications.ListMine)
	candidateGroup.POST("/applications/:id/withdraw", deps.Applications.Withdraw)
	candidateGroup.POST("/jobs/:id/save", deps.Jobs.Save)
	candidateGroup.DELETE("/jobs/:id/save", deps.Jobs.Unsave)
	candidateGroup.GET("/jobs/saved", deps.Jobs.ListSaved)
	candidateGroup.GET("/recommendations", deps.Recommend.Recommend)

	authGroup.GET("/applications", deps.Applications.List)
	authGroup.GET("/applications/:id", deps.Applications.Get)
	authGroup.GET("/applications/:id/history", deps.Applications.StatusHistory)
	authGroup.GET("/applications/:id/interviews", deps.Interviews.ListForApplication)
	authGroup.GET("/interviews", deps.Interviews.ListMine)
	authGroup.GET("/interviews/:id", deps.Interviews.Get)

	authGroup.GET("/notifications", deps.Notifications.List)
	authGroup.GET("/notifications/unread", deps.Notifications.CountUnread)
	authGroup.PUT("/notifications/:id/read", deps.Notifications.MarkRead)
	authGroup.PUT("/notifications/read-all", deps.Notifications.MarkAllRead)

	analyzeGroup := authGroup.Group("")
	if deps.AnalyzeInterval > 0 {
		analyzeGroup.Use(middleware.RateLimit(deps.AnalyzeInterval))
	}
	analyzeGroup.POST("/resume/analyze", deps.Resume.Analyze)

	adminGroup := authGroup.Group("")
	adminGroup.Use(middleware.RequireRole(model.RoleAdmin))
	adminGroup.POST("/admin/match/rebuild", deps.Recommend.Rebuild)
	adminGroup.GET("/admin/match/info", deps.Recommend.Info)
}
