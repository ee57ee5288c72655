package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/hirelink/hirelink/internal/ai"
	"github.com/hirelink/hirelink/internal/config"
	"github.com/hirelink/hirelink/internal/extract"
	"github.com/hirelink/hirelink/internal/filestore"
	"github.com/hirelink/hirelink/internal/handler"
	"github.com/hirelink/hirelink/internal/middleware"
	"github.com/hirelink/hirelink/internal/repo"
	"github.com/hirelink/hirelink/internal/service"
	"github.com/hirelink/hirelink/test/testutil"
)

type noopSender struct{}

func (noopSender) Send(to, subject, body string) error {
	return nil
}

func (noopSender) SendHTML(to, subject, body string) error {
	return nil
}

func setupRouter(t *testing.T) (http.Handler, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.OpenTestDB(t)
	userRepo := repo.NewUserRepo(db)
	jobRepo := repo.NewJobRepo(db)
	applicationRepo := repo.NewApplicationRepo(db)
	interviewRepo := repo.NewInterviewRepo(db)
	notificationRepo := repo.NewNotificationRepo(db)
	savedJobRepo := repo.NewSavedJobRepo(db)
	jobVectorRepo := repo.NewJobVectorRepo(db)

	jwtSecret := []byte("test-secret")
	authService := service.NewAuthService(userRepo, jwtSecret, time.Hour)
	notificationService := service.NewNotificationService(notificationRepo)
	jobService := service.NewJobService(jobRepo, savedJobRepo)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, notificationService)
	interviewService := service.NewInterviewService(interviewRepo, applicationRepo, jobRepo, notificationService)
	recommendService := service.NewRecommendService(userRepo, jobRepo, jobVectorRepo)

	tmpDir, err := os.MkdirTemp("", "hirelink-upload-*")
	require.NoError(t, err)

	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{
			"dir": tmpDir,
		},
	})
	require.NoError(t, err)
	extractor, err := extract.New(config.ExtractorConfig{Type: "plain"})
	require.NoError(t, err)

	resumeService := service.NewResumeService(userRepo, store, extractor, config.ResumeConfig{
		MaxUploadBytes:  1 << 20,
		CacheSize:       16,
		CacheTTLMinutes: 5,
	})
	emailService := service.NewEmailService(ai.NewEmailGenerator(nil), noopSender{}, time.Second)

	deps := handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authService),
		Profile:       handler.NewProfileHandler(authService, resumeService),
		Jobs:          handler.NewJobHandler(jobService),
		Applications:  handler.NewApplicationHandler(applicationService, resumeService),
		Interviews:    handler.NewInterviewHandler(interviewService),
		Notifications: handler.NewNotificationHandler(notificationService),
		Recommend:     handler.NewRecommendHandler(recommendService, 10),
		Resume:        handler.NewResumeHandler(resumeService, config.ResumeConfig{MaxUploadBytes: 1 << 20}),
		Email:         handler.NewEmailHandler(emailService),
		JWTSecret:     jwtSecret,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	return engine, func() {
		cleanup()
		_ = os.RemoveAll(tmpDir)
	}
}

type apiResponse struct {
	Code int                    `json:"code"`
	Msg  string                 `json:"msg"`
	Data map[string]interface{} `json:"data"`
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	var parsed apiResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &parsed)
	return resp, parsed
}

func registerUser(t *testing.T, router http.Handler, email, role string) string {
	t.Helper()
	resp, parsed := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":     email,
		"password":  "secret",
		"role":      role,
		"full_name": "Test User",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	token, _ := parsed.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}
