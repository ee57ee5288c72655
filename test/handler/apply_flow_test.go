package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hirelink/hirelink/internal/pkg/errcode"
)

func futureUnix(hours int) int64 {
	return time.Now().Add(time.Duration(hours) * time.Hour).Unix()
}

func doMultipart(t *testing.T, router http.Handler, path, token string, fields map[string]string, filename string, content []byte) apiResponse {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var parsed apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	return parsed
}

func TestApplyWithResumeAttachment(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	recruiter := registerUser(t, router, uniqueEmail("apply-rec"), "recruiter")
	candidate := registerUser(t, router, uniqueEmail("apply-cand"), "candidate")

	_, parsed := doJSON(t, router, http.MethodPost, "/api/v1/jobs", recruiter, map[string]interface{}{
		"title":            "Data Engineer",
		"company":          "Acme",
		"location":         "Hamburg",
		"job_type":         "full_time",
		"required_skills":  "python, spark",
		"experience_level": "senior",
	})
	require.Equal(t, 0, parsed.Code)
	jobID, _ := parsed.Data["id"].(string)
	require.NotEmpty(t, jobID)

	resume := []byte("Jane Doe\njane@example.com\nSkills: Python, Spark, Airflow\nExperience: 6 years")
	parsed = doMultipart(t, router, "/api/v1/jobs/"+jobID+"/apply", candidate,
		map[string]string{"cover_letter": "please consider me"}, "resume.txt", resume)
	require.Equal(t, 0, parsed.Code)
	appID, _ := parsed.Data["id"].(string)
	require.NotEmpty(t, appID)
	require.Equal(t, "pending", parsed.Data["status"])
	require.NotEmpty(t, parsed.Data["resume_key"])

	// bad extension is rejected before anything is stored
	parsed = doMultipart(t, router, "/api/v1/jobs/"+jobID+"/apply", candidate,
		nil, "payload.exe", []byte("nope"))
	require.Equal(t, errcode.ErrInvalidFile, parsed.Code)
}

func TestRoleScopedListsAndNestedInterview(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	recruiter := registerUser(t, router, uniqueEmail("scope-rec"), "recruiter")
	candidate := registerUser(t, router, uniqueEmail("scope-cand"), "candidate")

	_, parsed := doJSON(t, router, http.MethodPost, "/api/v1/jobs", recruiter, map[string]interface{}{
		"title":            "Platform Engineer",
		"company":          "Acme",
		"location":         "Remote",
		"job_type":         "contract",
		"required_skills":  "go, kubernetes",
		"experience_level": "senior",
	})
	require.Equal(t, 0, parsed.Code)
	jobID, _ := parsed.Data["id"].(string)

	_, parsed = doJSON(t, router, http.MethodPost, "/api/v1/applications", candidate, map[string]string{
		"job_id": jobID,
	})
	require.Equal(t, 0, parsed.Code)
	appID, _ := parsed.Data["id"].(string)

	// role-scoped application listing covers both sides
	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/applications", candidate, nil)
	require.Contains(t, rec.Body.String(), appID)
	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/applications", recruiter, nil)
	require.Contains(t, rec.Body.String(), appID)

	_, parsed = doJSON(t, router, http.MethodPost, "/api/v1/applications/"+appID+"/interviews", recruiter, map[string]interface{}{
		"scheduled_at": futureUnix(48),
	})
	require.Equal(t, 0, parsed.Code)
	ivID, _ := parsed.Data["id"].(string)
	require.NotEmpty(t, ivID)

	// candidates cannot schedule
	_, parsed = doJSON(t, router, http.MethodPost, "/api/v1/applications/"+appID+"/interviews", candidate, map[string]interface{}{
		"scheduled_at": futureUnix(48),
	})
	require.Equal(t, errcode.ErrForbidden, parsed.Code)

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/interviews", candidate, nil)
	require.Contains(t, rec.Body.String(), ivID)
	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/interviews", recruiter, nil)
	require.Contains(t, rec.Body.String(), ivID)
}
