package resumes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shoyeb45/resume-analyzer/internal/analyzer"
)

func newTestRouter(svc *Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func doForm(t *testing.T, router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHandlerListEmpty(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})
	router := newTestRouter(svc, uuid.NewString())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resume", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Resumes []Resume `json:"resumes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Resumes == nil || len(body.Resumes) != 0 {
		t.Fatalf("expected empty list, got %v", body.Resumes)
	}
}

func TestHandlerUpsertAndGet(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})
	userID := uuid.NewString()
	router := newTestRouter(svc, userID)

	payload := `{"resume_name": "my resume", "is_primary": true, "resume_details": {"educations": [{"institute_name": "MIT"}]}}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/resume", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		Resume Resume `json:"resume"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Resume.ID == "" || created.Resume.ResumeName != "my resume" {
		t.Fatalf("unexpected resume: %+v", created.Resume)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/resume/"+created.Resume.ID, nil)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", respGet.Code, respGet.Body.String())
	}
}

func TestHandlerUpsertRequiresName(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})
	router := newTestRouter(svc, uuid.NewString())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/resume", bytes.NewBufferString(`{"resume_details": {}}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestHandlerGetMissingResume(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})
	router := newTestRouter(svc, uuid.NewString())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resume/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestHandlerGetUnownedResume(t *testing.T) {
	svc, repo, _ := newTestService(&scriptedClient{})
	owner := uuid.NewString()
	created, err := svc.Upsert(httptest.NewRequest(http.MethodGet, "/", nil).Context(), owner, "", "owned", false, detailsFixture())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	_ = repo

	router := newTestRouter(svc, uuid.NewString())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resume/"+created.ID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestHandlerDeleteResume(t *testing.T) {
	svc, _, analysisRepo := newTestService(&scriptedClient{})
	userID := uuid.NewString()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	created, err := svc.Upsert(ctx, userID, "", "doomed", false, detailsFixture())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	_ = analysisRepo

	router := newTestRouter(svc, userID)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/resume/"+created.ID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	if _, err := svc.Get(ctx, userID, created.ID); err == nil {
		t.Fatalf("resume still present after delete")
	}
}

func TestHandlerSearchRejectsBadMinScore(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})
	router := newTestRouter(svc, uuid.NewString())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resume/search?min_score=abc", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHandlerSearchFilters(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})
	userID := uuid.NewString()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	if _, err := svc.Upsert(ctx, userID, "", "golang resume", false, detailsFixture()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Upsert(ctx, userID, "", "marketing resume", false, analyzer.ResumeDetails{}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	router := newTestRouter(svc, userID)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resume/search?keywords=golang", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Resumes []Resume `json:"resumes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Resumes) != 1 || body.Resumes[0].ResumeName != "golang resume" {
		t.Fatalf("unexpected search result: %+v", body.Resumes)
	}
}

func TestHandlerAnalytics(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})
	userID := uuid.NewString()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	if _, err := svc.Upsert(ctx, userID, "", "one", false, detailsFixture()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	router := newTestRouter(svc, userID)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resume/analytics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var analytics Analytics
	if err := json.NewDecoder(resp.Body).Decode(&analytics); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if analytics.TotalResumes != 1 {
		t.Fatalf("unexpected analytics: %+v", analytics)
	}
}

func TestHandlerProjectBulletsRequiresName(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})
	router := newTestRouter(svc, uuid.NewString())

	resp := doForm(t, router, "/api/v1/resume/project", url.Values{"bullet_points": {"did a thing"}})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHandlerProjectBullets(t *testing.T) {
	client := &scriptedClient{responses: []string{`{"bullet_points": ["Engineered a data pipeline in Go", "Cut processing time by 40%"]}`}}
	svc, _, _ := newTestService(client)
	router := newTestRouter(svc, uuid.NewString())

	resp := doForm(t, router, "/api/v1/resume/project", url.Values{
		"project_name":  {"pipeline"},
		"tech_stack":    {"Go, Postgres"},
		"bullet_points": {"built pipeline", "made it fast"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		BulletPoints []string `json:"bullet_points"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.BulletPoints) != 2 {
		t.Fatalf("expected 2 bullet points, got %v", body.BulletPoints)
	}
}

func TestHandlerSkillAssessmentScore(t *testing.T) {
	client := &scriptedClient{responses: []string{`{
	  "suggestions": [{"role_name": "Backend Engineer", "match_percent": 80}],
	  "strengths": [{"skill": "go", "strength_point": "strong fundamentals"}],
	  "improvement_areas": [{"skill": "sql", "improvement_point": "practice joins"}],
	  "tips": ["keep building"]
	}`}}
	svc, _, _ := newTestService(client)
	router := newTestRouter(svc, uuid.NewString())

	skills := `[{"skill": "go", "total_questions": 4, "correct_questions": 3}, {"skill": "sql", "total_questions": 3, "correct_questions": 1}]`
	resp := doForm(t, router, "/api/v1/resume/skill-assessment-score", url.Values{"skills": {skills}})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		OverallScore float64 `json:"overall_score"`
		SkillScores  []struct {
			Skill string   `json:"skill"`
			Score *float64 `json:"score"`
		} `json:"skill_scores"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// mean of 75.0 and 33.33
	if body.OverallScore != 54.17 {
		t.Fatalf("unexpected overall score: %v", body.OverallScore)
	}
	if len(body.SkillScores) != 2 {
		t.Fatalf("expected 2 skill scores, got %v", body.SkillScores)
	}
}

func TestHandlerSkillAssessmentScoreRejectsBadJSON(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})
	router := newTestRouter(svc, uuid.NewString())

	resp := doForm(t, router, "/api/v1/resume/skill-assessment-score", url.Values{"skills": {"not json"}})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHandlerATSScoreFromJSON(t *testing.T) {
	client := &scriptedClient{responses: []string{scoreResponse}}
	svc, _, _ := newTestService(client)
	router := newTestRouter(svc, uuid.NewString())

	resumeJSON := `{"personal_info": {"name": "Jane"}, "technical_skills": [{"skill_group": "Languages", "skills": ["Go"]}]}`
	resp := doForm(t, router, "/api/v1/resume/ats-score", url.Values{"resume_json": {resumeJSON}})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		ATSScore struct {
			ATSScore float64 `json:"ats_score"`
		} `json:"ats_score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ATSScore.ATSScore != 82 {
		t.Fatalf("unexpected score: %v", body.ATSScore)
	}
}

func detailsFixture() analyzer.ResumeDetails {
	return analyzer.ResumeDetails{
		TechnicalSkills: []analyzer.SkillGroup{{GroupName: "Languages", Skills: []string{"golang", "python"}}},
	}
}
