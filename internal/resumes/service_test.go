package resumes

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Shoyeb45/resume-analyzer/internal/analyses"
	"github.com/Shoyeb45/resume-analyzer/internal/analyzer"
)

// scriptedClient replays canned chat responses in order.
type scriptedClient struct {
	responses []string
	calls     int
}

func (c *scriptedClient) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.calls >= len(c.responses) {
		return "", errors.New("no scripted response left")
	}
	out := c.responses[c.calls]
	c.calls++
	return out, nil
}

const parseResponse = `{"resume_details": {
  "personal_info": {"name": "Jane Doe", "contact_info": {"email": "jane@example.com", "mobile": "", "location": "", "social_links": {}}, "professional_summary": "Backend engineer"},
  "educations": [],
  "work_experiences": [{"company_name": "Acme", "job_title": "Engineer", "date": {"start": "2020", "end": "2023"}, "location": "", "bullet_points": ["Built services in Go and Python"]}],
  "projects": [],
  "technical_skills": [{"skill_group": "Languages", "skills": ["Go", "Python"]}],
  "soft_skills": [],
  "achievements": [],
  "certifications": [],
  "languages": [],
  "publications": [],
  "extracurriculars": []
}}`

const overallResponse = `{
  "overall_strengths": [{"description": "Solid backend experience", "weightage": 80}],
  "areas_for_improvement": [],
  "ats_optimization_suggestions": [],
  "job_fit_assessment": {"score": 72, "notes": "good fit"},
  "recommendation_score": 74,
  "resume_summary": "Backend engineer with Go and Python",
  "matched_skills": ["made-up-by-model"],
  "missing_skills": ["also-made-up"]
}`

const scoreResponse = `{"ats_score": 82, "format_compliance": 75, "keyword_optimization": 70, "readability": 88}`

const sectionsResponse = `{
  "education": {"description": "", "good": [], "bad": [], "improvements": [], "overall_review": "Good"},
  "projects": {"description": "", "good": [], "bad": [], "improvements": [], "overall_review": "Good"},
  "experience": {"description": "strong", "good": ["impact"], "bad": [], "improvements": [], "overall_review": "Excellent"},
  "skills": {"description": "", "good": [], "bad": [], "improvements": [], "overall_review": "Good"},
  "extracurricular": {"description": "", "good": [], "bad": [], "improvements": [], "overall_review": "Needs Improvement"}
}`

func newTestService(client *scriptedClient) (*Service, *MemoryRepo, *analyses.MemoryRepo) {
	resumeRepo := NewMemoryRepo()
	analysisRepo := analyses.NewMemoryRepo()
	resumeRepo.Analyses = analysisRepo
	analysisRepo.Resumes = resumeRepo
	svc := &Service{
		Repo:     resumeRepo,
		Analyses: analysisRepo,
		Analyzer: analyzer.New(client),
	}
	return svc, resumeRepo, analysisRepo
}

func TestAnalyzeResumePipeline(t *testing.T) {
	client := &scriptedClient{responses: []string{parseResponse, overallResponse, scoreResponse, sectionsResponse}}
	svc, resumeRepo, analysisRepo := newTestService(client)

	userID := uuid.NewString()
	resumeText := []byte("Jane Doe. Backend engineer. Built services in Go and Python at Acme.")
	jd := "Looking for a Python and PostgreSQL developer"

	result, err := svc.AnalyzeResume(context.Background(), userID, "resume.txt", resumeText, "Backend Developer", jd)
	if err != nil {
		t.Fatalf("AnalyzeResume: %v", err)
	}
	if client.calls != 4 {
		t.Fatalf("expected 4 llm calls, got %d", client.calls)
	}
	if result.ResumeID == "" || result.AnalysisID == "" {
		t.Fatalf("expected generated ids, got %+v", result)
	}
	if result.Analysis.ATSScore.ATSScore != 82 {
		t.Fatalf("unexpected ats score: %v", result.Analysis.ATSScore.ATSScore)
	}
	if result.Analysis.JobTitle != "Backend Developer" {
		t.Fatalf("unexpected job title: %q", result.Analysis.JobTitle)
	}

	// The local matcher overrides whatever the model claimed.
	for _, skill := range result.Analysis.MatchedSkills {
		if skill == "made-up-by-model" {
			t.Fatalf("model-provided matched skills leaked through")
		}
	}
	found := false
	for _, skill := range result.Analysis.MatchedSkills {
		if skill == "python" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected python in matched skills, got %v", result.Analysis.MatchedSkills)
	}

	// Without a runner the writes happen inline.
	stored, err := resumeRepo.GetByID(context.Background(), userID, result.ResumeID)
	if err != nil {
		t.Fatalf("resume not persisted: %v", err)
	}
	if stored.ATSScore == nil || *stored.ATSScore != 82 {
		t.Fatalf("unexpected stored score: %v", stored.ATSScore)
	}
	if stored.LastAnalyzed == nil {
		t.Fatalf("expected last analyzed to be set")
	}

	storedAnalysis, err := analysisRepo.GetByID(context.Background(), userID, result.AnalysisID)
	if err != nil {
		t.Fatalf("analysis not persisted: %v", err)
	}
	if storedAnalysis.ResumeID != result.ResumeID {
		t.Fatalf("analysis references wrong resume: %q", storedAnalysis.ResumeID)
	}
	if storedAnalysis.ResumeMetadata == nil || storedAnalysis.ResumeMetadata.ResumeName != "resume.txt" {
		t.Fatalf("unexpected resume metadata: %+v", storedAnalysis.ResumeMetadata)
	}
}

func TestAnalyzeResumeRejectsBadUserID(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})
	_, err := svc.AnalyzeResume(context.Background(), "not-a-uuid", "resume.txt", []byte("text"), "role", "jd")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExtractResumePersistsSynchronously(t *testing.T) {
	client := &scriptedClient{responses: []string{parseResponse, scoreResponse}}
	svc, resumeRepo, _ := newTestService(client)

	userID := uuid.NewString()
	resume, err := svc.ExtractResume(context.Background(), userID, "resume.txt", []byte("Jane Doe. Go and Python."))
	if err != nil {
		t.Fatalf("ExtractResume: %v", err)
	}
	if client.calls != 2 {
		t.Fatalf("expected 2 llm calls, got %d", client.calls)
	}
	if resume.LastAnalyzed != nil {
		t.Fatalf("extract should not mark the resume analyzed")
	}

	if _, err := resumeRepo.GetByID(context.Background(), userID, resume.ID); err != nil {
		t.Fatalf("resume not persisted: %v", err)
	}
}

func TestUpsertCreateDropsEmptyItems(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})

	userID := uuid.NewString()
	details := analyzer.ResumeDetails{
		Educations: []analyzer.Education{
			{},
			{InstituteName: "MIT", Degree: "BSc"},
		},
		TechnicalSkills: []analyzer.SkillGroup{
			{GroupName: "Languages", Skills: []string{"Go"}},
			{GroupName: "", Skills: nil},
		},
	}

	resume, err := svc.Upsert(context.Background(), userID, "", "my resume", true, details)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if len(resume.Educations) != 1 || resume.Educations[0].InstituteName != "MIT" {
		t.Fatalf("empty education item not dropped: %+v", resume.Educations)
	}
	if len(resume.Skills.TechnicalSkills) != 1 {
		t.Fatalf("empty skill group not dropped: %+v", resume.Skills.TechnicalSkills)
	}
	if len(resume.Keywords) != 1 || resume.Keywords[0] != "Go" {
		t.Fatalf("keywords not derived from skills: %v", resume.Keywords)
	}
	if !resume.IsPrimary {
		t.Fatalf("expected primary resume")
	}
}

func TestUpsertUpdatePreservesCreatedAt(t *testing.T) {
	svc, repo, _ := newTestService(&scriptedClient{})

	userID := uuid.NewString()
	created, err := svc.Upsert(context.Background(), userID, "", "first", false, analyzer.ResumeDetails{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Upsert(context.Background(), userID, created.ID, "renamed", true, analyzer.ResumeDetails{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("id changed on upsert")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at not preserved")
	}
	if updated.ResumeName != "renamed" || !updated.IsPrimary {
		t.Fatalf("update not applied: %+v", updated)
	}

	stored, err := repo.GetByID(context.Background(), userID, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ResumeName != "renamed" {
		t.Fatalf("update not persisted")
	}
}

func TestUpsertUnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})

	_, err := svc.Upsert(context.Background(), uuid.NewString(), "missing-id", "name", false, analyzer.ResumeDetails{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertUnownedIDIsNotFound(t *testing.T) {
	svc, _, _ := newTestService(&scriptedClient{})

	owner := uuid.NewString()
	created, err := svc.Upsert(context.Background(), owner, "", "owned", false, analyzer.ResumeDetails{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Upsert(context.Background(), uuid.NewString(), created.ID, "steal", false, analyzer.ResumeDetails{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPrimaryUniquenessAcrossUpserts(t *testing.T) {
	svc, repo, _ := newTestService(&scriptedClient{})

	userID := uuid.NewString()
	first, err := svc.Upsert(context.Background(), userID, "", "first", true, analyzer.ResumeDetails{})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := svc.Upsert(context.Background(), userID, "", "second", true, analyzer.ResumeDetails{})
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	all, err := repo.ListByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	primaries := 0
	for _, resume := range all {
		if resume.IsPrimary {
			primaries++
			if resume.ID != second.ID {
				t.Fatalf("wrong resume is primary: %q", resume.ID)
			}
		}
	}
	if primaries != 1 {
		t.Fatalf("expected exactly one primary, got %d", primaries)
	}
	_ = first
}

func TestDeleteCascadesAnalyses(t *testing.T) {
	client := &scriptedClient{responses: []string{parseResponse, overallResponse, scoreResponse, sectionsResponse}}
	svc, _, analysisRepo := newTestService(client)

	userID := uuid.NewString()
	result, err := svc.AnalyzeResume(context.Background(), userID, "resume.txt", []byte("Go and Python."), "role", "Python developer")
	if err != nil {
		t.Fatalf("AnalyzeResume: %v", err)
	}

	if err := svc.Delete(context.Background(), userID, result.ResumeID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := analysisRepo.GetByID(context.Background(), userID, result.AnalysisID); !errors.Is(err, analyses.ErrNotFound) {
		t.Fatalf("expected analysis to be cascaded away, got %v", err)
	}
}
