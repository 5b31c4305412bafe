package analyses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Shoyeb45/resume-analyzer/internal/analyzer"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func analysisRowColumns() []string {
	return []string{
		"id", "user_id", "resume_id", "ats_score", "format_compliance",
		"keyword_optimization", "readability", "job_match_score",
		"skill_match_percent", "matched_skills", "missing_skills",
		"technical_skills", "soft_skills", "llm_analysis", "job_title",
		"created_at", "updated_at", "resume_name", "is_primary",
	}
}

func TestPGRepoCreateMarshalsSections(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	analysis := Analysis{
		ID:       "analysis-1",
		UserID:   "user-1",
		ResumeID: "resume-1",
		ATSScore: analyzer.ATSScore{
			ATSScore:            82,
			FormatCompliance:    75,
			KeywordOptimization: 70,
			Readability:         88,
		},
		JobMatchScore:     64.2,
		SkillMatchPercent: 50,
		MatchedSkills:     []string{"python"},
		MissingSkills:     []string{"kubernetes"},
		JobTitle:          "Backend Developer",
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	mock.ExpectExec("INSERT INTO resume_analyses").
		WithArgs(
			analysis.ID,
			analysis.UserID,
			analysis.ResumeID,
			82.0,
			75.0,
			70.0,
			88.0,
			analysis.JobMatchScore,
			analysis.SkillMatchPercent,
			[]byte(`["python"]`),
			[]byte(`["kubernetes"]`),
			[]byte(`[]`),
			[]byte(`[]`),
			sqlmock.AnyArg(), // llm_analysis
			analysis.JobTitle,
			analysis.CreatedAt,
			analysis.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDToleratesMissingResume(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(analysisRowColumns()).AddRow(
		"analysis-1", "user-1", "resume-gone", 82.0, 75.0,
		70.0, 88.0, 64.2,
		50.0, []byte(`["python"]`), []byte(`[]`),
		[]byte(`[]`), []byte(`[]`), []byte(`{}`), "Backend Developer",
		now, now, nil, nil,
	)
	mock.ExpectQuery("SELECT .+ FROM resume_analyses a").
		WithArgs("analysis-1", "user-1").
		WillReturnRows(rows)

	item, err := repo.GetByID(context.Background(), "user-1", "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if item.ResumeMetadata != nil {
		t.Fatalf("expected nil metadata for a deleted resume, got %+v", item.ResumeMetadata)
	}
	if item.ATSScore.ATSScore != 82 {
		t.Fatalf("unexpected ats score: %v", item.ATSScore.ATSScore)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM resume_analyses a").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows(analysisRowColumns()))

	_, err := repo.GetByID(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoLatestOrphanIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(analysisRowColumns()).AddRow(
		"analysis-1", "user-1", "resume-gone", 82.0, 75.0,
		70.0, 88.0, 64.2,
		50.0, []byte(`[]`), []byte(`[]`),
		[]byte(`[]`), []byte(`[]`), []byte(`{}`), "",
		now, now, nil, nil,
	)
	mock.ExpectQuery("SELECT .+ FROM resume_analyses a").
		WithArgs("user-1").
		WillReturnRows(rows)

	_, err := repo.Latest(context.Background(), "user-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for orphaned latest, got %v", err)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM resume_analyses WHERE id").
		WithArgs("missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
