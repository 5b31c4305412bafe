package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
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

func resumeRowColumns() []string {
	return []string{
		"id", "user_id", "resume_name", "is_primary", "personal_info",
		"educations", "work_experiences", "projects", "skills",
		"achievements", "certifications", "languages", "publications",
		"extracurriculars", "keywords", "ats_score", "last_analyzed",
		"created_at", "updated_at",
	}
}

func stubResumeRow(id, userID string, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(resumeRowColumns()).AddRow(
		id, userID, "resume.pdf", false, []byte(`{}`),
		[]byte(`[]`), []byte(`[]`), []byte(`[]`), []byte(`{"technical_skills":[],"soft_skills":[]}`),
		[]byte(`[]`), []byte(`[]`), []byte(`[]`), []byte(`[]`),
		[]byte(`[]`), []byte(`["go"]`), 78.5, now,
		now, now,
	)
}

func TestPGRepoCreatePrimaryDemotesOthers(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	resume := Resume{
		ID:         "resume-1",
		UserID:     "user-1",
		ResumeName: "resume.pdf",
		IsPrimary:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE resumes").
		WithArgs(sqlmock.AnyArg(), resume.UserID, resume.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO resumes").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateNonPrimarySkipsDemote(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	resume := Resume{ID: "resume-1", UserID: "user-1", ResumeName: "resume.pdf", CreatedAt: now, UpdatedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO resumes").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoReplaceMissingIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE resumes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), Resume{ID: "missing", UserID: "user-1", ResumeName: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDUnauthorized(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM resumes WHERE id").
		WithArgs("resume-1").
		WillReturnRows(stubResumeRow("resume-1", "owner", now))

	_, err := repo.GetByID(context.Background(), "intruder", "resume-1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestPGRepoGetByIDScansSections(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM resumes WHERE id").
		WithArgs("resume-1").
		WillReturnRows(stubResumeRow("resume-1", "user-1", now))

	resume, err := repo.GetByID(context.Background(), "user-1", "resume-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if resume.PersonalInfo != nil {
		t.Fatalf("expected empty personal_info to scan as nil")
	}
	if resume.ATSScore == nil || *resume.ATSScore != 78.5 {
		t.Fatalf("unexpected ats score: %v", resume.ATSScore)
	}
	if len(resume.Keywords) != 1 || resume.Keywords[0] != "go" {
		t.Fatalf("unexpected keywords: %v", resume.Keywords)
	}
}

func TestPGRepoDeleteCascadesAnalyses(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM resumes WHERE id").
		WithArgs("resume-1").
		WillReturnRows(stubResumeRow("resume-1", "user-1", now))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM resume_analyses WHERE resume_id").
		WithArgs("resume-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM resumes WHERE id").
		WithArgs("resume-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), "user-1", "resume-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSearchBuildsFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	minScore := 70.0
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM resumes WHERE user_id").
		WithArgs("user-1", "%golang%", minScore, "%python%", "%acme%", 20, 0).
		WillReturnRows(stubResumeRow("resume-1", "user-1", now))

	out, err := repo.Search(context.Background(), "user-1", SearchFilters{
		Keywords:  []string{"golang"},
		MinScore:  &minScore,
		Skills:    []string{"python"},
		Companies: []string{"acme"},
	}, 0, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out) != 1 || out[0].ID != "resume-1" {
		t.Fatalf("unexpected search result: %+v", out)
	}
}

func TestPGRepoAnalytics(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"count", "avg", "max", "min", "max_updated", "projects", "experiences", "certifications",
	}).AddRow(3, 72.5, 90.0, 55.0, now, 7, 4, 2)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("user-1").
		WillReturnRows(rows)

	analytics, err := repo.Analytics(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if analytics.TotalResumes != 3 || analytics.AverageScore != 72.5 {
		t.Fatalf("unexpected analytics: %+v", analytics)
	}
	if analytics.TotalProjects != 7 || analytics.TotalWorkExperiences != 4 || analytics.TotalCertifications != 2 {
		t.Fatalf("unexpected totals: %+v", analytics)
	}
	if analytics.LastUpdated == nil {
		t.Fatalf("expected last updated to be set")
	}
}
