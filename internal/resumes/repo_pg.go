package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shoyeb45/resume-analyzer/internal/analyses"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, resume_name, is_primary, personal_info, educations, work_experiences, projects, skills, achievements, certifications, languages, publications, extracurriculars, keywords, ats_score, last_analyzed, created_at, updated_at`

// Create inserts a new resume. A primary resume demotes the user's
// other primaries inside the same transaction, so the partial unique
// index on (user_id) WHERE is_primary never trips.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if resume.IsPrimary {
		if err := demoteOtherPrimaries(ctx, tx, resume.UserID, resume.ID); err != nil {
			return err
		}
	}
	if err := insertResume(ctx, tx, resume); err != nil {
		return err
	}
	return tx.Commit()
}

// Replace overwrites an existing resume, preserving created_at.
func (r *PGRepo) Replace(ctx context.Context, resume Resume) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if resume.IsPrimary {
		if err := demoteOtherPrimaries(ctx, tx, resume.UserID, resume.ID); err != nil {
			return err
		}
	}

	const query = `
UPDATE resumes
SET resume_name = $1, is_primary = $2, personal_info = $3, educations = $4,
    work_experiences = $5, projects = $6, skills = $7, achievements = $8,
    certifications = $9, languages = $10, publications = $11,
    extracurriculars = $12, keywords = $13, ats_score = $14,
    last_analyzed = $15, updated_at = $16
WHERE id = $17 AND user_id = $18`
	cols, err := sectionPayloads(resume)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, query,
		resume.ResumeName,
		resume.IsPrimary,
		cols.personalInfo,
		cols.educations,
		cols.workExperiences,
		cols.projects,
		cols.skills,
		cols.achievements,
		cols.certifications,
		cols.languages,
		cols.publications,
		cols.extracurriculars,
		cols.keywords,
		nullFloat(resume.ATSScore),
		nullTime(resume.LastAnalyzed),
		resume.UpdatedAt,
		resume.ID,
		resume.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// GetByID distinguishes a missing resume from one owned by another user.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1 LIMIT 1`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if resume.UserID != userID {
		return Resume{}, ErrUnauthorized
	}
	return resume, nil
}

// ListByUser lists resumes newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResumes(rows)
}

// Delete removes the resume and its analyses in one transaction.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	resume, err := r.GetByID(ctx, userID, resumeID)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := analyses.DeleteByResume(ctx, tx, resume.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, resume.ID, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// Search applies the optional filters and sorts by score then recency.
func (r *PGRepo) Search(ctx context.Context, userID string, filters SearchFilters, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var (
		clauses = []string{"user_id = $1"}
		args    = []any{userID}
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filters.Keywords) > 0 {
		var ors []string
		for _, kw := range filters.Keywords {
			p := next("%" + kw + "%")
			ors = append(ors, fmt.Sprintf("(resume_name ILIKE %s OR keywords::text ILIKE %s)", p, p))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}
	if filters.MinScore != nil {
		clauses = append(clauses, "ats_score >= "+next(*filters.MinScore))
	}
	if len(filters.Skills) > 0 {
		var ors []string
		for _, skill := range filters.Skills {
			ors = append(ors, "skills::text ILIKE "+next("%"+skill+"%"))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}
	if len(filters.Companies) > 0 {
		var ors []string
		for _, company := range filters.Companies {
			ors = append(ors, "work_experiences::text ILIKE "+next("%"+company+"%"))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE ` + strings.Join(clauses, " AND ") +
		` ORDER BY ats_score DESC NULLS LAST, updated_at DESC LIMIT ` + next(limit) + ` OFFSET ` + next(offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResumes(rows)
}

// Analytics computes the aggregate in a single query.
func (r *PGRepo) Analytics(ctx context.Context, userID string) (Analytics, error) {
	const query = `
SELECT COUNT(*),
       COALESCE(AVG(ats_score), 0),
       COALESCE(MAX(ats_score), 0),
       COALESCE(MIN(ats_score), 0),
       MAX(updated_at),
       COALESCE(SUM(jsonb_array_length(projects)), 0),
       COALESCE(SUM(jsonb_array_length(work_experiences)), 0),
       COALESCE(SUM(jsonb_array_length(certifications)), 0)
FROM resumes
WHERE user_id = $1`
	var out Analytics
	var lastUpdated sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&out.TotalResumes,
		&out.AverageScore,
		&out.MaxScore,
		&out.MinScore,
		&lastUpdated,
		&out.TotalProjects,
		&out.TotalWorkExperiences,
		&out.TotalCertifications,
	)
	if err != nil {
		return Analytics{}, err
	}
	if lastUpdated.Valid {
		out.LastUpdated = &lastUpdated.Time
	}
	return out, nil
}

func demoteOtherPrimaries(ctx context.Context, tx *sql.Tx, userID, excludeID string) error {
	const query = `
UPDATE resumes
SET is_primary = FALSE, updated_at = $1
WHERE user_id = $2 AND is_primary AND id <> $3`
	_, err := tx.ExecContext(ctx, query, time.Now().UTC(), userID, excludeID)
	return err
}

func insertResume(ctx context.Context, tx *sql.Tx, resume Resume) error {
	const query = `
INSERT INTO resumes (` + resumeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	cols, err := sectionPayloads(resume)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.ResumeName,
		resume.IsPrimary,
		cols.personalInfo,
		cols.educations,
		cols.workExperiences,
		cols.projects,
		cols.skills,
		cols.achievements,
		cols.certifications,
		cols.languages,
		cols.publications,
		cols.extracurriculars,
		cols.keywords,
		nullFloat(resume.ATSScore),
		nullTime(resume.LastAnalyzed),
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

type sectionColumns struct {
	personalInfo     []byte
	educations       []byte
	workExperiences  []byte
	projects         []byte
	skills           []byte
	achievements     []byte
	certifications   []byte
	languages        []byte
	publications     []byte
	extracurriculars []byte
	keywords         []byte
}

func sectionPayloads(resume Resume) (sectionColumns, error) {
	var cols sectionColumns
	var err error
	marshal := func(dst *[]byte, v any, empty string) {
		if err != nil {
			return
		}
		var raw []byte
		raw, err = json.Marshal(v)
		if err == nil && string(raw) == "null" {
			raw = []byte(empty)
		}
		*dst = raw
	}
	marshal(&cols.personalInfo, resume.PersonalInfo, "{}")
	marshal(&cols.educations, resume.Educations, "[]")
	marshal(&cols.workExperiences, resume.WorkExperiences, "[]")
	marshal(&cols.projects, resume.Projects, "[]")
	marshal(&cols.skills, resume.Skills, "{}")
	marshal(&cols.achievements, resume.Achievements, "[]")
	marshal(&cols.certifications, resume.Certifications, "[]")
	marshal(&cols.languages, resume.Languages, "[]")
	marshal(&cols.publications, resume.Publications, "[]")
	marshal(&cols.extracurriculars, resume.Extracurriculars, "[]")
	marshal(&cols.keywords, resume.Keywords, "[]")
	return cols, err
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var personalInfo, educations, workExperiences, projects, skills []byte
	var achievements, certifications, languages, publications, extracurriculars, keywords []byte
	var atsScore sql.NullFloat64
	var lastAnalyzed sql.NullTime
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.ResumeName,
		&resume.IsPrimary,
		&personalInfo,
		&educations,
		&workExperiences,
		&projects,
		&skills,
		&achievements,
		&certifications,
		&languages,
		&publications,
		&extracurriculars,
		&keywords,
		&atsScore,
		&lastAnalyzed,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if atsScore.Valid {
		resume.ATSScore = &atsScore.Float64
	}
	if lastAnalyzed.Valid {
		resume.LastAnalyzed = &lastAnalyzed.Time
	}

	decode := func(raw []byte, dst any) {
		if err != nil || len(raw) == 0 {
			return
		}
		err = json.Unmarshal(raw, dst)
	}
	decode(personalInfo, &resume.PersonalInfo)
	decode(educations, &resume.Educations)
	decode(workExperiences, &resume.WorkExperiences)
	decode(projects, &resume.Projects)
	decode(skills, &resume.Skills)
	decode(achievements, &resume.Achievements)
	decode(certifications, &resume.Certifications)
	decode(languages, &resume.Languages)
	decode(publications, &resume.Publications)
	decode(extracurriculars, &resume.Extracurriculars)
	decode(keywords, &resume.Keywords)
	if err != nil {
		return Resume{}, err
	}
	if resume.PersonalInfo != nil && !hasContent(*resume.PersonalInfo) {
		resume.PersonalInfo = nil
	}
	return resume, nil
}

func collectResumes(rows *sql.Rows) ([]Resume, error) {
	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
