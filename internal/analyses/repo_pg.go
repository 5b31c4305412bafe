package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `a.id, a.user_id, a.resume_id, a.ats_score, a.format_compliance, a.keyword_optimization, a.readability, a.job_match_score, a.skill_match_percent, a.matched_skills, a.missing_skills, a.technical_skills, a.soft_skills, a.llm_analysis, a.job_title, a.created_at, a.updated_at`

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO resume_analyses (
    id, user_id, resume_id, ats_score, format_compliance, keyword_optimization,
    readability, job_match_score, skill_match_percent, matched_skills,
    missing_skills, technical_skills, soft_skills, llm_analysis, job_title,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	matched, err := marshalList(analysis.MatchedSkills)
	if err != nil {
		return err
	}
	missing, err := marshalList(analysis.MissingSkills)
	if err != nil {
		return err
	}
	technical, err := marshalList(analysis.TechnicalSkills)
	if err != nil {
		return err
	}
	soft, err := marshalList(analysis.SoftSkills)
	if err != nil {
		return err
	}
	llm, err := json.Marshal(analysis.LLMAnalysis)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.UserID,
		analysis.ResumeID,
		float64(analysis.ATSScore.ATSScore),
		float64(analysis.ATSScore.FormatCompliance),
		float64(analysis.ATSScore.KeywordOptimization),
		float64(analysis.ATSScore.Readability),
		analysis.JobMatchScore,
		analysis.SkillMatchPercent,
		matched,
		missing,
		technical,
		soft,
		llm,
		analysis.JobTitle,
		analysis.CreatedAt,
		analysis.UpdatedAt,
	)
	return err
}

// GetByID returns the analysis with its resume metadata. A deleted
// resume leaves the metadata nil rather than failing the lookup.
func (r *PGRepo) GetByID(ctx context.Context, userID, analysisID string) (WithMetadata, error) {
	query := `
SELECT ` + analysisColumns + `, r.resume_name, r.is_primary
FROM resume_analyses a
LEFT JOIN resumes r ON r.id = a.resume_id
WHERE a.id = $1 AND a.user_id = $2
LIMIT 1`
	out, err := scanWithMetadata(r.DB.QueryRowContext(ctx, query, analysisID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WithMetadata{}, ErrNotFound
		}
		return WithMetadata{}, err
	}
	return out, nil
}

// ListByUser returns the user's analyses newest-first, skipping those
// whose resume no longer exists.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]WithMetadata, error) {
	query := `
SELECT ` + analysisColumns + `, r.resume_name, r.is_primary
FROM resume_analyses a
JOIN resumes r ON r.id = a.resume_id
WHERE a.user_id = $1
ORDER BY a.updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WithMetadata
	for rows.Next() {
		item, err := scanWithMetadata(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Latest returns the most recently updated analysis with its resume.
// The newest analysis is picked first; if its resume has been deleted
// the lookup fails rather than falling back to an older run.
func (r *PGRepo) Latest(ctx context.Context, userID string) (WithMetadata, error) {
	query := `
SELECT ` + analysisColumns + `, r.resume_name, r.is_primary
FROM resume_analyses a
LEFT JOIN resumes r ON r.id = a.resume_id
WHERE a.user_id = $1
ORDER BY a.updated_at DESC
LIMIT 1`
	out, err := scanWithMetadata(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WithMetadata{}, ErrNotFound
		}
		return WithMetadata{}, err
	}
	if out.ResumeMetadata == nil {
		return WithMetadata{}, ErrNotFound
	}
	return out, nil
}

// Delete removes one analysis owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, analysisID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resume_analyses WHERE id = $1 AND user_id = $2`, analysisID, userID)
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
	return nil
}

// DeleteByResume removes every analysis referencing the resume, inside
// the caller's transaction so a resume delete cascades atomically.
func DeleteByResume(ctx context.Context, tx *sql.Tx, resumeID string) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM resume_analyses WHERE resume_id = $1`, resumeID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func marshalList(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		raw = []byte("[]")
	}
	return raw, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWithMetadata(row rowScanner) (WithMetadata, error) {
	var out WithMetadata
	var matched, missing, technical, soft, llm []byte
	var resumeName sql.NullString
	var isPrimary sql.NullBool
	err := row.Scan(
		&out.ID,
		&out.UserID,
		&out.ResumeID,
		&out.ATSScore.ATSScore,
		&out.ATSScore.FormatCompliance,
		&out.ATSScore.KeywordOptimization,
		&out.ATSScore.Readability,
		&out.JobMatchScore,
		&out.SkillMatchPercent,
		&matched,
		&missing,
		&technical,
		&soft,
		&llm,
		&out.JobTitle,
		&out.CreatedAt,
		&out.UpdatedAt,
		&resumeName,
		&isPrimary,
	)
	if err != nil {
		return WithMetadata{}, err
	}

	decode := func(raw []byte, dst any) {
		if err != nil || len(raw) == 0 {
			return
		}
		err = json.Unmarshal(raw, dst)
	}
	decode(matched, &out.MatchedSkills)
	decode(missing, &out.MissingSkills)
	decode(technical, &out.TechnicalSkills)
	decode(soft, &out.SoftSkills)
	decode(llm, &out.LLMAnalysis)
	if err != nil {
		return WithMetadata{}, err
	}

	if resumeName.Valid {
		out.ResumeMetadata = &ResumeMetadata{
			ResumeName: resumeName.String,
			IsPrimary:  isPrimary.Valid && isPrimary.Bool,
		}
	}
	return out, nil
}

var _ Repo = (*PGRepo)(nil)
