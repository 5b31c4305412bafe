package resumes

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shoyeb45/resume-analyzer/internal/analyses"
	"github.com/Shoyeb45/resume-analyzer/internal/analyzer"
	"github.com/Shoyeb45/resume-analyzer/internal/background"
	"github.com/Shoyeb45/resume-analyzer/internal/extract"
	"github.com/Shoyeb45/resume-analyzer/internal/shared/telemetry"
)

// neutralRole is used when a resume is scored without a target role.
const neutralRole = "No specific target role"

// Service contains business logic for resumes and the analysis
// pipeline.
type Service struct {
	Repo     Repo
	Analyses analyses.Repo
	Analyzer *analyzer.Analyzer
	Runner   *background.Runner
}

// AnalysisResult is the assembled outcome of one analysis run. The
// record it carries is persisted on the background runner after the
// response is written.
type AnalysisResult struct {
	ResumeID      string                 `json:"resume_id"`
	AnalysisID    string                 `json:"analysis_id"`
	ResumeDetails analyzer.ResumeDetails `json:"resume_details"`
	Analysis      analyses.Analysis      `json:"analysis"`
}

// AnalyzeResume runs the full pipeline on an uploaded resume: extract
// text, parse the structure, match and score against the job, then
// schedule persistence of both the resume and the analysis. The
// response does not wait for the write.
func (s *Service) AnalyzeResume(ctx context.Context, userID, fileName string, data []byte, jobTitle, jobDescription string) (AnalysisResult, error) {
	if err := validUserID(userID); err != nil {
		return AnalysisResult{}, err
	}

	text, err := extract.FromBytes(data, fileExt(fileName))
	if err != nil {
		return AnalysisResult{}, err
	}

	details, err := s.Analyzer.ParseResume(ctx, text)
	if err != nil {
		return AnalysisResult{}, err
	}

	matched, missing, skillMatch := analyzer.MatchSkills(text, jobDescription)
	jobMatch := analyzer.Similarity(text, jobDescription)

	overall, err := s.Analyzer.AnalyzeOverall(ctx, text, jobTitle, jobDescription)
	if err != nil {
		return AnalysisResult{}, err
	}
	// The local matcher is authoritative for skill overlap.
	overall.MatchedSkills = matched
	overall.MissingSkills = missing

	ats, err := s.Analyzer.ScoreResume(ctx, text, jobTitle, jobDescription)
	if err != nil {
		return AnalysisResult{}, err
	}

	sections, err := s.Analyzer.AnalyzeSections(ctx, text, jobTitle, jobDescription)
	if err != nil {
		return AnalysisResult{}, err
	}

	technical := details.TechnicalSkills
	soft := details.SoftSkills
	if len(technical) == 0 && len(soft) == 0 {
		technical, soft = analyzer.DetectSkillGroups(text)
	}

	now := time.Now().UTC()
	resume := Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		ResumeName: fileName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	resume.ApplyDetails(details)
	score := float64(ats.ATSScore)
	resume.ATSScore = &score
	resume.LastAnalyzed = &now

	analysis := analyses.Analysis{
		ID:                uuid.NewString(),
		UserID:            userID,
		ResumeID:          resume.ID,
		ATSScore:          ats,
		JobMatchScore:     jobMatch,
		SkillMatchPercent: skillMatch,
		MatchedSkills:     matched,
		MissingSkills:     missing,
		TechnicalSkills:   technical,
		SoftSkills:        soft,
		LLMAnalysis: analyses.LLMAnalysis{
			OverallAnalysis:     overall,
			SectionWiseAnalysis: sections,
		},
		JobTitle:  jobTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.persistAnalysis(ctx, resume, analysis)

	return AnalysisResult{
		ResumeID:      resume.ID,
		AnalysisID:    analysis.ID,
		ResumeDetails: details,
		Analysis:      analysis,
	}, nil
}

// persistAnalysis schedules the two writes on the background runner so
// the request does not wait for the database. The task keeps running
// even if the request is gone; without a runner it falls back to an
// inline write.
func (s *Service) persistAnalysis(ctx context.Context, resume Resume, analysis analyses.Analysis) {
	write := func(ctx context.Context) error {
		if err := s.Repo.Create(ctx, resume); err != nil {
			return err
		}
		return s.Analyses.Create(ctx, analysis)
	}
	if s.Runner != nil {
		if err := s.Runner.Submit("resume.analysis.persist", write); err == nil {
			return
		}
	}
	if err := write(ctx); err != nil {
		telemetry.Error("resume.analysis.persist", map[string]any{
			"resume_id":   resume.ID,
			"analysis_id": analysis.ID,
			"error":       err.Error(),
		})
	}
}

// ExtractResume parses and scores an uploaded resume without a target
// job and persists it synchronously.
func (s *Service) ExtractResume(ctx context.Context, userID, fileName string, data []byte) (Resume, error) {
	if err := validUserID(userID); err != nil {
		return Resume{}, err
	}

	text, err := extract.FromBytes(data, fileExt(fileName))
	if err != nil {
		return Resume{}, err
	}

	details, err := s.Analyzer.ParseResume(ctx, text)
	if err != nil {
		return Resume{}, err
	}

	ats, err := s.Analyzer.ScoreResume(ctx, text, neutralRole, "")
	if err != nil {
		return Resume{}, err
	}

	now := time.Now().UTC()
	resume := Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		ResumeName: fileName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	resume.ApplyDetails(details)
	score := float64(ats.ATSScore)
	resume.ATSScore = &score

	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Upsert replaces a stored resume, or creates one when no id is given.
// A provided id that does not resolve to a resume of this user is not
// found; the create path never reuses a stale id.
func (s *Service) Upsert(ctx context.Context, userID, resumeID, name string, isPrimary bool, details analyzer.ResumeDetails) (Resume, error) {
	if err := validUserID(userID); err != nil {
		return Resume{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Resume{}, ErrInvalidInput
	}

	now := time.Now().UTC()

	if resumeID == "" {
		resume := Resume{
			ID:         uuid.NewString(),
			UserID:     userID,
			ResumeName: name,
			IsPrimary:  isPrimary,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		resume.ApplyDetails(details)
		if err := s.Repo.Create(ctx, resume); err != nil {
			return Resume{}, err
		}
		return resume, nil
	}

	existing, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		// An unowned id looks the same as a missing one to the caller.
		if errors.Is(err, ErrUnauthorized) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}

	resume := Resume{
		ID:           existing.ID,
		UserID:       userID,
		ResumeName:   name,
		IsPrimary:    isPrimary,
		ATSScore:     existing.ATSScore,
		LastAnalyzed: existing.LastAnalyzed,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    now,
	}
	resume.ApplyDetails(details)
	if err := s.Repo.Replace(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Get fetches one resume owned by the user.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns all resumes of the user.
func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Delete removes a resume and its analyses.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	return s.Repo.Delete(ctx, userID, resumeID)
}

// Search filters the user's resumes.
func (s *Service) Search(ctx context.Context, userID string, filters SearchFilters, limit, offset int) ([]Resume, error) {
	return s.Repo.Search(ctx, userID, filters, limit, offset)
}

// Analytics aggregates the user's resume collection.
func (s *Service) Analytics(ctx context.Context, userID string) (Analytics, error) {
	return s.Repo.Analytics(ctx, userID)
}

func validUserID(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return ErrInvalidInput
	}
	return nil
}

func fileExt(fileName string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
}
