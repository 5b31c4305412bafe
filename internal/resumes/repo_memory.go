package resumes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// analysisPurger removes analyses referencing a deleted resume. The
// in-memory analyses repo satisfies it.
type analysisPurger interface {
	RemoveByResume(ctx context.Context, resumeID string) error
}

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu       sync.RWMutex
	byID     map[string]Resume
	Analyses analysisPurger
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Resume)}
}

// Create stores a resume, demoting other primaries of the user.
func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if resume.IsPrimary {
		r.demoteOtherPrimaries(resume.UserID, resume.ID)
	}
	r.byID[resume.ID] = resume
	return nil
}

// Replace overwrites an existing owned resume, preserving created_at.
func (r *MemoryRepo) Replace(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[resume.ID]
	if !ok || existing.UserID != resume.UserID {
		return ErrNotFound
	}
	if resume.IsPrimary {
		r.demoteOtherPrimaries(resume.UserID, resume.ID)
	}
	resume.CreatedAt = existing.CreatedAt
	r.byID[resume.ID] = resume
	return nil
}

// GetByID distinguishes missing resumes from unowned ones.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	if resume.UserID != userID {
		return Resume{}, ErrUnauthorized
	}
	return resume, nil
}

// ListByUser returns the user's resumes newest-first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Resume
	for _, resume := range r.byID {
		if resume.UserID == userID {
			out = append(out, resume)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes the resume and purges its analyses.
func (r *MemoryRepo) Delete(ctx context.Context, userID, resumeID string) error {
	if _, err := r.GetByID(ctx, userID, resumeID); err != nil {
		return err
	}
	if r.Analyses != nil {
		if err := r.Analyses.RemoveByResume(ctx, resumeID); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, resumeID)
	return nil
}

// Search mirrors the Postgres filter semantics in memory.
func (r *MemoryRepo) Search(ctx context.Context, userID string, filters SearchFilters, limit, offset int) ([]Resume, error) {
	all, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var out []Resume
	for _, resume := range all {
		if matchesFilters(resume, filters) {
			out = append(out, resume)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := scoreOrNegative(out[i]), scoreOrNegative(out[j])
		if si != sj {
			return si > sj
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	if offset >= len(out) {
		return []Resume{}, nil
	}
	end := len(out)
	if offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// Analytics aggregates the user's resumes.
func (r *MemoryRepo) Analytics(ctx context.Context, userID string) (Analytics, error) {
	all, err := r.ListByUser(ctx, userID)
	if err != nil {
		return Analytics{}, err
	}
	var out Analytics
	out.TotalResumes = len(all)
	var scoreSum float64
	var scored int
	var last time.Time
	for _, resume := range all {
		if resume.ATSScore != nil {
			score := *resume.ATSScore
			scoreSum += score
			scored++
			if score > out.MaxScore {
				out.MaxScore = score
			}
			if out.MinScore == 0 || score < out.MinScore {
				out.MinScore = score
			}
		}
		if resume.UpdatedAt.After(last) {
			last = resume.UpdatedAt
		}
		out.TotalProjects += len(resume.Projects)
		out.TotalWorkExperiences += len(resume.WorkExperiences)
		out.TotalCertifications += len(resume.Certifications)
	}
	if scored > 0 {
		out.AverageScore = scoreSum / float64(scored)
	}
	if !last.IsZero() {
		out.LastUpdated = &last
	}
	return out, nil
}

// ResumeMeta exposes the name/primary projection the in-memory
// analyses repo joins onto its records.
func (r *MemoryRepo) ResumeMeta(ctx context.Context, resumeID string) (string, bool, bool) {
	if ctx.Err() != nil {
		return "", false, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[resumeID]
	if !ok {
		return "", false, false
	}
	return resume.ResumeName, resume.IsPrimary, true
}

func (r *MemoryRepo) demoteOtherPrimaries(userID, excludeID string) {
	for id, resume := range r.byID {
		if resume.UserID == userID && resume.IsPrimary && id != excludeID {
			resume.IsPrimary = false
			resume.UpdatedAt = time.Now().UTC()
			r.byID[id] = resume
		}
	}
}

func matchesFilters(resume Resume, filters SearchFilters) bool {
	if filters.MinScore != nil {
		if resume.ATSScore == nil || *resume.ATSScore < *filters.MinScore {
			return false
		}
	}
	if len(filters.Keywords) > 0 {
		haystack := strings.ToLower(resume.ResumeName + " " + strings.Join(resume.Keywords, " "))
		if !containsAny(haystack, filters.Keywords) {
			return false
		}
	}
	if len(filters.Skills) > 0 {
		var parts []string
		for _, group := range resume.Skills.TechnicalSkills {
			parts = append(parts, group.GroupName)
			parts = append(parts, group.Skills...)
		}
		for _, group := range resume.Skills.SoftSkills {
			parts = append(parts, group.GroupName)
			parts = append(parts, group.Skills...)
		}
		if !containsAny(strings.ToLower(strings.Join(parts, " ")), filters.Skills) {
			return false
		}
	}
	if len(filters.Companies) > 0 {
		var parts []string
		for _, exp := range resume.WorkExperiences {
			parts = append(parts, exp.CompanyName)
		}
		if !containsAny(strings.ToLower(strings.Join(parts, " ")), filters.Companies) {
			return false
		}
	}
	return true
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if needle == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

func scoreOrNegative(resume Resume) float64 {
	if resume.ATSScore == nil {
		return -1
	}
	return *resume.ATSScore
}

var _ Repo = (*MemoryRepo)(nil)
