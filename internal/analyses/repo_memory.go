package analyses

import (
	"context"
	"sort"
	"sync"
)

// ResumeMetaSource resolves resume metadata for joins. The in-memory
// resumes repo satisfies it.
type ResumeMetaSource interface {
	ResumeMeta(ctx context.Context, resumeID string) (name string, isPrimary bool, ok bool)
}

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]Analysis
	Resumes ResumeMetaSource
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Analysis)}
}

// Create stores an analysis.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[analysis.ID] = analysis
	return nil
}

// GetByID returns the analysis; a vanished resume leaves nil metadata.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, analysisID string) (WithMetadata, error) {
	if err := ctx.Err(); err != nil {
		return WithMetadata{}, err
	}
	r.mu.RLock()
	analysis, ok := r.byID[analysisID]
	r.mu.RUnlock()
	if !ok || analysis.UserID != userID {
		return WithMetadata{}, ErrNotFound
	}
	return r.join(ctx, analysis), nil
}

// ListByUser returns analyses newest-first, skipping orphans.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]WithMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var all []Analysis
	for _, analysis := range r.byID {
		if analysis.UserID == userID {
			all = append(all, analysis)
		}
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})

	var out []WithMetadata
	for _, analysis := range all {
		item := r.join(ctx, analysis)
		if item.ResumeMetadata == nil {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// Latest returns the most recently updated analysis with its resume.
// A latest run whose resume has been deleted is treated as not found.
func (r *MemoryRepo) Latest(ctx context.Context, userID string) (WithMetadata, error) {
	if err := ctx.Err(); err != nil {
		return WithMetadata{}, err
	}
	r.mu.RLock()
	var latest *Analysis
	for _, analysis := range r.byID {
		if analysis.UserID != userID {
			continue
		}
		if latest == nil || analysis.UpdatedAt.After(latest.UpdatedAt) {
			copied := analysis
			latest = &copied
		}
	}
	r.mu.RUnlock()
	if latest == nil {
		return WithMetadata{}, ErrNotFound
	}
	item := r.join(ctx, *latest)
	if item.ResumeMetadata == nil {
		return WithMetadata{}, ErrNotFound
	}
	return item, nil
}

// Delete removes one analysis owned by the user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, analysisID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok || analysis.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, analysisID)
	return nil
}

// RemoveByResume purges analyses of a deleted resume.
func (r *MemoryRepo) RemoveByResume(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, analysis := range r.byID {
		if analysis.ResumeID == resumeID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *MemoryRepo) join(ctx context.Context, analysis Analysis) WithMetadata {
	out := WithMetadata{Analysis: analysis}
	if r.Resumes != nil {
		if name, isPrimary, ok := r.Resumes.ResumeMeta(ctx, analysis.ResumeID); ok {
			out.ResumeMetadata = &ResumeMetadata{ResumeName: name, IsPrimary: isPrimary}
		}
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
