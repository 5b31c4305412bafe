package resumes

import (
	"context"
	"time"
)

// SearchFilters narrows a user's resumes. All filters are optional and
// combine with AND; values inside keywords/skills/companies match with
// OR, case-insensitively.
type SearchFilters struct {
	Keywords  []string
	MinScore  *float64
	Skills    []string
	Companies []string
}

// Analytics aggregates a user's resume collection.
type Analytics struct {
	TotalResumes         int        `json:"total_resumes"`
	AverageScore         float64    `json:"average_score"`
	MaxScore             float64    `json:"max_score"`
	MinScore             float64    `json:"min_score"`
	LastUpdated          *time.Time `json:"last_updated"`
	TotalProjects        int        `json:"total_projects"`
	TotalWorkExperiences int        `json:"total_work_experiences"`
	TotalCertifications  int        `json:"total_certifications"`
}

// Repo defines persistence operations for resumes.
type Repo interface {
	// Create inserts a new resume. When the resume is primary, any
	// other primary resume of the user is demoted in the same
	// transaction.
	Create(ctx context.Context, resume Resume) error
	// Replace overwrites an existing resume owned by the user,
	// preserving id and created_at. Returns ErrNotFound when the id
	// does not exist or belongs to someone else.
	Replace(ctx context.Context, resume Resume) error
	// GetByID returns ErrNotFound for a missing id and ErrUnauthorized
	// when the resume belongs to another user.
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	// Delete removes the resume and every analysis referencing it in
	// one transaction.
	Delete(ctx context.Context, userID, resumeID string) error
	Search(ctx context.Context, userID string, filters SearchFilters, limit, offset int) ([]Resume, error)
	Analytics(ctx context.Context, userID string) (Analytics, error)
}
