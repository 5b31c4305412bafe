package analyses

import "context"

// Repo defines persistence operations for resume analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	// GetByID tolerates a deleted resume: the analysis is returned with
	// nil metadata.
	GetByID(ctx context.Context, userID, analysisID string) (WithMetadata, error)
	// ListByUser skips analyses whose resume no longer exists.
	ListByUser(ctx context.Context, userID string) ([]WithMetadata, error)
	// Latest returns the most recently updated analysis. ErrNotFound
	// when the user has none or the owning resume is gone.
	Latest(ctx context.Context, userID string) (WithMetadata, error)
	Delete(ctx context.Context, userID, analysisID string) error
}
