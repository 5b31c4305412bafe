package users

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

type Repo interface {
	// UpsertByEmail returns the stored user for the email, creating it
	// on first login and refreshing name/picture on later ones.
	UpsertByEmail(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	UpdateName(ctx context.Context, userID, name string) (User, error)
}
