package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// UpsertFromAuth persists the identity from OAuth so resumes and
// analyses have a stable owner. The id is generated on first login and
// kept on every later one.
func (s *Service) UpsertFromAuth(ctx context.Context, email, name, picture string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return User{}, errors.New("email is required")
	}
	return s.Repo.UpsertByEmail(ctx, User{
		ID:      uuid.NewString(),
		Email:   email,
		Name:    name,
		Picture: picture,
	})
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) UpdateName(ctx context.Context, userID, name string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, errors.New("name is required")
	}
	return s.Repo.UpdateName(ctx, userID, name)
}
