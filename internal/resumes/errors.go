package resumes

import "errors"

var (
	ErrNotFound     = errors.New("resume not found")
	ErrUnauthorized = errors.New("resume does not belong to user")
	ErrInvalidInput = errors.New("invalid input")
)
