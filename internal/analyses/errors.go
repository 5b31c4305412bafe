package analyses

import "errors"

var ErrNotFound = errors.New("resume analysis not found")
