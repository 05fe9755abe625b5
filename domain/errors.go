package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrEmptyToken  = fmt.Errorf("%w: token is required", ErrValidation)
	ErrInvalidId   = fmt.Errorf("%w: invalid id", ErrValidation)
	ErrUnknownKind = fmt.Errorf("%w: unknown kind", ErrValidation)
	ErrNotFound    = errors.New("not found")
)
