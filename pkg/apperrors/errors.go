package apperrors

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidCategory      = errors.New("invalid content category")
	ErrMissingPropertyFacts = errors.New("property facts required for scoring")
)
