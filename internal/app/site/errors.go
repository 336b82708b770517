package site

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid_request")
	ErrNotFound         = errors.New("not_found")
	ErrNotAuthenticated = errors.New("not_authenticated")
)
