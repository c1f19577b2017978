package service

import "errors"

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnavailable      = errors.New("service unavailable")
)
