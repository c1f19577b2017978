package pricing

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownCategory = errors.New("unknown vehicle category")
)
