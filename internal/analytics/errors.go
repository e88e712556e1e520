package analytics

import "errors"

// ErrInvalidRange means a payload range had its low bound above its high bound.
var ErrInvalidRange = errors.New("invalid payload range")
