package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrMissingImage     = fmt.Errorf("%w: no image provided", ErrValidation)
	ErrNotFound         = errors.New("image not found")
	ErrInvalidBlobInput = errors.New("invalid data URL")
	ErrCorruptState     = errors.New("gallery data is corrupt")
)
