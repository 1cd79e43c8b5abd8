package obj

import "errors"

var (
	ErrInvalidLevelData       = errors.New("obj: invalid level data")
	ErrBlockNotFound          = errors.New("obj: block not found")
	ErrInvalidStateTransition = errors.New("obj: invalid state transition")
)
