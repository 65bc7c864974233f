package rating

import "errors"

var (
	ErrInvalidScore    = errors.New("feedback score must be between 1 and 5")
	ErrAlreadyRecorded = errors.New("feedback already recorded for trip")
)
