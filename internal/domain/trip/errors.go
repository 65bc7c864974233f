package trip

import "errors"

var (
	ErrTripNotFound      = errors.New("trip not found")
	ErrInvalidTransition = errors.New("invalid trip state transition")
	ErrNegativeFare      = errors.New("fare must not be negative")
	ErrFeedbackRecorded  = errors.New("feedback already recorded for trip")
)
