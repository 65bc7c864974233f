package pricing

import "errors"

// ErrUnknownRoute is returned in strict mode when a pickup/destination
// pair has no entry in the distance table.
var ErrUnknownRoute = errors.New("no distance configured for route")
