package division

import "errors"

// Sentinel kinds for division resolution errors.
var (
	ErrUnresolved = errors.New("division unresolved")
)
