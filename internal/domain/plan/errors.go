package plan

import "errors"

// Sentinel kinds for plan parsing and validation errors.
var (
	ErrNoJSON    = errors.New("no JSON object in response")
	ErrParse     = errors.New("response not parseable as JSON")
	ErrMalformed = errors.New("malformed recommendation response")
)
