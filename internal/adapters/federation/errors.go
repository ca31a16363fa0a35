package federation

import "errors"

// Sentinel kinds for federation API errors.
var (
	ErrRequest = errors.New("federation request failed")
	ErrStatus  = errors.New("federation returned non-success status")
	ErrDecode  = errors.New("federation response is not decodable")
)
