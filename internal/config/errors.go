package config

import "errors"

// Sentinel kinds for configuration errors.
var (
	ErrInvalidConfig = errors.New("configuration failed validation")
	ErrLoadConfig    = errors.New("configuration could not be loaded")
)
