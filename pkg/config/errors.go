package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the config struct.
	ErrParsingConfig = errors.New("config.parse_failed")

	// ErrNilPointer is returned when Load receives a nil destination.
	ErrNilPointer = errors.New("config.nil_pointer")
)
