package vars

import "errors"

// Sentinel errors for context loading.
var (
	// ErrUnsupportedFormat is returned for a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported variables file format")

	// ErrUnsupportedValue is returned when a value is a list or nested mapping.
	ErrUnsupportedValue = errors.New("variable value must be a scalar")

	// ErrInvalidPair is returned for a key=value argument without a key or '='.
	ErrInvalidPair = errors.New("invalid key=value pair")
)
