package generation

import "errors"

// Common generation errors.
var (
	// ErrInvalidConfig indicates the generator was constructed with
	// invalid or incomplete configuration.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrGenerationFailed indicates the external completion call failed
	// after exhausting retries.
	ErrGenerationFailed = errors.New("content generation failed")

	// ErrInvalidResponse indicates the completion API returned content
	// that could not be parsed into the expected structure.
	ErrInvalidResponse = errors.New("invalid response from completion API")
)
