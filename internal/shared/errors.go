package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrSourceUnavailable  = fmt.Errorf("playlist source unavailable")

	// Pipeline errors
	ErrInvalidReference        = fmt.Errorf("invalid playlist reference")
	ErrEmptyPlaylist           = fmt.Errorf("playlist is empty")
	ErrClassificationSchema    = fmt.Errorf("classification response failed schema validation")
	ErrClassificationIntegrity = fmt.Errorf("classification result violates batch integrity")
	ErrPlaylistCreate          = fmt.Errorf("playlist creation failed")
	ErrPlaylistInsert          = fmt.Errorf("playlist insertion failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
