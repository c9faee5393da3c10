package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Source (chess.com) errors
	ErrMalformedReference = fmt.Errorf("malformed archive reference")
	ErrEmptyArchives      = fmt.Errorf("no archive months available")
	ErrSourceUnavailable  = fmt.Errorf("source service unavailable")

	// Destination (lichess) errors
	ErrSinkRejected = fmt.Errorf("import rejected by destination")

	// Store errors
	ErrDuplicateGame = fmt.Errorf("game already recorded")
	ErrGameNotFound  = fmt.Errorf("game not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
