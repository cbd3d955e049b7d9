package errors

import "fmt"

var (
	ErrCatalogMissing           = fmt.Errorf("intent catalog not found")
	ErrCatalogMalformed         = fmt.Errorf("intent catalog is malformed")
	ErrCatalogEmpty             = fmt.Errorf("intent catalog has no intents")
	ErrIntentWithoutResponses   = fmt.Errorf("intent has no responses")
	ErrUnsupportedCatalogFormat = fmt.Errorf("unsupported catalog format")
	ErrUnknownCatalogSource     = fmt.Errorf("unknown catalog source")
	ErrEmptyMessage             = fmt.Errorf("message is empty")
	ErrMessageTooLong           = fmt.Errorf("message is too long")
)
