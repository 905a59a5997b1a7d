package override

import "errors"

var (
	ErrOverrideNotFound = errors.New("override not found")
	ErrUnknownKind      = errors.New("unknown override kind")
	ErrNegativeValue    = errors.New("override value must not be negative")
)
