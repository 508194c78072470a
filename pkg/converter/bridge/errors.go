package bridge

import "errors"

// Conversion errors. All of them except ErrConverterClosed and ErrInvalidState
// are fatal and poison the Converter.
var (
	ErrGeometryNotClosed = errors.New("source geometry is not closed")
	ErrUnknownElement    = errors.New("unknown element")
	ErrUnsupportedShape  = errors.New("unsupported shape")
	ErrMissingMaterial   = errors.New("missing material")
	ErrMultipleRoots     = errors.New("multiple root nodes")
	ErrConverterClosed   = errors.New("converter is closed")
	ErrInvalidState      = errors.New("invalid converter state")
)
