package platform

import "errors"

// Error kinds signalled by accessibility operations. Backends wrap these so
// callers can classify failures with errors.Is.
var (
	ErrNullArgument      = errors.New("argument is nil")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrOutOfRange        = errors.New("argument out of range")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrElementNotEnabled = errors.New("element not enabled")
)

// ErrorKinds lists the known error kinds in classification order.
var ErrorKinds = []error{
	ErrNullArgument,
	ErrOutOfRange,
	ErrInvalidArgument,
	ErrElementNotEnabled,
	ErrInvalidOperation,
}

// KindOf returns the first known kind err matches, or nil.
func KindOf(err error) error {
	for _, kind := range ErrorKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
