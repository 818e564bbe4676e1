package classfile

import (
	"errors"
	"fmt"
)

// ErrInvalidClassData is the kind shared by every structural failure:
// truncated input, bad magic, malformed modified UTF-8, length mismatches.
// Callers test for it with errors.Is; the wrapped message carries the detail.
var ErrInvalidClassData = errors.New("invalid class data")

func invalidClassData(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidClassData, fmt.Sprintf(format, args...))
}

// UnsupportedVersionError reports a class file whose major version is outside
// the range this decoder accepts.
type UnsupportedVersionError struct {
	Major uint16
	Minor uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported class file version %d.%d", e.Major, e.Minor)
}

// InvalidConstantPoolIndexError reports a constant pool reference that is
// zero, out of range, or points at the continuation slot of a Long or Double.
type InvalidConstantPoolIndexError struct {
	Index uint16
}

func (e *InvalidConstantPoolIndexError) Error() string {
	return fmt.Sprintf("invalid constant pool index: %d", e.Index)
}
