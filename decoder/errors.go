package decoder

import (
	"fmt"

	"github.com/pkg/errors"
)

// errors
var (
	ErrInvalidHexEncoding         = errors.New("invalid hex encoding")
	ErrUnsupportedProtocolVersion = errors.New("unsupported protocol version")
	ErrTruncatedPayload           = errors.New("truncated payload")
	ErrNonFiniteValue             = errors.New("conversion resulted in a non-finite value")
	ErrInvalidCalibration         = errors.New("invalid calibration")
)

// UnsupportedProtocolVersionError is returned when the first payload byte
// does not match ProtocolVersion. It matches ErrUnsupportedProtocolVersion
// when tested with errors.Is.
type UnsupportedProtocolVersionError struct {
	Version uint8
}

func (e *UnsupportedProtocolVersionError) Error() string {
	return fmt.Sprintf("protocol version %d doesn't match v%d", e.Version, ProtocolVersion)
}

// Is implements the errors.Is interface.
func (e *UnsupportedProtocolVersionError) Is(target error) bool {
	return target == ErrUnsupportedProtocolVersion
}

// resultLabel maps a decode error to its metric label.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidHexEncoding):
		return "invalid_hex"
	case errors.Is(err, ErrUnsupportedProtocolVersion):
		return "unsupported_version"
	case errors.Is(err, ErrTruncatedPayload):
		return "truncated"
	case errors.Is(err, ErrNonFiniteValue):
		return "non_finite"
	default:
		return "error"
	}
}
