package calculation

import "errors"

// Error categories returned by validation and the amortization helpers.
// Callers should match them with errors.Is; every returned error wraps one.
var (
	// ErrInvalidInput covers non-positive principal, term or salary and negative rates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfRangeConfig covers age ordering violations.
	ErrOutOfRangeConfig = errors.New("configuration out of range")

	// ErrNumericOverflow covers pathological terms such as a negative month count.
	ErrNumericOverflow = errors.New("numeric overflow")
)
