package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Components wrap these so transports can map them to exit codes and HTTP statuses
// without inspecting messages.
var (
	ErrConflictingTimestampSource = errors.New("conflicting timestamp source: pin either milliseconds or a datetime, not both")
	ErrTimestampOutOfRange        = errors.New("timestamp out of range")
	ErrInvalidDatetimeFormat      = errors.New("invalid RFC 3339 datetime")
	ErrMonotonicOverflow          = errors.New("monotonic overflow: random bits exhausted within one millisecond")
	ErrInvalidLength              = errors.New("invalid ULID length")
	ErrInvalidCharacter           = errors.New("invalid ULID character")
	ErrOverflow                   = errors.New("ULID value exceeds 128 bits")
	ErrEntropyUnavailable         = errors.New("entropy source unavailable")
	ErrInvalidRequest             = errors.New("invalid generation request")
	ErrBatchTooLarge              = errors.New("batch too large")
)
