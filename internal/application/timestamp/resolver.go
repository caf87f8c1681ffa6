// Package timestamp resolves the 48-bit millisecond timestamp of a ULID from the clock or from a pin.
package timestamp

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/go-ulidgen/internal/domain"
)

// Resolver turns "now", a pinned millisecond value or a pinned RFC 3339 datetime into a ULID timestamp.
type Resolver struct {
	clock Clock
}

// NewResolver returns a Resolver reading "now" from clock. A nil clock means the system clock.
func NewResolver(clock Clock) *Resolver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Resolver{clock: clock}
}

// Resolve returns the millisecond timestamp for one item. At most one pin may be set.
func (r *Resolver) Resolve(pinMs *uint64, pinDatetime *string) (uint64, error) {
	switch {
	case pinMs != nil && pinDatetime != nil:
		return 0, domain.ErrConflictingTimestampSource
	case pinMs != nil:
		return checkRange(*pinMs)
	case pinDatetime != nil:
		t, err := time.Parse(time.RFC3339Nano, *pinDatetime)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDatetimeFormat, *pinDatetime)
		}
		return fromTime(t)
	default:
		return fromTime(r.clock.Now())
	}
}

func fromTime(t time.Time) (uint64, error) {
	if t.Before(time.Unix(0, 0)) {
		return 0, fmt.Errorf("%w: %s is before the Unix epoch", domain.ErrTimestampOutOfRange, t.UTC().Format(time.RFC3339Nano))
	}
	// ulid.Timestamp truncates sub-millisecond precision.
	return checkRange(ulid.Timestamp(t))
}

func checkRange(ms uint64) (uint64, error) {
	if ms > ulid.MaxTime() {
		return 0, fmt.Errorf("%w: %d exceeds %d", domain.ErrTimestampOutOfRange, ms, domain.MaxTimestamp)
	}
	return ms, nil
}
