// Package sequencer enforces strict ordering of ULIDs that share a millisecond within one batch.
package sequencer

import (
	"fmt"

	"github.com/go-ulidgen/internal/domain"
)

type entropySource interface {
	Next() (domain.Entropy, error)
}

// Sequencer decides, per item, between a fresh random draw and an increment of the previous payload.
// It keeps no state; callers thread the previous ULID through successive calls.
type Sequencer struct {
	src entropySource
}

func New(src entropySource) *Sequencer {
	return &Sequencer{src: src}
}

// Next returns the ULID for timestampMs that follows previous. previous is nil for the first item.
func (s *Sequencer) Next(timestampMs uint64, previous *domain.ULID) (domain.ULID, error) {
	if previous != nil && previous.Timestamp == timestampMs {
		next, overflow := Increment(previous.Entropy)
		if overflow {
			return domain.ULID{}, fmt.Errorf("%w (timestamp %d)", domain.ErrMonotonicOverflow, timestampMs)
		}
		return domain.ULID{Timestamp: timestampMs, Entropy: next}, nil
	}

	fresh, err := s.src.Next()
	if err != nil {
		return domain.ULID{}, err
	}
	return domain.ULID{Timestamp: timestampMs, Entropy: fresh}, nil
}

// Increment adds one to e as an 80-bit big-endian integer. overflow is true when e was 2^80-1;
// the returned payload is then all zeros.
func Increment(e domain.Entropy) (next domain.Entropy, overflow bool) {
	next = e
	for i := len(next) - 1; i >= 0; i-- {
		next[i]++
		if next[i] != 0 {
			return next, false
		}
	}
	return next, true
}
