package domain

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"time"
)

const (
	// EncodedSize is the length of a canonical ULID string.
	EncodedSize = 26
	// EntropySize is the number of random bytes in a ULID.
	EntropySize = 10
	// MaxTimestamp is the largest millisecond value that fits in 48 bits (year 10889).
	MaxTimestamp uint64 = 1<<48 - 1
	// TimeLayout renders inspected timestamps with millisecond precision and an explicit offset.
	TimeLayout = "2006-01-02T15:04:05.000-07:00"
)

// Entropy is the 80-bit random payload of a ULID, stored big-endian.
type Entropy [EntropySize]byte

// Hex renders the payload as a 0x-prefixed, zero-padded 20 digit hex string.
func (e Entropy) Hex() string {
	return "0x" + hex.EncodeToString(e[:])
}

// Uint returns the payload as an unsigned integer.
func (e Entropy) Uint() *big.Int {
	return new(big.Int).SetBytes(e[:])
}

// ULID is a 48-bit millisecond timestamp followed by an 80-bit random payload.
// Timestamp must not exceed MaxTimestamp.
type ULID struct {
	Timestamp uint64
	Entropy   Entropy
}

// Bytes returns the 16-byte binary form: 6 bytes of big-endian timestamp, then the entropy.
func (u ULID) Bytes() [16]byte {
	var b [16]byte
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], u.Timestamp)
	copy(b[:6], ts[2:])
	copy(b[6:], u.Entropy[:])
	return b
}

// FromBytes is the inverse of ULID.Bytes.
func FromBytes(b [16]byte) ULID {
	var ts [8]byte
	copy(ts[2:], b[:6])
	u := ULID{Timestamp: binary.BigEndian.Uint64(ts[:])}
	copy(u.Entropy[:], b[6:])
	return u
}

// Compare orders ULIDs by (Timestamp, Entropy), which matches the order of their encodings.
func (u ULID) Compare(other ULID) int {
	if c := cmp.Compare(u.Timestamp, other.Timestamp); c != 0 {
		return c
	}
	return bytes.Compare(u.Entropy[:], other.Entropy[:])
}

// Time returns the embedded timestamp in UTC.
func (u ULID) Time() time.Time {
	return time.UnixMilli(int64(u.Timestamp)).UTC()
}

// Case selects the letter casing of encoded output.
type Case string

const (
	CaseUpper Case = "upper"
	CaseLower Case = "lower"
)

// GenerationRequest describes one batch. TimestampMs and Datetime are mutually exclusive pins;
// leaving both nil means "now" is resolved per item.
type GenerationRequest struct {
	Count       int     `json:"count" validate:"gte=1"`
	TimestampMs *uint64 `json:"timestamp,omitempty"`
	Datetime    *string `json:"datetime,omitempty"`
	Case        Case    `json:"case,omitempty" validate:"omitempty,oneof=upper lower"`
}

// Pinned reports whether the request fixes the timestamp for every item.
func (r GenerationRequest) Pinned() bool {
	return r.TimestampMs != nil || r.Datetime != nil
}

// InspectionResult is the decoded view of a ULID string.
type InspectionResult struct {
	ULID      ULID
	Canonical string
	Time      time.Time // UTC, millisecond precision
	UnixMilli uint64
	Random    Entropy
}
