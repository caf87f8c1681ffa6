// Package id encodes and decodes ULIDs in their canonical 26-character Crockford base32 form.
package id

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/go-ulidgen/internal/domain"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// valid marks every accepted byte, upper and lower case.
var valid [256]bool

func init() {
	for i := 0; i < len(crockfordBase32); i++ {
		c := crockfordBase32[i]
		valid[c] = true
		if c >= 'A' && c <= 'Z' {
			valid[c+('a'-'A')] = true
		}
	}
}

// LengthError reports an input that is not exactly 26 bytes long.
type LengthError struct {
	Got int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: got %d bytes, want %d", domain.ErrInvalidLength, e.Got, domain.EncodedSize)
}

func (e *LengthError) Unwrap() error { return domain.ErrInvalidLength }

// CharacterError reports the first character outside the Crockford alphabet.
// Position is the 0-based byte offset at which Char starts.
type CharacterError struct {
	Position int
	Char     rune
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("%s %q at position %d", domain.ErrInvalidCharacter, e.Char, e.Position)
}

func (e *CharacterError) Unwrap() error { return domain.ErrInvalidCharacter }

// Encode renders u as 26 Crockford base32 characters. Only letters are affected by c.
func Encode(u domain.ULID, c domain.Case) string {
	s := ulid.ULID(u.Bytes()).String()
	if c == domain.CaseLower {
		return strings.ToLower(s)
	}
	return s
}

// EncodeAll encodes a batch in order.
func EncodeAll(us []domain.ULID, c domain.Case) []string {
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = Encode(u, c)
	}
	return out
}

// Decode parses a 26-character ULID string in any letter case.
func Decode(s string) (domain.ULID, error) {
	if len(s) != domain.EncodedSize {
		return domain.ULID{}, &LengthError{Got: len(s)}
	}
	for i := 0; i < len(s); i++ {
		if !valid[s[i]] {
			r, _ := utf8.DecodeRuneInString(s[i:])
			return domain.ULID{}, &CharacterError{Position: i, Char: r}
		}
	}
	// 26 characters carry 130 bits; anything above '7' up front sets one of the top two.
	if s[0] > '7' {
		return domain.ULID{}, fmt.Errorf("%w: leading character %q", domain.ErrOverflow, s[0])
	}

	parsed, err := ulid.ParseStrict(s)
	if err != nil {
		if errors.Is(err, ulid.ErrOverflow) {
			return domain.ULID{}, domain.ErrOverflow
		}
		return domain.ULID{}, fmt.Errorf("%w: %v", domain.ErrInvalidCharacter, err)
	}
	return domain.FromBytes(parsed), nil
}

// Valid reports whether s decodes as a ULID.
func Valid(s string) bool {
	_, err := Decode(s)
	return err == nil
}
