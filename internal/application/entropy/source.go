// Package entropy supplies the 80-bit random payload of new ULIDs.
package entropy

import (
	"crypto/rand"
	"fmt"
	"io"
	mathrand "math/rand"
	"sync"

	"github.com/go-ulidgen/internal/domain"
)

// Source draws independent 80-bit payloads.
type Source interface {
	Next() (domain.Entropy, error)
}

type readerSource struct {
	mu sync.Mutex
	r  io.Reader
}

// NewSource reads payloads from r. Short reads and read errors surface as ErrEntropyUnavailable.
func NewSource(r io.Reader) Source {
	return &readerSource{r: r}
}

// NewSecureSource reads from crypto/rand.
func NewSecureSource() Source {
	return NewSource(rand.Reader)
}

// NewSeededSource is deterministic for a given seed. It is not suitable for production identifiers.
func NewSeededSource(seed int64) Source {
	return NewSource(mathrand.New(mathrand.NewSource(seed)))
}

func (s *readerSource) Next() (domain.Entropy, error) {
	var e domain.Entropy
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.ReadFull(s.r, e[:]); err != nil {
		return domain.Entropy{}, fmt.Errorf("%w: %v", domain.ErrEntropyUnavailable, err)
	}
	return e, nil
}
