package sequencer

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/go-ulidgen/internal/domain"
)

// --- mock ---

type mockSource struct{ mock.Mock }

func (m *mockSource) Next() (domain.Entropy, error) {
	args := m.Called()
	return args.Get(0).(domain.Entropy), args.Error(1)
}

var (
	payloadA = domain.Entropy{0, 0, 0, 0, 0, 0, 0, 0, 0, 0xaa}
	payloadB = domain.Entropy{0, 0, 0, 0, 0, 0, 0, 0, 0, 0xbb}
	maxed    = domain.Entropy{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
)

func TestNext_FirstItemDrawsFresh(t *testing.T) {
	src := &mockSource{}
	src.On("Next").Return(payloadA, nil).Once()

	u, err := New(src).Next(1000, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ULID{Timestamp: 1000, Entropy: payloadA}, u)
	src.AssertExpectations(t)
}

func TestNext_SameMillisecondIncrements(t *testing.T) {
	src := &mockSource{}
	prev := domain.ULID{Timestamp: 1000, Entropy: payloadA}

	u, err := New(src).Next(1000, &prev)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), u.Timestamp)
	assert.Equal(t, domain.Entropy{0, 0, 0, 0, 0, 0, 0, 0, 0, 0xab}, u.Entropy)
	src.AssertNotCalled(t, "Next")
}

func TestNext_NewMillisecondDrawsFresh(t *testing.T) {
	src := &mockSource{}
	src.On("Next").Return(payloadB, nil).Once()
	prev := domain.ULID{Timestamp: 1000, Entropy: payloadA}

	u, err := New(src).Next(1001, &prev)
	require.NoError(t, err)
	assert.Equal(t, domain.ULID{Timestamp: 1001, Entropy: payloadB}, u)
	src.AssertExpectations(t)
}

func TestNext_Overflow(t *testing.T) {
	src := &mockSource{}
	prev := domain.ULID{Timestamp: 1000, Entropy: maxed}

	_, err := New(src).Next(1000, &prev)
	assert.ErrorIs(t, err, domain.ErrMonotonicOverflow)
	src.AssertNotCalled(t, "Next")
}

func TestNext_MaxedPayloadInNewMillisecondIsFine(t *testing.T) {
	src := &mockSource{}
	src.On("Next").Return(payloadA, nil).Once()
	prev := domain.ULID{Timestamp: 1000, Entropy: maxed}

	u, err := New(src).Next(1001, &prev)
	require.NoError(t, err)
	assert.Equal(t, payloadA, u.Entropy)
}

func TestNext_SourceErrorPropagates(t *testing.T) {
	src := &mockSource{}
	src.On("Next").Return(domain.Entropy{}, domain.ErrEntropyUnavailable).Once()

	_, err := New(src).Next(1000, nil)
	assert.ErrorIs(t, err, domain.ErrEntropyUnavailable)
}

func TestIncrement(t *testing.T) {
	cases := []struct {
		name     string
		in, want domain.Entropy
		overflow bool
	}{
		{"zero", domain.Entropy{}, domain.Entropy{0, 0, 0, 0, 0, 0, 0, 0, 0, 1}, false},
		{"single carry", domain.Entropy{0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff}, domain.Entropy{0, 0, 0, 0, 0, 0, 0, 0, 1, 0}, false},
		{"long carry", domain.Entropy{0, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, domain.Entropy{0, 0x80, 0, 0, 0, 0, 0, 0, 0, 0}, false},
		{"top byte untouched", domain.Entropy{0x12, 0, 0, 0, 0, 0, 0, 0, 0, 0x34}, domain.Entropy{0x12, 0, 0, 0, 0, 0, 0, 0, 0, 0x35}, false},
		{"overflow", maxed, domain.Entropy{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, overflow := Increment(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.overflow, overflow)
		})
	}
}

func TestIncrement_MatchesBigIntAddition(t *testing.T) {
	e := domain.Entropy{0x9d, 0xe4, 0x3f, 0x7f, 0x44, 0x5f, 0x6b, 0x8b, 0x23, 0xff}
	next, overflow := Increment(e)
	require.False(t, overflow)

	want := e.Uint()
	want.Add(want, big.NewInt(1))
	assert.Equal(t, 0, want.Cmp(next.Uint()))
}
