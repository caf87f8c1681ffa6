package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-ulidgen/internal/application/entropy"
	"github.com/go-ulidgen/internal/application/sequencer"
	"github.com/go-ulidgen/internal/application/timestamp"
	"github.com/go-ulidgen/internal/domain"
	"github.com/go-ulidgen/internal/pkg/id"
	"github.com/go-ulidgen/internal/pkg/logging"
	"github.com/go-ulidgen/internal/pkg/validate"
)

// maxPrealloc bounds the up-front allocation for very large batches.
const maxPrealloc = 1024

type Service interface {
	// Generate returns exactly req.Count ULIDs in strictly increasing order, or the first error.
	// A failed batch returns no ULIDs.
	Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.ULID, error)
	Inspect(ctx context.Context, s string) (*domain.InspectionResult, error)
}

type timestampResolver interface {
	Resolve(pinMs *uint64, pinDatetime *string) (uint64, error)
}

type ulidSequencer interface {
	Next(timestampMs uint64, previous *domain.ULID) (domain.ULID, error)
}

// ServiceDeps holds the collaborators of the engine. MaxCount of 0 means no limit.
type ServiceDeps struct {
	Resolver  timestampResolver
	Sequencer ulidSequencer
	Logger    *slog.Logger
	MaxCount  int
}

type service struct {
	resolver  timestampResolver
	sequencer ulidSequencer
	logger    *slog.Logger
	maxCount  int
}

func NewService(deps ServiceDeps) Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &service{
		resolver:  deps.Resolver,
		sequencer: deps.Sequencer,
		logger:    logger,
		maxCount:  deps.MaxCount,
	}
}

// NewSystemService wires the wall clock and crypto/rand.
func NewSystemService(logger *slog.Logger, maxCount int) Service {
	return NewService(ServiceDeps{
		Resolver:  timestamp.NewResolver(timestamp.SystemClock{}),
		Sequencer: sequencer.New(entropy.NewSecureSource()),
		Logger:    logger,
		MaxCount:  maxCount,
	})
}

func (s *service) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.ULID, error) {
	if req.TimestampMs != nil && req.Datetime != nil {
		return nil, domain.ErrConflictingTimestampSource
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if s.maxCount > 0 && req.Count > s.maxCount {
		return nil, fmt.Errorf("%w: %d exceeds the limit of %d", domain.ErrBatchTooLarge, req.Count, s.maxCount)
	}

	out := make([]domain.ULID, 0, min(req.Count, maxPrealloc))
	var previous *domain.ULID
	for i := range req.Count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ts, err := s.resolver.Resolve(req.TimestampMs, req.Datetime)
		if err != nil {
			return nil, err
		}
		// A clock that stepped back keeps the previous millisecond so the batch stays ordered.
		if previous != nil && ts < previous.Timestamp {
			ts = previous.Timestamp
		}
		next, err := s.sequencer.Next(ts, previous)
		if err != nil {
			if errors.Is(err, domain.ErrMonotonicOverflow) {
				logging.Event(ctx, s.logger, slog.LevelWarn, "monotonic_overflow",
					slog.Int("index", i), slog.Uint64("timestamp_ms", ts))
			}
			return nil, err
		}
		out = append(out, next)
		previous = &next
	}

	logging.Event(ctx, s.logger, slog.LevelDebug, "batch_generated",
		slog.Int("count", len(out)), slog.Bool("pinned", req.Pinned()))
	return out, nil
}

func (s *service) Inspect(ctx context.Context, in string) (*domain.InspectionResult, error) {
	u, err := id.Decode(in)
	if err != nil {
		return nil, err
	}
	res := &domain.InspectionResult{
		ULID:      u,
		Canonical: id.Encode(u, domain.CaseUpper),
		Time:      u.Time(),
		UnixMilli: u.Timestamp,
		Random:    u.Entropy,
	}
	logging.Event(ctx, s.logger, slog.LevelDebug, "ulid_inspected", slog.String("ulid", res.Canonical))
	return res, nil
}
