package dashboard

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Service publishes aggregation results. Each refresh is stamped with a
// generation before its fetches start; a snapshot is only published if no
// newer refresh has published in the meantime, so a slow in-flight
// aggregation can never overwrite a fresher result.
type Service struct {
	aggregator *Aggregator
	logger     *zap.Logger

	generation atomic.Uint64

	mu           sync.RWMutex
	current      *Snapshot
	publishedGen uint64
}

// NewService creates a dashboard publishing service.
func NewService(aggregator *Aggregator, logger *zap.Logger) *Service {
	return &Service{aggregator: aggregator, logger: logger}
}

// Refresh runs one aggregation for the vendor and publishes the result. The
// returned snapshot is always the one this call produced, even when a newer
// generation won the publish race.
func (s *Service) Refresh(ctx context.Context, vendorCode string) (*Snapshot, error) {
	gen := s.generation.Add(1)

	snapshot, err := s.aggregator.Aggregate(ctx, vendorCode)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if gen > s.publishedGen {
		s.current = snapshot
		s.publishedGen = gen
	} else {
		s.logger.Debug("Discarding stale aggregation result",
			zap.Uint64("generation", gen),
			zap.Uint64("published_generation", s.publishedGen))
	}
	s.mu.Unlock()

	return snapshot, nil
}

// Settled runs one settle-all aggregation. Settled results are returned to
// the caller directly and never published as the current snapshot.
func (s *Service) Settled(ctx context.Context, vendorCode string) *SettledSnapshot {
	return s.aggregator.AggregateSettled(ctx, vendorCode)
}

// Current returns the most recently published snapshot, or nil when no
// aggregation has succeeded yet.
func (s *Service) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
