package repository

import (
	"context"
	"sync"
	"time"

	"github.com/piresc/storefront/internal/pkg/logger"
)

// Sweepable is an in-memory store that can drop stale entries
type Sweepable interface {
	Sweep(now time.Time) int
}

// Sweeper periodically evicts stale rate-limit records and sessions
type Sweeper struct {
	interval time.Duration
	targets  map[string]Sweepable
	now      func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSweeper creates a sweeper over the named targets
func NewSweeper(interval time.Duration, targets map[string]Sweepable) *Sweeper {
	return &Sweeper{
		interval: interval,
		targets:  targets,
		now:      time.Now,
	}
}

// Start runs the sweep loop in the background until Stop or ctx is done
func (s *Sweeper) Start(ctx context.Context) {
	if s.interval <= 0 || len(s.targets) == 0 || s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SweepOnce()
			}
		}
	}()
}

// SweepOnce runs a single pass over every target
func (s *Sweeper) SweepOnce() int {
	now := s.now()
	total := 0
	for name, target := range s.targets {
		removed := target.Sweep(now)
		if removed > 0 {
			logger.Debug("Swept stale entries",
				logger.String("store", name),
				logger.Int("removed", removed))
		}
		total += removed
	}
	return total
}

// Stop halts the loop and waits for it to exit
func (s *Sweeper) Stop(_ context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	s.wg.Wait()
	return nil
}
