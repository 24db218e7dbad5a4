/*
scheduler.go - Automated overdue-payment scheduler

PURPOSE:
  Periodically sweeps every organization's payment periods and flags the
  ones whose due date (plus the lease's late-fee grace days) has passed
  without payment. Keeps rent_payment_status on leases current without
  waiting for a staff member to open the lease.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Iterates organizations, delegating the per-org sweep to the engine
  - Individual failures are logged and skipped, never fatal

CONFIGURATION:
  - CheckInterval: How often to sweep (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewOverdueScheduler(eng)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - engine/engine.go: SweepOverdue (the per-org sweep)
  - handlers.go: MarkPeriodOverdue endpoint (manual flagging)
*/
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/propease/lease-engine/engine"
)

// OverdueScheduler handles automated overdue-payment detection.
type OverdueScheduler struct {
	Engine        *engine.Engine
	CheckInterval time.Duration
	Enabled       bool

	log    *slog.Logger
	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewOverdueScheduler creates a new scheduler over the engine.
func NewOverdueScheduler(eng *engine.Engine) *OverdueScheduler {
	return &OverdueScheduler{
		Engine:        eng,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		log:           slog.Default(),
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (s *OverdueScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled {
		s.log.Info("overdue scheduler disabled, not starting")
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.wg.Add(1)

	go s.run()

	s.log.Info("overdue scheduler started", "interval", s.CheckInterval)
}

// Stop stops the scheduler.
func (s *OverdueScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		s.log.Info("overdue scheduler stopped")
	}
}

func (s *OverdueScheduler) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.sweep()

	for {
		select {
		case <-s.ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *OverdueScheduler) sweep() {
	ctx := context.Background()

	orgs, err := s.Engine.Organizations(ctx)
	if err != nil {
		s.log.Error("overdue sweep failed to list organizations", "error", err)
		return
	}

	total := 0
	for _, orgID := range orgs {
		org := engine.OrgContext{OrganizationID: orgID}
		flagged, err := s.Engine.SweepOverdue(ctx, org)
		if err != nil {
			s.log.Error("overdue sweep failed", "org", orgID, "error", err)
			continue
		}
		total += flagged
	}

	if total > 0 {
		s.log.Info("overdue sweep completed", "flagged", total, "organizations", len(orgs))
	}
}

// RunNow triggers an immediate sweep (for testing/admin).
func (s *OverdueScheduler) RunNow() {
	s.sweep()
}
