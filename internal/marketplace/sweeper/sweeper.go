// Package sweeper periodically triggers the lazy deadline transitions.
// The ledger performs no spontaneous work on its own; the sweeper is
// just a scheduled third-party caller of ExpireTask and AutoApprove,
// the same calls any external observer could make.
package sweeper

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/ledger"
	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/metrics"
	"github.com/Mateiul123/Blockchainworkapp/pkg/logging"
)

type Sweeper struct {
	ledger   *ledger.TaskLedger
	interval time.Duration
	logger   logging.Logger
	cron     *cron.Cron
}

func New(l *ledger.TaskLedger, interval time.Duration, logger logging.Logger) *Sweeper {
	return &Sweeper{
		ledger:   l,
		interval: interval,
		logger:   logger,
	}
}

// Start schedules the sweep. Returns an error if the interval cannot be
// expressed as a cron schedule.
func (s *Sweeper) Start() error {
	s.cron = cron.New()
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.Sweep); err != nil {
		return fmt.Errorf("error scheduling sweep %q: %w", spec, err)
	}
	s.cron.Start()
	s.logger.Infof("Deadline sweeper running every %s", s.interval)
	return nil
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

// Sweep runs one pass: every task past its apply/delivery deadline is
// expired, every task past its review deadline is auto approved. A
// transition that raced with an explicit call simply fails its
// precondition check and is skipped.
func (s *Sweeper) Sweep() {
	now := time.Now().UTC()
	expirable, approvable := s.ledger.DueTasks(now)
	if len(expirable) == 0 && len(approvable) == 0 {
		metrics.SweepRunsTotal.WithLabelValues("idle").Inc()
		return
	}

	failed := false
	for _, taskID := range expirable {
		if err := s.ledger.ExpireTask(taskID, now); err != nil {
			if errors.Is(err, ledger.ErrInvalidState) || errors.Is(err, ledger.ErrTooEarly) {
				continue // lost the race to another caller
			}
			failed = true
			s.logger.Errorf("Error expiring task %d: %v", taskID, err)
			continue
		}
		s.logger.Infof("Expired task %d", taskID)
	}
	for _, taskID := range approvable {
		if err := s.ledger.AutoApprove(taskID, now); err != nil {
			if errors.Is(err, ledger.ErrInvalidState) || errors.Is(err, ledger.ErrTooEarly) {
				continue
			}
			failed = true
			s.logger.Errorf("Error auto-approving task %d: %v", taskID, err)
			continue
		}
		s.logger.Infof("Auto-approved task %d", taskID)
	}

	if failed {
		metrics.SweepRunsTotal.WithLabelValues("error").Inc()
	} else {
		metrics.SweepRunsTotal.WithLabelValues("success").Inc()
	}
}
