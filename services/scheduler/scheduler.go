package schedsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/duty"
)

const runTimeout = 2 * time.Minute

// Scheduler fires the weekly duty assignment on the configured cron spec.
// An overlapping fire is skipped while the previous run is still going.
type Scheduler struct {
	cron    *cron.Cron
	dutySvc *duty.Service
	conf    *core.Config
	logger  core.Logger
}

func NewScheduler(dutySvc *duty.Service, conf *core.Config, logger core.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		dutySvc: dutySvc,
		conf:    conf,
		logger:  logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.conf.Duty.CronSpec, s.runAssignment); err != nil {
		return fmt.Errorf("scheduler: adding duty assignment job: %w", err)
	}
	s.cron.Start()
	s.logger.Info(fmt.Sprintf("scheduler: duty assignment scheduled (%s)", s.conf.Duty.CronSpec))
	return nil
}

// Stop halts scheduling; the returned context is done once any in-flight run
// has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runAssignment() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	records, err := s.dutySvc.Run(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("scheduler: duty assignment run failed: %v", err), err)
		return
	}
	if records == nil {
		s.logger.Info("scheduler: duty assignment skipped, some learners are away")
		return
	}
	s.logger.Info(fmt.Sprintf("scheduler: duty assignment completed, %d learners assigned", len(records)))
}
