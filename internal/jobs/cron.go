package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airplanemode/internal/logging"
	"github.com/Domenick1991/airplanemode/internal/metrics"
	"github.com/robfig/cron/v3"
)

const (
	JobAutorenew = "autorenew_daily"
	JobReminders = "send_reminder_monthly"
)

// LeaseJobs is the part of the leasing service driven by the scheduler.
type LeaseJobs interface {
	AutorenewDue(ctx context.Context) (int, error)
	SendReminders(ctx context.Context) (int, error)
}

type Schedules struct {
	Autorenew string
	Reminders string
}

type Scheduler struct {
	cron    *cron.Cron
	leases  LeaseJobs
	metrics *metrics.MetricsRegistry
	timeout time.Duration
}

func NewScheduler(leases LeaseJobs, m *metrics.MetricsRegistry) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		leases:  leases,
		metrics: m,
		timeout: 10 * time.Minute,
	}
}

// Register adds the leasing jobs without starting the scheduler.
func (s *Scheduler) Register(schedules Schedules) error {
	if _, err := s.cron.AddFunc(schedules.Autorenew, func() { s.Run(JobAutorenew) }); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", JobAutorenew, err)
	}
	if _, err := s.cron.AddFunc(schedules.Reminders, func() { s.Run(JobReminders) }); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", JobReminders, err)
	}
	logging.Info("cron jobs registered", "autorenew", schedules.Autorenew, "reminders", schedules.Reminders)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		logging.Warn("cron jobs still running at shutdown")
	}
}

// Run executes one job by name and records its duration.
func (s *Scheduler) Run(job string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	var (
		n   int
		err error
	)
	switch job {
	case JobAutorenew:
		n, err = s.leases.AutorenewDue(ctx)
	case JobReminders:
		n, err = s.leases.SendReminders(ctx)
	default:
		logging.Error("unknown job", "job", job)
		return
	}
	if s.metrics != nil {
		s.metrics.JobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		logging.Error("job failed", "job", job, "processed", n, "error", err)
		return
	}
	logging.Info("job finished", "job", job, "processed", n, "duration", time.Since(start))
}
