package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// CronScheduler runs a job on a cron expression.
type CronScheduler struct {
	spec   string
	cron   *cron.Cron
	logger *slog.Logger
}

// NewCronScheduler builds a scheduler from a standard 5-field cron spec.
func NewCronScheduler(spec string, logger *slog.Logger) *CronScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CronScheduler{spec: spec, logger: logger}
}

// Start registers the job and begins scheduling. The job receives a context
// that is cancelled when the surrounding application shuts down.
func (c *CronScheduler) Start(ctx context.Context, job func(context.Context)) error {
	if job == nil || c.cron != nil {
		return nil
	}

	c.cron = cron.New()
	if _, err := c.cron.AddFunc(c.spec, func() { job(ctx) }); err != nil {
		c.cron = nil
		return err
	}

	c.logger.Info("scheduler started", "spec", c.spec)
	c.cron.Start()
	return nil
}

// Stop halts scheduling; a running job finishes before Stop returns.
func (c *CronScheduler) Stop() {
	if c.cron == nil {
		return
	}
	<-c.cron.Stop().Done()
	c.cron = nil
}
