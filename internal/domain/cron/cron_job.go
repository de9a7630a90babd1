package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/go4it-sports/starpath/pkg/xcontext"
)

type CronJob interface {
	Do(context.Context)
	RunNow() bool
	Period() time.Duration
}

// CronJobManager runs every registered job periodically. A job never overlaps
// with itself, a run that would start while the previous one is still going
// is skipped.
type CronJobManager struct {
	scheduler gocron.Scheduler
}

func NewCronJobManager() (*CronJobManager, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	return &CronJobManager{scheduler: scheduler}, nil
}

func (m *CronJobManager) Register(ctx context.Context, job CronJob) error {
	options := []gocron.JobOption{
		gocron.WithName(fmt.Sprintf("%T", job)),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}

	if job.RunNow() {
		options = append(options, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(job.Period()),
		gocron.NewTask(func() { m.run(ctx, job) }),
		options...,
	)

	return err
}

func (m *CronJobManager) Start(ctx context.Context) {
	xcontext.Logger(ctx).Infof("Cron job manager started with %d jobs", len(m.scheduler.Jobs()))
	m.scheduler.Start()
}

// Shutdown waits for the running jobs and stops scheduling new ones.
func (m *CronJobManager) Shutdown(ctx context.Context) error {
	if err := m.scheduler.Shutdown(); err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Cron job manager stopped")
	return nil
}

func (m *CronJobManager) run(ctx context.Context, job CronJob) {
	xcontext.Logger(ctx).Infof("%T is running...", job)
	job.Do(ctx)
	xcontext.Logger(ctx).Infof("%T ok", job)
}
