package cron

import (
	"context"
	"time"

	"github.com/go4it-sports/starpath/internal/domain/statistic"
	"github.com/go4it-sports/starpath/pkg/xcontext"
)

// LeaderboardRebuildCronJob recomputes the current leaderboards from the
// database. It repairs any increment lost by the consumer.
type LeaderboardRebuildCronJob struct {
	leaderboard statistic.Leaderboard
	period      time.Duration
	now         func() time.Time
}

func NewLeaderboardRebuildCronJob(
	leaderboard statistic.Leaderboard, period time.Duration,
) *LeaderboardRebuildCronJob {
	return &LeaderboardRebuildCronJob{leaderboard: leaderboard, period: period, now: time.Now}
}

func (job *LeaderboardRebuildCronJob) Do(ctx context.Context) {
	cfg := xcontext.Configs(ctx).StarPath
	if cfg.LeaderboardSyncTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.LeaderboardSyncTimeout)
		defer cancel()
	}

	for _, period := range statistic.CurrentPeriods(job.now()) {
		if err := job.leaderboard.Rebuild(ctx, period); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot rebuild leaderboard %s: %v", period.Period(), err)
			continue
		}

		xcontext.Logger(ctx).Debugf("Rebuilt leaderboard %s", period.Period())
	}
}

func (job *LeaderboardRebuildCronJob) RunNow() bool {
	return true
}

func (job *LeaderboardRebuildCronJob) Period() time.Duration {
	return job.period
}
