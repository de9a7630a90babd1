package main

import (
	"github.com/go4it-sports/starpath/internal/domain/cron"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	s.loadRepos()
	s.loadLeaderboard()

	cronJobManager, err := cron.NewCronJobManager()
	if err != nil {
		return err
	}

	cfg := xcontext.Configs(s.ctx).StarPath
	err = cronJobManager.Register(s.ctx,
		cron.NewLeaderboardRebuildCronJob(s.leaderboard, cfg.LeaderboardSyncPeriod))
	if err != nil {
		return err
	}

	cronJobManager.Start(s.ctx)

	ctx, cancel := s.waitForSignal(s.ctx, shutdownTimeout)
	defer cancel()

	return cronJobManager.Shutdown(ctx)
}
