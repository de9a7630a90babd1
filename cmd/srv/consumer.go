package main

import (
	"github.com/go4it-sports/starpath/internal/common"
	"github.com/go4it-sports/starpath/internal/domain"
	"github.com/go4it-sports/starpath/pkg/kafka"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func (s *srv) startConsumer(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	s.loadRepos()
	s.loadLeaderboard()

	cfg := xcontext.Configs(s.ctx).Kafka
	handler := domain.NewLeaderboardEventHandler(s.leaderboard)
	subscriber, err := kafka.NewSubscriber(
		common.LeaderBoardConsumerGroup,
		[]string{cfg.Addr},
		[]string{cfg.Topic},
		handler.Subscribe,
	)
	if err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Consuming topic %s", cfg.Topic)

	group, groupCtx := errgroup.WithContext(s.ctx)
	group.Go(func() error {
		return subscriber.Subscribe(groupCtx)
	})
	group.Go(func() error {
		ctx, cancel := s.waitForSignal(groupCtx, shutdownTimeout)
		defer cancel()

		return subscriber.Stop(ctx)
	})

	return group.Wait()
}
