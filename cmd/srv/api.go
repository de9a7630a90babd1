package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go4it-sports/starpath/internal/middleware"
	"github.com/go4it-sports/starpath/pkg/prometheus"
	"github.com/go4it-sports/starpath/pkg/router"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func (s *srv) startApi(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}

	if err := s.loadEngine(); err != nil {
		return err
	}

	s.loadTokenEngine()
	s.loadRepos()
	s.loadLeaderboard()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	servers := []*http.Server{{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.corsHandler(s.router.Handler()),
	}}

	if cfg.Prometheus.Enable {
		servers = append(servers, prometheus.NewServer(cfg.Prometheus.Address(), prometheus.NewRegistry()))
	}

	group, groupCtx := errgroup.WithContext(s.ctx)
	for _, server := range servers {
		group.Go(func() error {
			xcontext.Logger(s.ctx).Infof("Starting server on %s", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		})
	}

	group.Go(func() error {
		ctx, cancel := s.waitForSignal(groupCtx, shutdownTimeout)
		defer cancel()

		return shutdown(ctx, servers)
	})

	return group.Wait()
}

func shutdown(ctx context.Context, servers []*http.Server) error {
	var errs []error
	for _, server := range servers {
		if err := server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *srv) corsHandler(h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   xcontext.Configs(s.ctx).ApiServer.AllowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	}).Handler(h)
}

func (s *srv) loadRouter() {
	s.router = router.New(xcontext.DB(s.ctx), xcontext.Configs(s.ctx), xcontext.Logger(s.ctx))
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	// Public APIs. A token is read when present, to show the caller's rank.
	publicRouter := s.router.Branch()
	publicRouter.Before(middleware.NewAuthVerifier(s.tokenEngine).Optional().Middleware())
	{
		router.GET(publicRouter, "/achievements", s.achievementDomain.GetAll)
		router.GET(publicRouter, "/leaderboard", s.statisticDomain.GetLeaderBoard)
	}

	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier(s.tokenEngine).Middleware())
	{
		// Player API
		router.POST(authRouter, "/player/daily-check-in", s.playerDomain.DailyCheckIn)
		router.POST(authRouter, "/player/xp/add", s.playerDomain.AddXP)
		router.POST(authRouter, "/player/activity", s.playerDomain.RecordActivity)
		router.POST(authRouter, "/player/video-analyzed", s.playerDomain.VideoAnalyzed)
		router.POST(authRouter, "/player/star-path/{userId}/level-up", s.playerDomain.LevelUpStarRank)
		router.GET(authRouter, "/player/progress", s.playerDomain.GetProgress)
		router.GET(authRouter, "/player/progress/{userId}", s.playerDomain.GetProgress)
		router.GET(authRouter, "/player/point-events", s.playerDomain.GetPointEvents)

		// Achievement API
		router.GET(authRouter, "/achievements/me", s.achievementDomain.GetMine)
		router.POST(authRouter, "/achievements/notified", s.achievementDomain.MarkNotified)
	}

	adminRouter := authRouter.Branch()
	adminRouter.Before(middleware.OnlyAdmin())
	{
		router.POST(adminRouter, "/admin/player/correct-points", s.playerDomain.CorrectPoints)
		router.POST(adminRouter, "/admin/player/archive", s.playerDomain.Archive)
	}
}
