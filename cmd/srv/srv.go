package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go4it-sports/starpath/config"
	"github.com/go4it-sports/starpath/internal/client"
	"github.com/go4it-sports/starpath/internal/domain"
	"github.com/go4it-sports/starpath/internal/domain/progression"
	"github.com/go4it-sports/starpath/internal/domain/statistic"
	"github.com/go4it-sports/starpath/internal/model"
	"github.com/go4it-sports/starpath/internal/repository"
	"github.com/go4it-sports/starpath/pkg/authenticator"
	"github.com/go4it-sports/starpath/pkg/idutil"
	"github.com/go4it-sports/starpath/pkg/kafka"
	"github.com/go4it-sports/starpath/pkg/logger"
	"github.com/go4it-sports/starpath/pkg/pubsub"
	"github.com/go4it-sports/starpath/pkg/router"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"github.com/go4it-sports/starpath/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context

	redisClient xredis.Client
	publisher   pubsub.Publisher
	tokenEngine authenticator.TokenEngine[model.AccessToken]
	router      *router.Router

	progressRepo   repository.PlayerProgressRepository
	pointEventRepo repository.PointEventRepository
	unlockRepo     repository.AchievementUnlockRepository
	correctionRepo repository.PointCorrectionRepository

	catalog     *progression.Catalog
	engine      *progression.Engine
	leaderboard statistic.Leaderboard

	playerDomain      domain.PlayerDomain
	achievementDomain domain.AchievementDomain
	statisticDomain   domain.StatisticDomain
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(cctx.Context, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.ParseLevel(cfg.LogLevel)))
	return nil
}

func (s *srv) newDatabase() (*gorm.DB, error) {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "info":
		return gormlogger.Info
	case "warn", "warning":
		return gormlogger.Warn
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Error
	}
}

func (s *srv) loadDatabase() error {
	db, err := s.newDatabase()
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) loadRedisClient() error {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	return err
}

func (s *srv) loadPublisher() error {
	cfg := xcontext.Configs(s.ctx).Kafka
	var err error
	s.publisher, err = kafka.NewPublisher(cfg.ClientID, []string{cfg.Addr})
	return err
}

func (s *srv) loadTokenEngine() {
	cfg := xcontext.Configs(s.ctx).Auth
	s.tokenEngine = authenticator.NewTokenEngine[model.AccessToken](cfg.TokenSecret, cfg.AccessToken)
}

func (s *srv) loadRepos() {
	s.progressRepo = repository.NewPlayerProgressRepository()
	s.pointEventRepo = repository.NewPointEventRepository()
	s.unlockRepo = repository.NewAchievementUnlockRepository()
	s.correctionRepo = repository.NewPointCorrectionRepository()
}

func (s *srv) loadEngine() error {
	cfg := xcontext.Configs(s.ctx).StarPath

	var err error
	s.catalog, err = progression.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	generator, err := idutil.NewGenerator(cfg.SnowflakeNode)
	if err != nil {
		return err
	}

	s.engine = progression.NewEngine(s.catalog, cfg.StreakThreshold, generator.Next)
	xcontext.Logger(s.ctx).Infof("Loaded %d achievements", s.catalog.Len())
	return nil
}

func (s *srv) loadLeaderboard() {
	s.leaderboard = statistic.New(s.progressRepo, s.pointEventRepo, s.redisClient)
}

func (s *srv) loadDomains() {
	cfg := xcontext.Configs(s.ctx).StarPath

	s.playerDomain = domain.NewPlayerDomain(
		s.progressRepo, s.pointEventRepo, s.unlockRepo, s.correctionRepo,
		s.engine, client.NewHashScoreProvider(cfg.VideoScoreFloor), s.publisher, s.redisClient,
	)
	s.achievementDomain = domain.NewAchievementDomain(
		s.catalog, s.progressRepo, s.pointEventRepo, s.unlockRepo, s.redisClient)
	s.statisticDomain = domain.NewStatisticDomain(s.leaderboard)
}

// waitForSignal blocks until the process is asked to stop or ctx is done, then
// returns a context bounded by timeout for the graceful shutdown.
func (s *srv) waitForSignal(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	<-signalCtx.Done()
	stop()

	xcontext.Logger(s.ctx).Infof("Shutting down")
	return context.WithTimeout(context.WithoutCancel(s.ctx), timeout)
}
