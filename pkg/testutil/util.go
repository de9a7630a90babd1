package testutil

import (
	"context"
	"time"

	"github.com/go4it-sports/starpath/config"
	"github.com/go4it-sports/starpath/migration"
	"github.com/go4it-sports/starpath/pkg/logger"
	"github.com/go4it-sports/starpath/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const AdminID = "admin"

func MockConfigs() config.Configs {
	cfg := config.Default()
	cfg.ApiServer.DefaultLimit = 2
	cfg.Auth.TokenSecret = "secret"
	cfg.Auth.AccessToken = config.TokenConfigs{Name: "access_token", Expiration: time.Minute}
	cfg.Auth.AdminIDs = []string{AdminID}
	return cfg
}

// MockContext returns a context holding a fresh in-memory database with every
// table created. The database has a single connection, so every query inside
// a transaction must use the transaction context.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, MockConfigs())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
