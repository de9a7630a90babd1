package migration

import (
	"context"
	"embed"
	"errors"

	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed mysql/*.sql
var mysqlFS embed.FS

// Migrate applies the embedded mysql migrations up to the latest version.
func Migrate(ctx context.Context) error {
	m, err := newMigrate(ctx)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// MigrateTo moves the schema to version, down or up.
func MigrateTo(ctx context.Context, version uint) error {
	m, err := newMigrate(ctx)
	if err != nil {
		return err
	}

	if err := m.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Version returns the current schema version and whether the last migration
// failed halfway.
func Version(ctx context.Context) (uint, bool, error) {
	m, err := newMigrate(ctx)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	return version, dirty, err
}

func newMigrate(ctx context.Context) (*migrate.Migrate, error) {
	db, err := xcontext.DB(ctx).DB()
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(mysqlFS, "mysql")
	if err != nil {
		return nil, err
	}

	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance(
		"iofs", source, xcontext.Configs(ctx).Database.Database, driver)
}

// AutoMigrate creates every table from the entities. It is used by tests and
// local sqlite setups where the mysql migrations cannot run.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.PlayerProgress{},
		&entity.PointEvent{},
		&entity.AchievementUnlock{},
		&entity.PointCorrection{},
	)
}
