package main

import (
	"github.com/go4it-sports/starpath/migration"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if cctx.IsSet("version") {
		if err := migration.MigrateTo(s.ctx, cctx.Uint("version")); err != nil {
			return err
		}
	} else if err := migration.Migrate(s.ctx); err != nil {
		return err
	}

	version, dirty, err := migration.Version(s.ctx)
	if err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Database is at version %d (dirty=%t)", version, dirty)
	return nil
}
