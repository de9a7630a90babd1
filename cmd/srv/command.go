package main

import "github.com/urfave/cli/v2"

func (s *srv) newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "starpath"
	app.Usage = "Gamified progression for players"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to the TOML configuration file",
			EnvVars: []string{"STARPATH_CONFIG"},
		},
	}
	app.Before = s.loadConfig
	app.Action = cli.ShowAppHelp
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Serves the player, achievement, leaderboard and admin apis, and the prometheus metrics.`,
		},
		{
			Action:      s.startConsumer,
			Name:        "consumer",
			Usage:       "Start the leaderboard consumer",
			Category:    "Worker",
			Description: `Consumes player events to keep the redis leaderboards up to date.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start the cron jobs",
			Category:    "Worker",
			Description: `Periodically rebuilds the leaderboards from the database.`,
		},
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate the database schema",
			Category: "Tool",
			Flags: []cli.Flag{
				&cli.UintFlag{
					Name:  "version",
					Usage: "migrate up or down to this version instead of the latest one",
				},
			},
		},
		{
			Action:    s.generateToken,
			Name:      "token",
			Usage:     "Generate an access token for a user",
			ArgsUsage: "<user_id>",
			Category:  "Tool",
		},
	}

	return app
}
