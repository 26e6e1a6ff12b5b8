package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/ATOMIC09/chunky-timelapse/cli/chunker"
	"github.com/ATOMIC09/chunky-timelapse/cli/chunky"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "chunky-timelapse"

// External downloads fetched on demand when a required tool is missing.
const (
	chunkyLauncherURL = "https://chunkyupdate.lemaik.de/ChunkyLauncher.jar"
	nbtDumpHelperURL  = "https://chunkyupdate.lemaik.de/lib/nbt-dump.jar"
)

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Produce timelapse frames from Minecraft worlds with Chunky",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "snapshot",
		Usage:  "Convert a world, extract its metadata and render a scene snapshot",
		Action: app.snapshot,
		Flags: []cli.Flag{
			chunker.JarFlag(),
			chunky.LauncherFlag(),
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Directory holding the source world (or a parent of world directories)",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory the converted world is written to",
				Value:   "converted-world",
			},
			chunker.FormatFlag(),
			&cli.StringFlag{
				Name:    "world",
				Aliases: []string{"w"},
				Usage:   "Explicit world subdirectory name (skips world discovery)",
			},
			chunky.SceneFlag(),
			chunky.MinecraftVersionFlag(),
			chunkyHomeFlag(),
			sceneDirFlag(),
			&cli.StringFlag{
				Name:    "webhook-url",
				Aliases: []string{"u"},
				Usage:   "Webhook endpoint the snapshot and world summary are posted to",
			},
			&cli.StringFlag{
				Name:  "webhook-username",
				Usage: "Display name used for webhook notifications",
				Value: "Chunky Timelapse",
			},
			&cli.StringFlag{
				Name:  "webhook-avatar",
				Usage: "Avatar URL used for webhook notifications",
			},
			&cli.BoolFlag{
				Name:    "render",
				Aliases: []string{"r"},
				Usage:   "Render the scene snapshot after conversion",
			},
			&cli.BoolFlag{
				Name:    "skip-conversion",
				Aliases: []string{"b"},
				Usage:   "Skip world conversion (the output directory must already exist)",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "scenes",
		Usage:  "List Chunky scenes and their render settings",
		Action: app.scenes,
		Flags: []cli.Flag{
			chunkyHomeFlag(),
			sceneDirFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List previous snapshot runs",
		Action: app.list,
		Flags: []cli.Flag{
			chunkyHomeFlag(),
			&cli.StringFlag{
				Name:  "scene",
				Usage: "Filter by scene name",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of results (default: 20)",
				Value:   20,
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:            "view",
		Usage:           "View a snapshot run from history",
		ArgsUsage:       "[-d DIR] [ID|INDEX]",
		Action:          app.view,
		SkipFlagParsing: true,
		Description: `View a snapshot run from history.

Arguments:
  -d DIR      Chunky home directory (default: ~/.chunky)
  0           View last run (default)
  -1          View 2nd last run
  -2          View 3rd last run
  <hex-id>    View run matching the hex ID prefix`,
	})
	return app
}

func chunkyHomeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "chunky-home",
		Aliases: []string{"d"},
		Usage:   "Chunky home directory (default: ~/.chunky)",
	}
}

func sceneDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "scene-dir",
		Usage: "Scene directory (default: <chunky-home>/scenes)",
	}
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}
