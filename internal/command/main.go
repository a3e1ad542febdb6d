package command

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/bornholm/chatten/internal/build"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const paramConfig = "config"

func Main(name string, usage string, commands ...*cli.Command) {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    paramConfig,
			EnvVars: []string{"CHATTEN_CLI_CONFIG"},
			Aliases: []string{"c"},
			Usage:   "yaml configuration file to use",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Value:   false,
			EnvVars: []string{"CHATTEN_CLI_DEBUG"},
			Usage:   "Toggle debug mode",
		},
		&cli.StringFlag{
			Name:    "workdir",
			Value:   "",
			EnvVars: []string{"CHATTEN_CLI_WORKDIR"},
			Usage:   "The working directory",
		},
		&cli.StringFlag{
			Name:    "log-level",
			EnvVars: []string{"CHATTEN_CLI_LOG_LEVEL"},
			Usage:   "Set logging level",
			Value:   "info",
		},
	}

	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Commands: commands,
		Version:  build.LongVersion,
		Before: func(ctx *cli.Context) error {
			workdir := ctx.String("workdir")
			// Switch to new working directory if defined
			if workdir != "" {
				if err := os.Chdir(workdir); err != nil {
					return errors.Wrap(err, "could not change working directory")
				}
			}

			logLevel := ctx.String("log-level")
			slogLevel := slog.LevelWarn

			switch logLevel {
			case "debug":
				slogLevel = slog.LevelDebug
			case "info":
				slogLevel = slog.LevelInfo
			case "warn":
				slogLevel = slog.LevelWarn
			case "error":
				slogLevel = slog.LevelError
			}

			logger := slog.New(slogx.ContextHandler{
				Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level:     slogLevel,
					AddSource: true,
				}),
			})

			slog.SetDefault(logger)

			return nil
		},
		Flags: flags,
	}

	withConfigSource(commands)

	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err == nil {
			return
		}

		debug := ctx.Bool("debug")

		if !debug {
			slog.ErrorContext(ctx.Context, err.Error())
		} else {
			slog.ErrorContext(ctx.Context, fmt.Sprintf("%+v", err))
		}
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// withConfigSource allows the altsrc flags of the commands to be read from
// the yaml configuration file.
func withConfigSource(commands []*cli.Command) {
	for _, cmd := range commands {
		if cmd.Before == nil && len(cmd.Flags) > 0 {
			cmd.Before = altsrc.InitInputSourceWithContext(cmd.Flags, altsrc.NewYamlSourceFromFlagFunc(paramConfig))
		}

		withConfigSource(cmd.Subcommands)
	}
}
