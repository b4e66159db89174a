package main

import (
	"github.com/genricoloni/dailywall/internal/config"
	"github.com/urfave/cli/v2"
)

const (
	flagConfig    = "config"
	flagOutputDir = "output-dir"
	flagProviders = "providers"
	flagDays      = "days"
	flagRandom    = "random"
	flagMaxSkips  = "max-skips"
	flagBackend   = "backend"
	flagNoSet     = "no-set"
	flagDebug     = "debug"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "TOML config file (default $XDG_CONFIG_HOME/dailywall/config.toml)",
		},
		&cli.StringFlag{
			Name:  flagBackend,
			Usage: "display backend: xrandr, randr or screenshot",
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "verbose logging",
		},
	}
}

func runFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{
			Name:    flagOutputDir,
			Aliases: []string{"o"},
			Usage:   "directory for downloaded images and the composite",
		},
		&cli.StringFlag{
			Name:    flagProviders,
			Aliases: []string{"p"},
			Usage:   "comma separated provider order, e.g. bing,nasa",
		},
		&cli.IntFlag{
			Name:    flagDays,
			Aliases: []string{"d"},
			Usage:   "fetch the images published this many days ago",
		},
		&cli.BoolFlag{
			Name:  flagRandom,
			Usage: "pick a random day from each provider's archive",
		},
		&cli.IntFlag{
			Name:  flagMaxSkips,
			Usage: "days to try when a provider has no image",
		},
		&cli.BoolFlag{
			Name:  flagNoSet,
			Usage: "write the composite but leave the wallpaper alone",
		},
	)
}

// loadConfig merges defaults, file, environment and flags, in that order
func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	var path string
	if fc := flagContext(c, flagConfig); fc != nil {
		path = fc.String(flagConfig)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if fc := flagContext(c, flagOutputDir); fc != nil {
		cfg.OutputDir = fc.String(flagOutputDir)
	}
	if fc := flagContext(c, flagProviders); fc != nil {
		cfg.Providers = config.SplitList(fc.String(flagProviders))
	}
	if fc := flagContext(c, flagDays); fc != nil {
		cfg.DaysInPast = fc.Int(flagDays)
	}
	if fc := flagContext(c, flagRandom); fc != nil {
		cfg.Random = fc.Bool(flagRandom)
	}
	if fc := flagContext(c, flagMaxSkips); fc != nil {
		cfg.MaxSkips = fc.Int(flagMaxSkips)
	}
	if fc := flagContext(c, flagBackend); fc != nil {
		cfg.DisplayBackend = fc.String(flagBackend)
	}
	if fc := flagContext(c, flagNoSet); fc != nil && fc.Bool(flagNoSet) {
		cfg.Apply = false
	}
	if fc := flagContext(c, flagDebug); fc != nil && fc.Bool(flagDebug) {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// flagContext returns the innermost context where name was given on the
// command line, so "dailywall --no-set run" and "dailywall run --no-set" agree.
// Nil when the flag was not set anywhere.
func flagContext(c *cli.Context, name string) *cli.Context {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx
		}
	}
	return nil
}
