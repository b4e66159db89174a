package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "dailywall: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "dailywall"
	app.Usage = "Span the Bing and NASA pictures of the day across every monitor"
	app.Flags = runFlags()
	app.Action = runAction
	app.Commands = []*cli.Command{
		runCommand(),
		monitorsCommand(),
	}
	return app
}

// newLogger creates a new zap logger instance
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}
