package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/genricoloni/dailywall/internal/domain"
	"github.com/genricoloni/dailywall/internal/engine"
	"github.com/genricoloni/dailywall/internal/processor"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Fetch one image per monitor, compose them and set the wallpaper (default)",
		Flags:  runFlags(),
		Action: runAction,
	}
}

func monitorsCommand() *cli.Command {
	return &cli.Command{
		Name:   "monitors",
		Usage:  "List detected monitors with their effective resolutions",
		Flags:  commonFlags(),
		Action: monitorsAction,
	}
}

func runAction(c *cli.Context) (err error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var (
		eng    *engine.Engine
		logger *zap.Logger
	)
	app := fx.New(AppOptions(cfg), fx.Populate(&eng, &logger))
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, app.Stop(context.Background()))
	}()

	report, err := eng.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("Wallpaper ready",
		zap.String("path", report.OutputPath),
		zap.Int("monitors", len(report.Monitors)),
		zap.Bool("applied", report.Applied))
	return nil
}

func monitorsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var inspector domain.Inspector
	app := fx.New(desktopOptions(cfg), fx.Populate(&inspector))
	if err := app.Err(); err != nil {
		return err
	}

	monitors, err := inspector.ListMonitors(c.Context)
	if err != nil {
		return err
	}
	if len(monitors) == 0 {
		return domain.ErrNoMonitors
	}

	return printMonitors(c.App.Writer, monitors)
}

func printMonitors(w io.Writer, monitors []domain.MonitorDescriptor) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tREPORTED\tSCALE\tEFFECTIVE\tPRIMARY")

	slots := make([]domain.Slot, 0, len(monitors))
	for _, m := range monitors {
		eff := m.Effective()
		fmt.Fprintf(tw, "%s\t%dx%d\t%g\t%dx%d\t%t\n",
			m.Name, m.Reported.Width, m.Reported.Height, m.ScalingFactor, eff.Width, eff.Height, m.Primary)
		slots = append(slots, domain.Slot{Target: eff})
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	canvas := processor.CanvasSize(slots)
	_, err := fmt.Fprintf(w, "\ncanvas: %dx%d\n", canvas.Width, canvas.Height)
	return err
}
