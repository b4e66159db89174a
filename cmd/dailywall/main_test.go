package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/genricoloni/dailywall/internal/config"
	"github.com/genricoloni/dailywall/internal/domain"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.NASAAPIKey = "test-key"
	return cfg
}

// TestAppGraphValidity verifies that the dependency graph is resolvable.
// This test will fail if you forget an fx.Provide for a required interface.
func TestAppGraphValidity(t *testing.T) {
	if err := fx.ValidateApp(AppOptions(testConfig(t))); err != nil {
		t.Errorf("Dependency graph is not valid: %v", err)
	}
	if err := fx.ValidateApp(desktopOptions(testConfig(t))); err != nil {
		t.Errorf("Monitor graph is not valid: %v", err)
	}
}

// TestNewLogger specifically verifies the logger configuration
func TestNewLogger(t *testing.T) {
	for _, debug := range []bool{false, true} {
		logger, err := newLogger(debug)
		if err != nil {
			t.Fatalf("Failed to create logger: %v", err)
		}
		if logger == nil {
			t.Fatal("Logger should not be nil")
		}
		logger.Info("Test logger initialization")
	}
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NASA_API_KEY", "env-key")
	t.Setenv("DAILYWALL_OUTPUT_DIR", "")
	t.Setenv("DAILYWALL_PROVIDERS", "")
	out := t.TempDir()

	var got *config.AppConfig
	app := newApp()
	app.Commands[0].Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		got = cfg
		return err
	}

	err := app.Run([]string{"dailywall", "run",
		"--output-dir", out,
		"--providers", "nasa,bing",
		"--days", "3",
		"--max-skips", "2",
		"--backend", "randr",
		"--random",
		"--no-set",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.OutputDir != out || got.DaysInPast != 3 || got.MaxSkips != 2 {
		t.Errorf("flags not applied: %+v", got)
	}
	if len(got.Providers) != 2 || got.Providers[0] != "nasa" {
		t.Errorf("unexpected providers %v", got.Providers)
	}
	if got.DisplayBackend != config.BackendRandR || !got.Random || got.Apply {
		t.Errorf("flags not applied: %+v", got)
	}
	if got.NASAAPIKey != "env-key" {
		t.Errorf("expected key from environment, got %q", got.NASAAPIKey)
	}
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	app := newApp()
	app.Commands[0].Action = func(c *cli.Context) error {
		_, err := loadConfig(c)
		return err
	}

	err := app.Run([]string{"dailywall", "run", "--providers", "flickr", "--output-dir", t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
}

func runWithCapturedConfig(t *testing.T, args ...string) *config.AppConfig {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NASA_API_KEY", "env-key")
	t.Setenv("DAILYWALL_OUTPUT_DIR", "")
	t.Setenv("DAILYWALL_PROVIDERS", "")

	var got *config.AppConfig
	app := newApp()
	app.Commands[0].Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		got = cfg
		return err
	}

	if err := app.Run(append([]string{"dailywall"}, args...)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("run action was not invoked")
	}
	return got
}

func TestLoadConfig_FlagsBeforeSubcommand(t *testing.T) {
	out := t.TempDir()
	got := runWithCapturedConfig(t, "--output-dir", out, "--days", "3", "--no-set", "--debug", "run")

	if got.DaysInPast != 3 {
		t.Errorf("expected days 3 from root flag, got %d", got.DaysInPast)
	}
	if got.Apply {
		t.Error("expected --no-set before the subcommand to disable apply")
	}
	if !got.Debug {
		t.Error("expected --debug before the subcommand to enable debug")
	}
	if got.OutputDir != out {
		t.Errorf("expected output dir %q, got %q", out, got.OutputDir)
	}
}

func TestLoadConfig_SubcommandFlagWins(t *testing.T) {
	got := runWithCapturedConfig(t, "--days", "3", "run", "--days", "5", "--output-dir", t.TempDir())

	if got.DaysInPast != 5 {
		t.Errorf("expected subcommand days 5 to win, got %d", got.DaysInPast)
	}
	if !got.Apply {
		t.Error("apply should stay enabled without --no-set")
	}
}

func TestPrintMonitors(t *testing.T) {
	var buf bytes.Buffer
	err := printMonitors(&buf, []domain.MonitorDescriptor{
		{Name: "eDP-1", Reported: domain.Resolution{Width: 1920, Height: 1080}, ScalingFactor: 1, Primary: true},
		{Name: "HDMI-1", Reported: domain.Resolution{Width: 2560, Height: 1440}, ScalingFactor: 1.25},
	})
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"eDP-1", "3200x1800", "canvas: 5120x1800"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
