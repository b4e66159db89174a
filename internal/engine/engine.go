package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/genricoloni/dailywall/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Engine orchestrates the wallpaper pipeline:
// list monitors, fetch one image per monitor, composite, set the wallpaper.
type Engine struct {
	logger     *zap.Logger
	cfg        domain.Config
	inspector  domain.Inspector
	providers  []domain.Provider
	compositor domain.Compositor
	executor   domain.Executor

	now  func() time.Time
	intN func(n int) int
}

// NewEngine creates a new orchestration engine
func NewEngine(
	logger *zap.Logger,
	cfg domain.Config,
	inspector domain.Inspector,
	providers []domain.Provider,
	compositor domain.Compositor,
	exec domain.Executor,
) *Engine {
	return &Engine{
		logger:     logger,
		cfg:        cfg,
		inspector:  inspector,
		providers:  providers,
		compositor: compositor,
		executor:   exec,
		now:        time.Now,
		intN:       rand.IntN,
	}
}

// Run executes the pipeline once. The report is filled as far as the run got.
func (e *Engine) Run(ctx context.Context) (domain.RunReport, error) {
	var report domain.RunReport

	if len(e.providers) == 0 {
		return report, fmt.Errorf("%w: no providers configured", domain.ErrConfiguration)
	}

	monitors, err := e.inspector.ListMonitors(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list monitors: %w", err)
	}
	if len(monitors) == 0 {
		return report, domain.ErrNoMonitors
	}
	report.Monitors = monitors

	e.logger.Info("Monitors detected", zap.Int("count", len(monitors)))

	outputDir := e.cfg.GetOutputDir()
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return report, fmt.Errorf("%w: failed to create output directory: %v", domain.ErrIO, err)
	}

	slots := make([]domain.Slot, 0, len(monitors))
	drawn := make([]map[int]bool, len(e.providers))
	for i, m := range monitors {
		p := e.providers[i%len(e.providers)]
		if drawn[i%len(e.providers)] == nil {
			drawn[i%len(e.providers)] = make(map[int]bool)
		}
		offset := e.offset(i, p, drawn[i%len(e.providers)])

		e.logger.Debug("Fetching slot",
			zap.Int("slot", i),
			zap.String("monitor", m.Name),
			zap.String("provider", string(p.Kind())),
			zap.Int("daysInPast", offset))

		img, err := e.fetchSlot(ctx, p, outputDir, offset)
		if err != nil {
			return report, fmt.Errorf("slot %d (%s): %w", i, m.Name, err)
		}

		report.Images = append(report.Images, img)
		slots = append(slots, domain.Slot{ImagePath: img.Path, Target: m.Effective()})
	}

	outputPath := filepath.Join(outputDir, e.cfg.GetOutputName())
	if err := e.compositor.Composite(slots, outputPath); err != nil {
		return report, fmt.Errorf("failed to composite: %w", err)
	}
	report.OutputPath = outputPath

	if previous, err := e.executor.GetCurrentWallpaper(ctx); err == nil {
		report.PreviousWallpaper = previous
		e.logger.Info("Previous wallpaper", zap.String("uri", previous))
	} else {
		e.logger.Warn("Could not read current wallpaper", zap.Error(err))
	}

	if !e.cfg.GetApply() {
		e.logger.Info("Wallpaper update disabled, composite left on disk", zap.String("path", outputPath))
		return report, nil
	}

	if err := e.executor.SetWallpaper(ctx, outputPath); err != nil {
		return report, fmt.Errorf("failed to set wallpaper: %w", err)
	}
	report.Applied = true

	return report, nil
}

// offset picks the day for slot i. A provider serving several slots
// moves one day further back per reuse so the images differ.
// In random mode the draw skips days already in drawn for the provider,
// repeating one only once its whole history is taken.
func (e *Engine) offset(i int, p domain.Provider, drawn map[int]bool) int {
	if !e.cfg.GetRandom() {
		return e.cfg.GetDaysInPast() + i/len(e.providers)
	}

	n := p.HistoryDays(e.now()) + 1
	start := e.intN(n)
	for k := 0; k < n; k++ {
		day := (start + k) % n
		if !drawn[day] {
			drawn[day] = true
			return day
		}
	}
	return start
}

// fetchSlot asks p for an image, stepping back a day on every skip
func (e *Engine) fetchSlot(ctx context.Context, p domain.Provider, dir string, offset int) (domain.FetchedImage, error) {
	attempts := max(e.cfg.GetMaxSkips(), 1)

	var skips error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.FetchedImage{}, err
		}

		res, err := p.Fetch(ctx, dir, offset+attempt)
		if err != nil {
			return domain.FetchedImage{}, err
		}
		if !res.IsSkipped() {
			return res.Image, nil
		}

		e.logger.Info("No image for day, trying an older one",
			zap.String("provider", string(p.Kind())),
			zap.Int("daysInPast", offset+attempt),
			zap.String("reason", res.Reason))
		skips = multierr.Append(skips, errors.New(res.Reason))
	}

	return domain.FetchedImage{}, multierr.Append(
		fmt.Errorf("%w: %s skipped %d days", domain.ErrNoImage, p.Kind(), attempts),
		skips,
	)
}
