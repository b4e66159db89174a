//go:build linux
// +build linux

package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/genricoloni/dailywall/internal/desktop"
	"github.com/genricoloni/dailywall/internal/domain"
	"go.uber.org/zap"
)

// LinuxExecutor sets the GNOME background through the desktop settings store
type LinuxExecutor struct {
	logger  *zap.Logger
	store   domain.SettingsStore
	current URIReader
	opts    Options
}

// NewExecutor creates a new platform-specific wallpaper executor (Linux implementation)
func NewExecutor(logger *zap.Logger, store domain.SettingsStore, current URIReader, opts Options) (*LinuxExecutor, error) {
	detectDesktop(logger)

	return &LinuxExecutor{
		logger:  logger,
		store:   store,
		current: current,
		opts:    opts,
	}, nil
}

// detectDesktop warns when the session does not look like GNOME
func detectDesktop(logger *zap.Logger) {
	current := os.Getenv("XDG_CURRENT_DESKTOP")
	session := os.Getenv("XDG_SESSION_TYPE")

	logger.Debug("Detecting desktop",
		zap.String("desktop", current),
		zap.String("session", session))

	if !strings.Contains(strings.ToLower(current), "gnome") {
		logger.Warn("Desktop does not look like GNOME, background settings may have no effect",
			zap.String("desktop", current))
	}
}

// SetWallpaper points the GNOME background at imagePath
func (e *LinuxExecutor) SetWallpaper(ctx context.Context, imagePath string) error {
	abs, err := filepath.Abs(imagePath)
	if err != nil {
		return fmt.Errorf("%w: resolving %s: %v", domain.ErrIO, imagePath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("%w: wallpaper image: %v", domain.ErrIO, err)
	}

	uri := "file://" + abs

	// Options first so the new picture is never shown with the old layout
	if e.opts.PictureOptions != "" {
		if err := e.store.Set(ctx, desktop.BackgroundSchema, desktop.KeyPictureOptions, e.opts.PictureOptions); err != nil {
			return fmt.Errorf("failed to set picture options: %w", err)
		}
	}

	if err := e.store.Set(ctx, desktop.BackgroundSchema, desktop.KeyPictureURI, uri); err != nil {
		return fmt.Errorf("failed to set wallpaper: %w", err)
	}

	if e.opts.SetDarkURI {
		// Key only exists on GNOME 42 and later
		if err := e.store.Set(ctx, desktop.BackgroundSchema, desktop.KeyPictureURIDark, uri); err != nil {
			e.logger.Warn("Could not set dark mode wallpaper", zap.Error(err))
		}
	}

	e.logger.Info("Wallpaper set successfully",
		zap.String("uri", uri),
		zap.String("options", e.opts.PictureOptions))

	return nil
}

// GetCurrentWallpaper returns the background picture URI currently configured
func (e *LinuxExecutor) GetCurrentWallpaper(ctx context.Context) (string, error) {
	uri, err := e.current.CurrentURI(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read current wallpaper: %w", err)
	}
	return uri, nil
}
