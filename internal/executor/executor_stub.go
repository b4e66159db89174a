//go:build !linux
// +build !linux

package executor

import (
	"context"
	"fmt"

	"github.com/genricoloni/dailywall/internal/domain"
	"go.uber.org/zap"
)

// StubExecutor is a placeholder for platforms without a GNOME desktop
type StubExecutor struct {
	logger *zap.Logger
}

// NewExecutor creates a stub executor for unsupported platforms
func NewExecutor(logger *zap.Logger, _ domain.SettingsStore, _ URIReader, _ Options) (*StubExecutor, error) {
	logger.Warn("Wallpaper setting is only implemented for GNOME on Linux")
	return &StubExecutor{logger: logger}, nil
}

// SetWallpaper returns an error indicating the platform is not supported
func (e *StubExecutor) SetWallpaper(ctx context.Context, imagePath string) error {
	return fmt.Errorf("wallpaper setting not implemented for this platform")
}

// GetCurrentWallpaper returns an error indicating the platform is not supported
func (e *StubExecutor) GetCurrentWallpaper(ctx context.Context) (string, error) {
	return "", fmt.Errorf("wallpaper query not implemented for this platform")
}
