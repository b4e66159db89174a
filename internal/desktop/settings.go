package desktop

import (
	"context"
	"fmt"
	"strings"

	"github.com/genricoloni/dailywall/internal/domain"
	"go.uber.org/zap"
)

// GNOME background schema and keys
const (
	BackgroundSchema  = "org.gnome.desktop.background"
	KeyPictureURI     = "picture-uri"
	KeyPictureURIDark = "picture-uri-dark"
	KeyPictureOptions = "picture-options"
)

// GSettingsStore reads dconf paths and reads/writes GSettings keys via the dconf and gsettings tools
type GSettingsStore struct {
	logger *zap.Logger
	runner domain.CommandRunner
}

// NewGSettingsStore creates a settings store backed by the dconf/gsettings CLIs
func NewGSettingsStore(logger *zap.Logger, runner domain.CommandRunner) *GSettingsStore {
	return &GSettingsStore{logger: logger, runner: runner}
}

// Read returns the value at a dconf path, or "" when the key is unset
func (s *GSettingsStore) Read(ctx context.Context, path string) (string, error) {
	out, err := s.runner.Run(ctx, "dconf", "read", path)
	if err != nil {
		return "", fmt.Errorf("%w: dconf read %s: %v", domain.ErrQuery, path, err)
	}
	value := strings.TrimSpace(string(out))
	s.logger.Debug("dconf read", zap.String("path", path), zap.String("value", value))
	return value, nil
}

// Get returns a GSettings key with GVariant string quoting removed
func (s *GSettingsStore) Get(ctx context.Context, schema, key string) (string, error) {
	out, err := s.runner.Run(ctx, "gsettings", "get", schema, key)
	if err != nil {
		return "", fmt.Errorf("%w: gsettings get %s %s: %v", domain.ErrQuery, schema, key, err)
	}
	return unquote(strings.TrimSpace(string(out))), nil
}

// Set writes a GSettings key
func (s *GSettingsStore) Set(ctx context.Context, schema, key, value string) error {
	if _, err := s.runner.Run(ctx, "gsettings", "set", schema, key, value); err != nil {
		return fmt.Errorf("gsettings set %s %s: %w", schema, key, err)
	}
	s.logger.Debug("gsettings set",
		zap.String("schema", schema),
		zap.String("key", key),
		zap.String("value", value))
	return nil
}

// unquote strips the single quotes gsettings prints around string values
func unquote(v string) string {
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		return v[1 : len(v)-1]
	}
	return v
}
