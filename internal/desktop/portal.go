package desktop

import (
	"context"
	"fmt"
	"sync"

	"github.com/genricoloni/dailywall/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	portalBusName   = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalReadCall  = "org.freedesktop.portal.Settings.Read"
	maxVariantDepth = 4
)

// DBusClient defines the D-Bus operations used to read desktop settings.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/dbus_client_mock.go -package=mocks github.com/genricoloni/dailywall/internal/desktop DBusClient
type DBusClient interface {
	// Close closes the D-Bus connection
	Close() error

	// ReadSetting reads namespace/key through the settings portal
	ReadSetting(namespace, key string) (dbus.Variant, error)
}

// StdDBusClient is the real implementation using godbus
type StdDBusClient struct {
	conn *dbus.Conn
}

// NewStdDBusClient creates a real D-Bus client connected to the session bus
func NewStdDBusClient() (*StdDBusClient, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &StdDBusClient{conn: conn}, nil
}

// Close closes the D-Bus connection
func (c *StdDBusClient) Close() error {
	return c.conn.Close()
}

// ReadSetting calls org.freedesktop.portal.Settings.Read
func (c *StdDBusClient) ReadSetting(namespace, key string) (dbus.Variant, error) {
	obj := c.conn.Object(portalBusName, dbus.ObjectPath(portalPath))
	var v dbus.Variant
	err := obj.Call(portalReadCall, 0, namespace, key).Store(&v)
	return v, err
}

// PortalReader reads the current wallpaper URI from the settings portal,
// falling back to the settings store when the portal is unavailable
type PortalReader struct {
	logger   *zap.Logger
	fallback domain.SettingsStore
	dial     func() (DBusClient, error)

	mu   sync.Mutex
	conn DBusClient // Interface for testability
}

// NewPortalReader creates a reader that connects to the session bus on first use
func NewPortalReader(logger *zap.Logger, fallback domain.SettingsStore) *PortalReader {
	return &PortalReader{
		logger:   logger,
		fallback: fallback,
		dial: func() (DBusClient, error) {
			return NewStdDBusClient()
		},
	}
}

// CurrentURI returns the picture-uri of the desktop background
func (r *PortalReader) CurrentURI(ctx context.Context) (string, error) {
	uri, portalErr := r.readPortal(BackgroundSchema, KeyPictureURI)
	if portalErr == nil {
		return uri, nil
	}

	r.logger.Debug("Settings portal unavailable, falling back to gsettings", zap.Error(portalErr))

	uri, err := r.fallback.Get(ctx, BackgroundSchema, KeyPictureURI)
	if err != nil {
		return "", multierr.Append(portalErr, err)
	}
	return uri, nil
}

// Close releases the D-Bus connection if one was opened
func (r *PortalReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		return nil
	}
	err := r.conn.Close()
	r.conn = nil
	return err
}

func (r *PortalReader) readPortal(namespace, key string) (string, error) {
	r.mu.Lock()
	if r.conn == nil {
		conn, err := r.dial()
		if err != nil {
			r.mu.Unlock()
			return "", fmt.Errorf("session bus connection failed: %w", err)
		}
		r.conn = conn
	}
	conn := r.conn
	r.mu.Unlock()

	v, err := conn.ReadSetting(namespace, key)
	if err != nil {
		return "", fmt.Errorf("portal read %s %s: %w", namespace, key, err)
	}

	s, ok := variantString(v)
	if !ok {
		return "", fmt.Errorf("%w: portal returned %s for %s %s", domain.ErrQuery, v.Signature(), namespace, key)
	}
	return s, nil
}

// variantString unwraps nested variants (the portal returns v wrapped in v) down to a string
func variantString(v dbus.Variant) (string, bool) {
	for i := 0; i < maxVariantDepth; i++ {
		switch val := v.Value().(type) {
		case dbus.Variant:
			v = val
		case string:
			return val, true
		default:
			return "", false
		}
	}
	return "", false
}
