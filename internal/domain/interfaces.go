package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/domain_mock.go -package=mocks github.com/genricoloni/dailywall/internal/domain DisplayQuery,SettingsStore,CommandRunner,Inspector,Provider,Compositor,Executor

// DisplayQuery returns the display server's textual listing of outputs.
// Each output line carries the name, "connected"/"disconnected" and,
// when active, a geometry token of the form WxH+X+Y.
type DisplayQuery interface {
	Query(ctx context.Context) (string, error)
}

// SettingsStore is the desktop key-value settings service
type SettingsStore interface {
	// Read returns the raw value stored at a dconf path, empty when unset
	Read(ctx context.Context, path string) (string, error)

	// Get returns the value of a schema key
	Get(ctx context.Context, schema, key string) (string, error)

	// Set writes a schema key
	Set(ctx context.Context, schema, key, value string) error
}

// CommandRunner executes an external program and returns its standard output
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Inspector enumerates connected monitors
type Inspector interface {
	// ListMonitors returns monitors in display-server enumeration order
	ListMonitors(ctx context.Context) ([]MonitorDescriptor, error)
}

// Provider fetches one dated image into a directory
type Provider interface {
	// Kind identifies the provider
	Kind() ProviderKind

	// Fetch saves the image published daysInPast days ago into outputDir.
	// A day without a usable image yields Skipped, not an error.
	Fetch(ctx context.Context, outputDir string, daysInPast int) (FetchResult, error)

	// HistoryDays is the largest daysInPast the provider can serve at now
	HistoryDays(now time.Time) int
}

// Compositor lays slot images side by side into one canvas
type Compositor interface {
	// Composite resizes every slot to its target and writes the canvas to outputPath
	Composite(slots []Slot, outputPath string) error
}

// Executor defines the interface for applying the wallpaper
type Executor interface {
	// SetWallpaper sets the desktop wallpaper to the specified image path
	SetWallpaper(ctx context.Context, imagePath string) error

	// GetCurrentWallpaper retrieves the URI of the currently set wallpaper
	// Returns an error if the operation is not supported or fails
	GetCurrentWallpaper(ctx context.Context) (string, error)
}

// Config defines the interface for run configuration consumed by the engine
type Config interface {
	// GetOutputDir returns the directory for fetched images and the composite
	GetOutputDir() string

	// GetOutputName returns the file name of the composite inside the output dir
	GetOutputName() string

	// GetDaysInPast returns the base offset passed to providers
	GetDaysInPast() int

	// GetMaxSkips returns how many consecutive days a slot may try before giving up
	GetMaxSkips() int

	// GetRandom reports whether offsets are drawn at random from each provider's history
	GetRandom() bool

	// GetApply reports whether the composite should be set as wallpaper
	GetApply() bool
}
