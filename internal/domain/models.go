package domain

import "time"

// Resolution holds pixel dimensions of a display or a composite slot
type Resolution struct {
	Width  int
	Height int
}

// MonitorDescriptor describes one connected monitor as reported by the display server
type MonitorDescriptor struct {
	// Name is the output name (e.g. "DP-1", "HDMI-0")
	Name string
	// Reported is the resolution as reported by the display server
	Reported Resolution
	// ScalingFactor comes from the desktop settings store, 1.0 when unset
	ScalingFactor float64
	// Primary is set when the display server marks the output as primary
	Primary bool
}

// Effective returns the reported resolution multiplied by the scaling factor, truncated
func (m MonitorDescriptor) Effective() Resolution {
	scale := m.ScalingFactor
	if scale == 0 {
		scale = 1.0
	}
	return Resolution{
		Width:  int(float64(m.Reported.Width) * scale),
		Height: int(float64(m.Reported.Height) * scale),
	}
}

// ProviderKind identifies an image-of-the-day source
type ProviderKind string

const (
	// ProviderBing is the Bing homepage image archive
	ProviderBing ProviderKind = "bing"
	// ProviderNASA is the NASA astronomy picture of the day
	ProviderNASA ProviderKind = "nasa"
)

// FetchedImage is an image saved to local disk by a provider
type FetchedImage struct {
	Path     string
	Provider ProviderKind
	// Date is the calendar day used for the request
	Date time.Time
}

// FetchStatus tags the outcome of a provider fetch
type FetchStatus int

const (
	// StatusFetched means an image was written to disk
	StatusFetched FetchStatus = iota
	// StatusSkipped means the provider had no usable image for the requested day
	StatusSkipped
)

// FetchResult is either Fetched(image) or Skipped(reason), never both
type FetchResult struct {
	Status FetchStatus
	Image  FetchedImage
	Reason string
}

// Fetched builds a successful fetch outcome
func Fetched(img FetchedImage) FetchResult {
	return FetchResult{Status: StatusFetched, Image: img}
}

// Skipped builds a "no image for this day" outcome
func Skipped(reason string) FetchResult {
	return FetchResult{Status: StatusSkipped, Reason: reason}
}

// IsSkipped reports whether the provider produced no image
func (r FetchResult) IsSkipped() bool {
	return r.Status == StatusSkipped
}

// Slot is one (image, target resolution) pair placed into the composite canvas
type Slot struct {
	ImagePath string
	Target    Resolution
}

// RunReport summarizes one pipeline run
type RunReport struct {
	Monitors   []MonitorDescriptor
	Images     []FetchedImage
	OutputPath string
	// PreviousWallpaper is the picture URI that was active before the run, if known
	PreviousWallpaper string
	// Applied is false when the wallpaper setting was skipped
	Applied bool
}
