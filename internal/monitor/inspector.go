package monitor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/genricoloni/dailywall/internal/domain"
	"go.uber.org/zap"
)

// scalingKeyFormat is the dconf path holding a monitor's scaling factor
const scalingKeyFormat = "/org/gnome/desktop/interface/x11-monitor/%sScalingFactor"

// Inspector lists connected monitors with their desktop scaling factors
type Inspector struct {
	logger   *zap.Logger
	query    domain.DisplayQuery
	settings domain.SettingsStore
}

// NewInspector creates an inspector over a display listing and a settings store
func NewInspector(logger *zap.Logger, query domain.DisplayQuery, settings domain.SettingsStore) *Inspector {
	return &Inspector{
		logger:   logger,
		query:    query,
		settings: settings,
	}
}

// ListMonitors returns connected monitors in enumeration order.
// Connected outputs without an active geometry are skipped.
func (i *Inspector) ListMonitors(ctx context.Context) ([]domain.MonitorDescriptor, error) {
	listing, err := i.query.Query(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: display query failed: %v", domain.ErrQuery, err)
	}

	outputs, err := parseListing(listing)
	if err != nil {
		return nil, err
	}

	monitors := make([]domain.MonitorDescriptor, 0, len(outputs))
	for _, m := range outputs {
		scale, err := i.scalingFactor(ctx, m.Name)
		if err != nil {
			return nil, err
		}
		m.ScalingFactor = scale

		i.logger.Debug("Monitor detected",
			zap.String("name", m.Name),
			zap.Int("width", m.Reported.Width),
			zap.Int("height", m.Reported.Height),
			zap.Float64("scale", scale),
			zap.Bool("primary", m.Primary))

		monitors = append(monitors, m)
	}

	return monitors, nil
}

func (i *Inspector) scalingFactor(ctx context.Context, name string) (float64, error) {
	raw, err := i.settings.Read(ctx, fmt.Sprintf(scalingKeyFormat, name))
	if err != nil {
		return 0, fmt.Errorf("%w: scaling factor for %s: %v", domain.ErrQuery, name, err)
	}
	if raw == "" {
		return 1.0, nil
	}

	scale, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: scaling factor for %s is not a number: %q", domain.ErrQuery, name, raw)
	}
	if scale <= 0 {
		return 0, fmt.Errorf("%w: scaling factor for %s must be positive, got %v", domain.ErrQuery, name, scale)
	}
	return scale, nil
}

// parseListing extracts connected outputs from an xrandr style listing
func parseListing(listing string) ([]domain.MonitorDescriptor, error) {
	var monitors []domain.MonitorDescriptor

	for _, line := range strings.Split(listing, "\n") {
		if !strings.Contains(line, " connected ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		m := domain.MonitorDescriptor{Name: fields[0]}
		found := false
		for _, tok := range fields[1:] {
			if tok == "primary" {
				m.Primary = true
				continue
			}
			if found || !strings.Contains(tok, "x") || !strings.Contains(tok, "+") {
				continue
			}

			res, err := parseGeometry(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: output %s: %v", domain.ErrQuery, m.Name, err)
			}
			m.Reported = res
			found = true
		}

		if found {
			monitors = append(monitors, m)
		}
	}

	return monitors, nil
}

// parseGeometry reads the WxH part of a WxH+X+Y token
func parseGeometry(tok string) (domain.Resolution, error) {
	size, _, _ := strings.Cut(tok, "+")
	ws, hs, ok := strings.Cut(size, "x")
	if !ok {
		return domain.Resolution{}, fmt.Errorf("malformed geometry %q", tok)
	}

	w, err := strconv.Atoi(ws)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("bad width in %q", tok)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("bad height in %q", tok)
	}
	if w <= 0 || h <= 0 {
		return domain.Resolution{}, fmt.Errorf("non-positive size in %q", tok)
	}

	return domain.Resolution{Width: w, Height: h}, nil
}
