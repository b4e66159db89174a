package monitor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"go.uber.org/zap"
)

// RandRQuery asks the X server for outputs over the RandR extension and
// renders them in the same line format xrandr prints
type RandRQuery struct {
	logger *zap.Logger
}

// NewRandRQuery creates a display query that talks to X directly
func NewRandRQuery(logger *zap.Logger) *RandRQuery {
	// xgb logs to stderr by default
	xgb.Logger.SetOutput(io.Discard)
	xgbutil.Logger.SetOutput(io.Discard)

	return &RandRQuery{logger: logger}
}

// Query connects to $DISPLAY and lists every output
func (q *RandRQuery) Query(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	X, err := xgbutil.NewConn()
	if err != nil {
		return "", fmt.Errorf("connecting to X server: %w", err)
	}
	defer X.Conn().Close()

	if wm, err := ewmh.GetEwmhWM(X); err == nil {
		q.logger.Debug("Window manager detected", zap.String("wm", wm))
	}

	conn := X.Conn()
	if err := randr.Init(conn); err != nil {
		return "", fmt.Errorf("randr init: %w", err)
	}

	root := X.RootWin()
	resources, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return "", fmt.Errorf("randr screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(conn, root).Reply(); err == nil {
		primary = reply.Output
	}

	var b strings.Builder
	for _, output := range resources.Outputs {
		info, err := randr.GetOutputInfo(conn, output, 0).Reply()
		if err != nil {
			return "", fmt.Errorf("randr output info: %w", err)
		}

		name := string(info.Name)
		if info.Connection != randr.ConnectionConnected {
			fmt.Fprintf(&b, "%s disconnected\n", name)
			continue
		}

		b.WriteString(name)
		b.WriteString(" connected ")
		if output == primary {
			b.WriteString("primary ")
		}

		// Connected but not driving a CRTC, so no geometry
		if info.Crtc != 0 {
			crtc, err := randr.GetCrtcInfo(conn, info.Crtc, 0).Reply()
			if err != nil {
				return "", fmt.Errorf("randr crtc info for %s: %w", name, err)
			}
			fmt.Fprintf(&b, "%dx%d+%d+%d", crtc.Width, crtc.Height, crtc.X, crtc.Y)
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}
