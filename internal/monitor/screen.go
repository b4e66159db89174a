package monitor

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// ScreenshotQuery enumerates active displays through kbinani/screenshot.
// Displays carry no output names, so they are called display-N.
type ScreenshotQuery struct {
	logger *zap.Logger
}

// NewScreenshotQuery creates a display query that works without xrandr
func NewScreenshotQuery(logger *zap.Logger) *ScreenshotQuery {
	return &ScreenshotQuery{logger: logger}
}

// Query renders the active displays in xrandr line format
func (q *ScreenshotQuery) Query(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		q.logger.Warn("No active displays detected")
		return "", nil
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		primary := ""
		if i == 0 {
			primary = "primary "
		}
		fmt.Fprintf(&b, "display-%d connected %s%dx%d+%d+%d\n",
			i, primary, bounds.Dx(), bounds.Dy(), bounds.Min.X, bounds.Min.Y)
	}

	return b.String(), nil
}
