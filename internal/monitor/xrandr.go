package monitor

import (
	"context"
	"fmt"

	"github.com/genricoloni/dailywall/internal/domain"
)

// XrandrQuery lists outputs by running xrandr --query
type XrandrQuery struct {
	runner domain.CommandRunner
}

// NewXrandrQuery creates a display query backed by the xrandr binary
func NewXrandrQuery(runner domain.CommandRunner) *XrandrQuery {
	return &XrandrQuery{runner: runner}
}

// Query returns the raw xrandr listing
func (q *XrandrQuery) Query(ctx context.Context) (string, error) {
	out, err := q.runner.Run(ctx, "xrandr", "--query")
	if err != nil {
		return "", fmt.Errorf("xrandr: %w", err)
	}
	return string(out), nil
}
