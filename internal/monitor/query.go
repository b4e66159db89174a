package monitor

import (
	"fmt"

	"github.com/genricoloni/dailywall/internal/config"
	"github.com/genricoloni/dailywall/internal/domain"
	"go.uber.org/zap"
)

// NewDisplayQuery selects the display backend by name
func NewDisplayQuery(logger *zap.Logger, backend string, runner domain.CommandRunner) (domain.DisplayQuery, error) {
	switch backend {
	case config.BackendXrandr, "":
		return NewXrandrQuery(runner), nil
	case config.BackendRandR:
		return NewRandRQuery(logger), nil
	case config.BackendScreenshot:
		return NewScreenshotQuery(logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown display backend %q", domain.ErrConfiguration, backend)
	}
}
