package provider

import (
	"fmt"

	"github.com/genricoloni/dailywall/internal/domain"
	"github.com/genricoloni/dailywall/internal/fetcher"
	"go.uber.org/zap"
)

// Options carries provider specific settings
type Options struct {
	NASAAPIKey string
	PreferHD   bool
}

// New builds providers in the order given by names
func New(logger *zap.Logger, f *fetcher.HTTPFetcher, names []string, opts Options) ([]domain.Provider, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no providers configured", domain.ErrConfiguration)
	}

	providers := make([]domain.Provider, 0, len(names))
	for _, name := range names {
		switch domain.ProviderKind(name) {
		case domain.ProviderBing:
			providers = append(providers, NewBing(logger, f))
		case domain.ProviderNASA:
			p, err := NewNASA(logger, f, opts.NASAAPIKey, opts.PreferHD)
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		default:
			return nil, fmt.Errorf("%w: unknown provider %q", domain.ErrConfiguration, name)
		}
	}

	return providers, nil
}
