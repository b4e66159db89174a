package provider

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/genricoloni/dailywall/internal/domain"
	"github.com/genricoloni/dailywall/internal/fetcher"
	"go.uber.org/zap"
)

const (
	bingBaseURL     = "https://www.bing.com"
	bingMarket      = "en-US"
	bingHistoryDays = 7
	bingDateLayout  = "20060102"
)

type bingArchive struct {
	Images []struct {
		URL       string `json:"url"`
		Title     string `json:"title"`
		StartDate string `json:"startdate"`
	} `json:"images"`
}

// Bing fetches the Bing homepage image archive
type Bing struct {
	logger  *zap.Logger
	fetcher *fetcher.HTTPFetcher
	baseURL string
	now     func() time.Time
}

// NewBing creates the Bing image of the day provider
func NewBing(logger *zap.Logger, f *fetcher.HTTPFetcher) *Bing {
	return &Bing{
		logger:  logger.With(zap.String("provider", string(domain.ProviderBing))),
		fetcher: f,
		baseURL: bingBaseURL,
		now:     time.Now,
	}
}

// Kind identifies the provider
func (b *Bing) Kind() domain.ProviderKind {
	return domain.ProviderBing
}

// HistoryDays is the depth of the public archive
func (b *Bing) HistoryDays(time.Time) int {
	return bingHistoryDays
}

// Fetch downloads the image published daysInPast days ago
func (b *Bing) Fetch(ctx context.Context, outputDir string, daysInPast int) (domain.FetchResult, error) {
	endpoint := fmt.Sprintf("%s/HPImageArchive.aspx?format=js&idx=%d&n=1&mkt=%s",
		b.baseURL, daysInPast, bingMarket)

	var archive bingArchive
	if err := b.fetcher.GetJSON(ctx, endpoint, &archive); err != nil {
		return domain.FetchResult{}, fmt.Errorf("bing archive: %w", err)
	}
	if len(archive.Images) != 1 {
		return domain.FetchResult{}, fmt.Errorf("%w: bing archive returned %d images, expected 1",
			domain.ErrFormat, len(archive.Images))
	}

	entry := archive.Images[0]
	if entry.URL == "" || entry.Title == "" {
		return domain.FetchResult{}, fmt.Errorf("%w: bing entry missing url or title", domain.ErrFormat)
	}

	imageURL, err := b.resolve(entry.URL)
	if err != nil {
		return domain.FetchResult{}, err
	}

	dest := filepath.Join(outputDir, Sanitize(entry.Title)+".jpg")
	if err := b.fetcher.Download(ctx, imageURL, dest); err != nil {
		return domain.FetchResult{}, fmt.Errorf("bing image: %w", err)
	}

	date, err := time.Parse(bingDateLayout, entry.StartDate)
	if err != nil {
		date = b.now().AddDate(0, 0, -daysInPast)
	}

	b.logger.Info("Image fetched",
		zap.String("title", entry.Title),
		zap.String("path", dest),
		zap.Int("daysInPast", daysInPast))

	return domain.Fetched(domain.FetchedImage{
		Path:     dest,
		Provider: domain.ProviderBing,
		Date:     date,
	}), nil
}

// resolve turns the archive's relative image path into an absolute URL
func (b *Bing) resolve(ref string) (string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	base, err := url.Parse(b.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: bad base url: %v", domain.ErrConfiguration, err)
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: bad image url %q", domain.ErrFormat, ref)
	}
	return base.ResolveReference(rel).String(), nil
}
