package provider

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/genricoloni/dailywall/internal/domain"
	"github.com/genricoloni/dailywall/internal/fetcher"
	"go.uber.org/zap"
)

const (
	nasaBaseURL    = "https://api.nasa.gov"
	apodDateLayout = "2006-01-02"
	apodMediaImage = "image"
)

// First published Astronomy Picture of the Day
var apodEpoch = time.Date(1995, time.June, 16, 0, 0, 0, 0, time.UTC)

// APOD dates roll over at midnight US Eastern
var apodZone = loadAPODZone()

func loadAPODZone() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

type apodResponse struct {
	MediaType string `json:"media_type"`
	URL       string `json:"url"`
	HDURL     string `json:"hdurl"`
	Title     string `json:"title"`
	Date      string `json:"date"`
}

// NASA fetches the Astronomy Picture of the Day
type NASA struct {
	logger   *zap.Logger
	fetcher  *fetcher.HTTPFetcher
	baseURL  string
	apiKey   string
	preferHD bool
	now      func() time.Time
}

// NewNASA creates the APOD provider. An API key is required.
func NewNASA(logger *zap.Logger, f *fetcher.HTTPFetcher, apiKey string, preferHD bool) (*NASA, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: NASA_API_KEY is not set", domain.ErrConfiguration)
	}
	return &NASA{
		logger:   logger.With(zap.String("provider", string(domain.ProviderNASA))),
		fetcher:  f,
		baseURL:  nasaBaseURL,
		apiKey:   apiKey,
		preferHD: preferHD,
		now:      time.Now,
	}, nil
}

// Kind identifies the provider
func (n *NASA) Kind() domain.ProviderKind {
	return domain.ProviderNASA
}

// HistoryDays counts the days since the first APOD
func (n *NASA) HistoryDays(now time.Time) int {
	days := int(now.Sub(apodEpoch).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Fetch downloads the APOD for today minus daysInPast.
// Days whose media is not an image are reported as skipped.
func (n *NASA) Fetch(ctx context.Context, outputDir string, daysInPast int) (domain.FetchResult, error) {
	day := n.now().In(apodZone).AddDate(0, 0, -daysInPast)
	date := day.Format(apodDateLayout)

	endpoint := fmt.Sprintf("%s/planetary/apod?api_key=%s&date=%s",
		n.baseURL, url.QueryEscape(n.apiKey), date)

	var apod apodResponse
	if err := n.fetcher.GetJSON(ctx, endpoint, &apod); err != nil {
		return domain.FetchResult{}, fmt.Errorf("apod %s: %w", date, err)
	}

	if apod.MediaType != apodMediaImage {
		reason := fmt.Sprintf("apod %s is a %s, not an image", date, apod.MediaType)
		n.logger.Info("Skipping day", zap.String("date", date), zap.String("mediaType", apod.MediaType))
		return domain.Skipped(reason), nil
	}

	src := apod.URL
	if n.preferHD && apod.HDURL != "" {
		src = apod.HDURL
	}
	if src == "" || apod.Title == "" {
		return domain.FetchResult{}, fmt.Errorf("%w: apod %s missing url or title", domain.ErrFormat, date)
	}

	dest := filepath.Join(outputDir, Sanitize(apod.Title+"_"+date)+".jpg")
	if err := n.fetcher.Download(ctx, src, dest); err != nil {
		return domain.FetchResult{}, fmt.Errorf("apod %s image: %w", date, err)
	}

	n.logger.Info("Image fetched",
		zap.String("title", apod.Title),
		zap.String("path", dest),
		zap.String("date", date))

	return domain.Fetched(domain.FetchedImage{
		Path:     dest,
		Provider: domain.ProviderNASA,
		Date:     day,
	}), nil
}
