package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/genricoloni/dailywall/internal/domain"
	"go.uber.org/zap"
)

func TestHTTPFetcher_Download(t *testing.T) {
	tests := []struct {
		name           string
		contentType    string
		responseBody   []byte
		statusCode     int
		maxSize        int64
		ctxFunc        func() (context.Context, context.CancelFunc)
		expectedError  error
		expectedLength int
	}{
		{
			name:           "Success - Valid Image",
			contentType:    "image/jpeg",
			responseBody:   []byte("fake-image-data"),
			statusCode:     http.StatusOK,
			expectedLength: 15,
		},
		{
			name:          "Error - 404 Not Found",
			contentType:   "image/jpeg",
			statusCode:    http.StatusNotFound,
			expectedError: domain.ErrFetch,
		},
		{
			name:          "Error - Invalid Content Type",
			contentType:   "text/html",
			responseBody:  []byte("<html></html>"),
			statusCode:    http.StatusOK,
			expectedError: domain.ErrFormat,
		},
		{
			name:          "Error - Response Too Large",
			contentType:   "image/png",
			responseBody:  []byte(strings.Repeat("a", 2048)),
			statusCode:    http.StatusOK,
			maxSize:       1024,
			expectedError: domain.ErrFetch,
		},
		{
			name: "Error - Context Cancelled",
			ctxFunc: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel() // Cancel immediately
				return ctx, cancel
			},
			expectedError: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write(tt.responseBody)
			}))
			defer server.Close()

			var ctx context.Context
			var cancel context.CancelFunc
			if tt.ctxFunc != nil {
				ctx, cancel = tt.ctxFunc()
			} else {
				ctx, cancel = context.WithTimeout(context.Background(), 2*time.Second)
			}
			defer cancel()

			dir := t.TempDir()
			dest := filepath.Join(dir, "image.jpg")

			fetcher := NewHTTPFetcher(zap.NewNop(), time.Second)
			if tt.maxSize > 0 {
				fetcher.maxSize = tt.maxSize
			}
			err := fetcher.Download(ctx, server.URL, dest)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected %v, got %v", tt.expectedError, err)
				}
				if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
					t.Errorf("destination should not exist after failure")
				}
				entries, _ := os.ReadDir(dir)
				if len(entries) != 0 {
					t.Errorf("temp files left behind: %d", len(entries))
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			data, err := os.ReadFile(dest)
			if err != nil {
				t.Fatal(err)
			}
			if len(data) != tt.expectedLength {
				t.Errorf("expected data length %d, got %d", tt.expectedLength, len(data))
			}
		})
	}
}

func TestHTTPFetcher_GetJSON(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		statusCode    int
		expectedError error
	}{
		{"Success", `{"title":"Sunrise","count":2}`, http.StatusOK, nil},
		{"Server Error", `{}`, http.StatusInternalServerError, domain.ErrFetch},
		{"Malformed JSON", `{"title":`, http.StatusOK, domain.ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ua := r.Header.Get("User-Agent"); ua != _userAgent {
					t.Errorf("unexpected user agent %q", ua)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			var out struct {
				Title string `json:"title"`
				Count int    `json:"count"`
			}
			err := NewHTTPFetcher(zap.NewNop(), time.Second).GetJSON(context.Background(), server.URL, &out)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Title != "Sunrise" || out.Count != 2 {
				t.Errorf("unexpected decode result: %+v", out)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	tests := map[string]string{
		"https://api.nasa.gov/planetary/apod?api_key=SECRET&date=2024-01-01": "https://api.nasa.gov/planetary/apod?api_key=REDACTED&date=2024-01-01",
		"https://api.nasa.gov/planetary/apod?date=2024-01-01&api_key=SECRET": "https://api.nasa.gov/planetary/apod?date=2024-01-01&api_key=REDACTED",
		"https://www.bing.com/HPImageArchive.aspx?idx=0":                     "https://www.bing.com/HPImageArchive.aspx?idx=0",
	}
	for in, want := range tests {
		if got := redact(in); got != want {
			t.Errorf("redact(%q) = %q, want %q", in, got, want)
		}
	}
}
