package desktop

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/genricoloni/dailywall/internal/domain"
	"github.com/genricoloni/dailywall/internal/domain/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestGSettingsStore_Read(t *testing.T) {
	path := "/org/gnome/desktop/interface/x11-monitor/HDMI-1ScalingFactor"

	tests := []struct {
		name        string
		output      string
		runErr      error
		expected    string
		expectError bool
	}{
		{"Value", "1.25\n", nil, "1.25", false},
		{"Unset Key", "\n", nil, "", false},
		{"Command Failure", "", fmt.Errorf("exit status 1"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := mocks.NewMockCommandRunner(ctrl)
			runner.EXPECT().Run(gomock.Any(), "dconf", "read", path).
				Return([]byte(tt.output), tt.runErr)

			store := NewGSettingsStore(zap.NewNop(), runner)
			got, err := store.Read(context.Background(), path)

			if tt.expectError {
				if !errors.Is(err, domain.ErrQuery) {
					t.Fatalf("expected ErrQuery, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestGSettingsStore_GetUnquotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), "gsettings", "get", BackgroundSchema, KeyPictureURI).
		Return([]byte("'file:///home/u/old.jpg'\n"), nil)

	store := NewGSettingsStore(zap.NewNop(), runner)
	got, err := store.Get(context.Background(), BackgroundSchema, KeyPictureURI)
	if err != nil {
		t.Fatal(err)
	}
	if got != "file:///home/u/old.jpg" {
		t.Errorf("unexpected value %q", got)
	}
}

func TestGSettingsStore_Set(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), "gsettings", "set", BackgroundSchema, KeyPictureOptions, "spanned").
		Return(nil, nil)
	runner.EXPECT().Run(gomock.Any(), "gsettings", "set", BackgroundSchema, KeyPictureURI, "bad").
		Return(nil, fmt.Errorf("no such key"))

	store := NewGSettingsStore(zap.NewNop(), runner)
	if err := store.Set(context.Background(), BackgroundSchema, KeyPictureOptions, "spanned"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Set(context.Background(), BackgroundSchema, KeyPictureURI, "bad"); err == nil {
		t.Fatal("expected error from failing gsettings")
	}
}

func TestUnquote(t *testing.T) {
	tests := map[string]string{
		"'zoom'": "zoom",
		"zoom":   "zoom",
		"'":      "'",
		"''":     "",
	}
	for in, want := range tests {
		if got := unquote(in); got != want {
			t.Errorf("unquote(%q) = %q, want %q", in, got, want)
		}
	}
}
