package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quantral/calendar-data/internal/config"
)

func TestLogoLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/profile/AAPL,MSFT" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[
			{"symbol": "AAPL", "image": "https://img.example.com/AAPL.png"},
			{"symbol": "MSFT", "image": ""}
		]`))
	}))
	defer srv.Close()

	l := NewLogoClient(config.ProviderConfig{
		BaseURL:    srv.URL,
		APIKey:     "key",
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	}, nil)

	logos, err := l.Lookup(context.Background(), []string{"AAPL", "MSFT"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	// Blank image references are filtered out.
	if len(logos) != 1 {
		t.Fatalf("len(logos) = %d, want 1", len(logos))
	}
	if logos[0].Symbol != "AAPL" || logos[0].URL != "https://img.example.com/AAPL.png" {
		t.Errorf("logos[0] = %+v", logos[0])
	}
}

func TestLogoLookupEmptyBatch(t *testing.T) {
	l := NewLogoClient(config.ProviderConfig{BaseURL: "http://unused"}, nil)
	logos, err := l.Lookup(context.Background(), nil)
	if err != nil || logos != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", logos, err)
	}
}
