package collector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRESTFetcher_DailyBars(t *testing.T) {
	var auth, symbol, from string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		symbol = r.URL.Query().Get("symbol")
		from = r.URL.Query().Get("from")
		json.NewEncoder(w).Encode([]restBar{
			{Timestamp: 1709510400, Close: 12},
			{Timestamp: 1709251200, Close: 11},
		})
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "", 5*time.Second)
	f.Now = func() time.Time { return time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC) }

	bars, err := f.FetchDailyBars(context.Background(), "AAA", 2)
	if err != nil {
		t.Fatalf("FetchDailyBars() error = %v", err)
	}
	if auth != "Bearer secret" {
		t.Errorf("auth header = %q", auth)
	}
	if symbol != "AAA" || from != "2024-01-31" {
		t.Errorf("symbol = %q, from = %q", symbol, from)
	}
	if len(bars) != 2 || bars[0].Close != 11 || bars[1].Close != 12 {
		t.Fatalf("unexpected bars: %+v", bars)
	}
}

func TestRESTFetcher_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "", "", time.Second)
	if _, err := f.FetchDailyBars(context.Background(), "AAA", 1); err == nil {
		t.Fatal("expected error on 502")
	}
}
