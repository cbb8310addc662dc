package collector

import (
	"context"

	"PriceBoard/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyBars returns the daily bars of the last months months,
	// oldest first.
	FetchDailyBars(ctx context.Context, symbol string, months int) ([]model.OHLCV, error)
	Name() string
}
