package trading

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jondoescoding/kryptt/internal/alpaca"
)

// AssetClassCrypto is the asset class accepted by every position operation.
const AssetClassCrypto = "crypto"

// Position is a fully-populated position record safe for client
// consumption: every numeric field is a string with "0" standing in for
// values the upstream source did not report, and the internal asset ID
// is dropped from the shape entirely.
type Position struct {
	Symbol                 string `json:"symbol"`
	Exchange               string `json:"exchange"`
	AssetClass             string `json:"asset_class"`
	AssetMarginable        bool   `json:"asset_marginable"`
	AvgEntryPrice          string `json:"avg_entry_price"`
	Qty                    string `json:"qty"`
	Side                   string `json:"side"`
	CostBasis              string `json:"cost_basis"`
	MarketValue            string `json:"market_value"`
	UnrealizedPL           string `json:"unrealized_pl"`
	UnrealizedPLPC         string `json:"unrealized_plpc"`
	UnrealizedIntradayPL   string `json:"unrealized_intraday_pl"`
	UnrealizedIntradayPLPC string `json:"unrealized_intraday_plpc"`
	CurrentPrice           string `json:"current_price"`
	LastdayPrice           string `json:"lastday_price"`
	ChangeToday            string `json:"change_today"`
	SwapRate               string `json:"swap_rate"`
	AvgEntrySwapRate       string `json:"avg_entry_swap_rate"`
	QtyAvailable           string `json:"qty_available"`
}

// CleanPosition normalizes one raw upstream position.
func CleanPosition(raw alpaca.Position) Position {
	return Position{
		Symbol:                 raw.Symbol,
		Exchange:               raw.Exchange,
		AssetClass:             raw.AssetClass,
		AssetMarginable:        raw.AssetMarginable,
		AvgEntryPrice:          raw.AvgEntryPrice,
		Qty:                    raw.Qty,
		Side:                   raw.Side,
		CostBasis:              raw.CostBasis,
		MarketValue:            zeroIfNil(raw.MarketValue),
		UnrealizedPL:           zeroIfNil(raw.UnrealizedPL),
		UnrealizedPLPC:         zeroIfNil(raw.UnrealizedPLPC),
		UnrealizedIntradayPL:   zeroIfNil(raw.UnrealizedIntradayPL),
		UnrealizedIntradayPLPC: zeroIfNil(raw.UnrealizedIntradayPLPC),
		CurrentPrice:           zeroIfNil(raw.CurrentPrice),
		LastdayPrice:           zeroIfNil(raw.LastdayPrice),
		ChangeToday:            zeroIfNil(raw.ChangeToday),
		SwapRate:               zeroIfNil(raw.SwapRate),
		AvgEntrySwapRate:       zeroIfNil(raw.AvgEntrySwapRate),
		QtyAvailable:           zeroIfNil(raw.QtyAvailable),
	}
}

// CleanCryptoPositions keeps only crypto-class positions, cleans each one,
// and sorts the result descending by parsed current price. The sort is
// stable: ties keep the upstream relative order.
func CleanCryptoPositions(raw []alpaca.Position) []Position {
	cleaned := make([]Position, 0, len(raw))
	for _, p := range raw {
		if p.AssetClass != AssetClassCrypto {
			continue
		}
		cleaned = append(cleaned, CleanPosition(p))
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return parsePrice(cleaned[i].CurrentPrice) > parsePrice(cleaned[j].CurrentPrice)
	})
	return cleaned
}

// FetchCryptoPosition retrieves one open position and verifies it is
// crypto-class before cleaning it. A position in any other asset class
// returns ErrNotCrypto.
func FetchCryptoPosition(ctx context.Context, client *alpaca.Client, symbol string) (Position, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return Position{}, fmt.Errorf("%w: symbol is required", ErrInvalidParameter)
	}

	raw, err := client.GetOpenPosition(ctx, symbol)
	if err != nil {
		return Position{}, err
	}
	if raw.AssetClass != AssetClassCrypto {
		return Position{}, fmt.Errorf("%w: %s is %s", ErrNotCrypto, symbol, raw.AssetClass)
	}
	return CleanPosition(raw), nil
}

// CloseCryptoPosition liquidates one open crypto position entirely and
// returns the resulting closure order. The position is looked up first so
// a non-crypto asset is rejected before anything is closed.
func CloseCryptoPosition(ctx context.Context, client *alpaca.Client, symbol string) (alpaca.Order, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return alpaca.Order{}, fmt.Errorf("%w: symbol is required", ErrInvalidParameter)
	}

	raw, err := client.GetOpenPosition(ctx, symbol)
	if err != nil {
		return alpaca.Order{}, err
	}
	if raw.AssetClass != AssetClassCrypto {
		return alpaca.Order{}, fmt.Errorf("%w: %s is %s", ErrNotCrypto, symbol, raw.AssetClass)
	}
	return client.ClosePosition(ctx, symbol)
}

func zeroIfNil(s *string) string {
	if s == nil {
		return "0"
	}
	return *s
}

// parsePrice reads the string form of a cleaned price field. Anything
// unparseable sorts as zero.
func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
