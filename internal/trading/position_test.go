package trading_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jondoescoding/kryptt/internal/alpaca"
	"github.com/jondoescoding/kryptt/internal/trading"
)

func s(v string) *string { return &v }

func rawPosition(symbol, class string, currentPrice *string) alpaca.Position {
	return alpaca.Position{
		AssetID:       "internal-id-" + symbol,
		Symbol:        symbol,
		Exchange:      "FTXU",
		AssetClass:    class,
		AvgEntryPrice: "100",
		Qty:           "1",
		Side:          "long",
		CostBasis:     "100",
		CurrentPrice:  currentPrice,
	}
}

func TestCleanPosition_NullsBecomeZero(t *testing.T) {
	t.Parallel()

	raw := rawPosition("ETH/USD", "crypto", nil)
	raw.SwapRate = nil
	raw.MarketValue = s("250.5")

	got := trading.CleanPosition(raw)

	assert.Equal(t, "0", got.CurrentPrice)
	assert.Equal(t, "0", got.SwapRate)
	assert.Equal(t, "0", got.UnrealizedPL)
	assert.Equal(t, "0", got.QtyAvailable)
	assert.Equal(t, "250.5", got.MarketValue)
	assert.Equal(t, "100", got.AvgEntryPrice)
}

func TestCleanPosition_DropsAssetID(t *testing.T) {
	t.Parallel()

	got := trading.CleanPosition(rawPosition("ETH/USD", "crypto", s("2000")))

	raw, err := json.Marshal(got)
	require.NoError(t, err)

	var asMap map[string]any
	require.NoError(t, json.Unmarshal(raw, &asMap))
	assert.NotContains(t, asMap, "asset_id")
	assert.Equal(t, "ETH/USD", asMap["symbol"])
}

func TestCleanCryptoPositions_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	raw := []alpaca.Position{
		rawPosition("AAPL", "us_equity", s("190")),
		rawPosition("ETH/USD", "crypto", s("2000")),
		rawPosition("DOGE/USD", "crypto", s("0.08")),
		rawPosition("BTC/USD", "crypto", s("40000")),
	}

	got := trading.CleanCryptoPositions(raw)

	require.Len(t, got, 3)
	assert.Equal(t, "BTC/USD", got[0].Symbol)
	assert.Equal(t, "ETH/USD", got[1].Symbol)
	assert.Equal(t, "DOGE/USD", got[2].Symbol)
}

func TestCleanCryptoPositions_TiesKeepUpstreamOrder(t *testing.T) {
	t.Parallel()

	raw := []alpaca.Position{
		rawPosition("AAA/USD", "crypto", s("5")),
		rawPosition("BBB/USD", "crypto", s("5")),
		rawPosition("CCC/USD", "crypto", s("5")),
	}

	got := trading.CleanCryptoPositions(raw)

	require.Len(t, got, 3)
	assert.Equal(t, "AAA/USD", got[0].Symbol)
	assert.Equal(t, "BBB/USD", got[1].Symbol)
	assert.Equal(t, "CCC/USD", got[2].Symbol)
}

func TestCleanCryptoPositions_NullPricesSortLast(t *testing.T) {
	t.Parallel()

	raw := []alpaca.Position{
		rawPosition("AAA/USD", "crypto", nil),
		rawPosition("BBB/USD", "crypto", s("10")),
	}

	got := trading.CleanCryptoPositions(raw)

	require.Len(t, got, 2)
	assert.Equal(t, "BBB/USD", got[0].Symbol)
	assert.Equal(t, "0", got[1].CurrentPrice)
}

func TestCleanCryptoPositions_Empty(t *testing.T) {
	t.Parallel()

	got := trading.CleanCryptoPositions(nil)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
