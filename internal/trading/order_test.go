package trading_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jondoescoding/kryptt/internal/trading"
)

func f(v float64) *float64 { return &v }

func TestParseSide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    trading.Side
		wantErr bool
	}{
		{in: "buy", want: trading.SideBuy},
		{in: "BUY", want: trading.SideBuy},
		{in: " Sell ", want: trading.SideSell},
		{in: "hold", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := trading.ParseSide(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, trading.ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrderType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    trading.OrderType
		wantErr bool
	}{
		{in: "market", want: trading.OrderTypeMarket},
		{in: "LIMIT", want: trading.OrderTypeLimit},
		{in: "stop", want: trading.OrderTypeStop},
		{in: "stop_limit", want: trading.OrderTypeStopLimit},
		{in: "stop-limit", want: trading.OrderTypeStopLimit},
		{in: "trailing_stop", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := trading.ParseOrderType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, trading.ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeInForce(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"day", "GTC", "opg", "cls", "ioc", "FOK"} {
		_, err := trading.ParseTimeInForce(valid)
		assert.NoError(t, err, "ParseTimeInForce(%q)", valid)
	}

	_, err := trading.ParseTimeInForce("forever")
	assert.ErrorIs(t, err, trading.ErrInvalidParameter)
}

func TestQuickOrderSymbol(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ETH/USD", trading.QuickOrderSymbol("eth"))
	assert.Equal(t, "BTC/USD", trading.QuickOrderSymbol(" btc "))
}

func TestNewOrderRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  trading.OrderParams
		wantErr bool
	}{
		{
			name:   "valid market with qty",
			params: trading.OrderParams{Symbol: "ETH/USD", Side: "buy", Type: "market", Qty: f(0.1)},
		},
		{
			name:   "valid market with notional",
			params: trading.OrderParams{Symbol: "ETH/USD", Side: "sell", Type: "market", Notional: f(50)},
		},
		{
			name: "valid stop limit",
			params: trading.OrderParams{
				Symbol: "BTC/USD", Side: "buy", Type: "stop_limit",
				Qty: f(0.2), LimitPrice: f(41000), StopPrice: f(40000),
			},
		},
		{
			name:    "both qty and notional",
			params:  trading.OrderParams{Symbol: "ETH/USD", Side: "buy", Type: "market", Qty: f(0.1), Notional: f(5)},
			wantErr: true,
		},
		{
			name:    "neither qty nor notional",
			params:  trading.OrderParams{Symbol: "ETH/USD", Side: "buy", Type: "market"},
			wantErr: true,
		},
		{
			name:    "zero qty",
			params:  trading.OrderParams{Symbol: "ETH/USD", Side: "buy", Type: "market", Qty: f(0)},
			wantErr: true,
		},
		{
			name:    "negative notional",
			params:  trading.OrderParams{Symbol: "ETH/USD", Side: "buy", Type: "market", Notional: f(-5)},
			wantErr: true,
		},
		{
			name:    "limit without limit price",
			params:  trading.OrderParams{Symbol: "ETH/USD", Side: "buy", Type: "limit", Qty: f(0.1)},
			wantErr: true,
		},
		{
			name:    "stop without stop price",
			params:  trading.OrderParams{Symbol: "ETH/USD", Side: "buy", Type: "stop", Qty: f(0.1)},
			wantErr: true,
		},
		{
			name: "stop limit missing stop price",
			params: trading.OrderParams{
				Symbol: "ETH/USD", Side: "buy", Type: "stop_limit", Qty: f(0.1), LimitPrice: f(2000),
			},
			wantErr: true,
		},
		{
			name:    "bad side",
			params:  trading.OrderParams{Symbol: "ETH/USD", Side: "hold", Type: "market", Qty: f(0.1)},
			wantErr: true,
		},
		{
			name:    "bad time in force",
			params:  trading.OrderParams{Symbol: "ETH/USD", Side: "buy", Type: "market", Qty: f(0.1), TimeInForce: "forever"},
			wantErr: true,
		},
		{
			name:    "missing symbol",
			params:  trading.OrderParams{Side: "buy", Type: "market", Qty: f(0.1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req, err := trading.NewOrderRequest(tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, trading.ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.params.Symbol, req.Symbol)
		})
	}
}

func TestNewOrderRequest_Normalization(t *testing.T) {
	t.Parallel()

	req, err := trading.NewOrderRequest(trading.OrderParams{
		Symbol: "ETH/USD", Side: "BUY", Type: "Stop-Limit",
		Qty: f(0.5), LimitPrice: f(2100.5), StopPrice: f(2000),
		TimeInForce: "GTC",
	})
	require.NoError(t, err)

	assert.Equal(t, "buy", req.Side)
	assert.Equal(t, "stop_limit", req.Type)
	assert.Equal(t, "gtc", req.TimeInForce)
	assert.Equal(t, "0.5", req.Qty)
	assert.Equal(t, "2100.5", req.LimitPrice)
	assert.Equal(t, "2000", req.StopPrice)
	assert.Empty(t, req.Notional)
}

func TestNewOrderRequest_DefaultTimeInForce(t *testing.T) {
	t.Parallel()

	req, err := trading.NewOrderRequest(trading.OrderParams{
		Symbol: "ETH/USD", Side: "buy", Type: "market", Qty: f(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "day", req.TimeInForce)
}

func TestNewQuickOrderRequest(t *testing.T) {
	t.Parallel()

	req, err := trading.NewQuickOrderRequest("Buy", 0.1, "eth")
	require.NoError(t, err)
	assert.Equal(t, "ETH/USD", req.Symbol)
	assert.Equal(t, "buy", req.Side)
	assert.Equal(t, "market", req.Type)
	assert.Equal(t, "gtc", req.TimeInForce)
	assert.Equal(t, "0.1", req.Qty)

	_, err = trading.NewQuickOrderRequest("hold", 0.1, "eth")
	assert.ErrorIs(t, err, trading.ErrInvalidParameter)

	_, err = trading.NewQuickOrderRequest("buy", 0, "eth")
	assert.ErrorIs(t, err, trading.ErrInvalidParameter)

	_, err = trading.NewQuickOrderRequest("buy", 0.1, "")
	assert.ErrorIs(t, err, trading.ErrInvalidParameter)
}
