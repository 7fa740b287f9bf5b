package trading_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jondoescoding/kryptt/internal/alpaca"
	"github.com/jondoescoding/kryptt/internal/keys"
	"github.com/jondoescoding/kryptt/internal/tool"
	"github.com/jondoescoding/kryptt/internal/trading"
)

// newTestFactory wires a factory to a fake brokerage server. The returned
// keys store is pre-populated unless configured is false.
func newTestFactory(t *testing.T, handler http.Handler, configured bool) *alpaca.Factory {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ks := keys.NewStore(nil)
	if configured {
		ks.Save(keys.APIKeys{
			Groq:            "gsk_test",
			AlpacaAPIKey:    "AK_test",
			AlpacaSecretKey: "SK_test",
			AlpacaEndpoint:  srv.URL,
		})
	}
	return alpaca.NewFactory(ks)
}

func findTool(t *testing.T, tools []tool.Tool, name string) tool.Tool {
	t.Helper()
	for _, tl := range tools {
		if tl.Name() == name {
			return tl
		}
	}
	t.Fatalf("tool %s not found", name)
	return nil
}

func TestQuickOrderTool_Success(t *testing.T) {
	t.Parallel()

	factory := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)

		var req alpaca.OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ETH/USD", req.Symbol)
		assert.Equal(t, "buy", req.Side)
		assert.Equal(t, "market", req.Type)
		assert.Equal(t, "gtc", req.TimeInForce)
		assert.Equal(t, "0.5", req.Qty)

		json.NewEncoder(w).Encode(alpaca.Order{ID: "ord-1", Status: "accepted"})
	}), true)

	tl := findTool(t, trading.OrderTools(factory, nil), trading.ToolQuickCryptoOrder)
	out, err := tl.Execute(context.Background(), json.RawMessage(`{"action":"Buy","quantity":0.5,"crypto":"eth"}`))
	require.NoError(t, err)
	assert.False(t, out.IsError)
	assert.Contains(t, out.Content, "ord-1")
	assert.Contains(t, out.Content, "ETH/USD")
}

func TestQuickOrderTool_InvalidAction(t *testing.T) {
	t.Parallel()

	factory := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for invalid parameters")
	}), true)

	tl := findTool(t, trading.OrderTools(factory, nil), trading.ToolQuickCryptoOrder)
	out, err := tl.Execute(context.Background(), json.RawMessage(`{"action":"hold","quantity":1,"crypto":"eth"}`))
	require.NoError(t, err)
	assert.True(t, out.IsError)
	assert.Contains(t, out.Content, "invalid side")
}

func TestQuickOrderTool_NotConfigured(t *testing.T) {
	t.Parallel()

	factory := newTestFactory(t, http.NewServeMux(), false)

	tl := findTool(t, trading.OrderTools(factory, nil), trading.ToolQuickCryptoOrder)
	out, err := tl.Execute(context.Background(), json.RawMessage(`{"action":"buy","quantity":1,"crypto":"eth"}`))
	require.NoError(t, err)
	assert.True(t, out.IsError)
	assert.Contains(t, out.Content, "not configured")
}

func TestCreateOrderTool_LimitOrder(t *testing.T) {
	t.Parallel()

	factory := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req alpaca.OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "limit", req.Type)
		assert.Equal(t, "3000.5", req.LimitPrice)
		assert.Equal(t, "100", req.Notional)
		assert.Equal(t, "day", req.TimeInForce)

		json.NewEncoder(w).Encode(alpaca.Order{ID: "ord-2", Status: "new"})
	}), true)

	tl := findTool(t, trading.OrderTools(factory, nil), trading.ToolCreateOrder)
	args := `{"symbol":"ETH/USD","side":"buy","type":"limit","notional":100,"limit_price":3000.5}`
	out, err := tl.Execute(context.Background(), json.RawMessage(args))
	require.NoError(t, err)
	assert.False(t, out.IsError)
	assert.Contains(t, out.Content, "ord-2")
}

func TestCreateOrderTool_MissingLimitPrice(t *testing.T) {
	t.Parallel()

	factory := newTestFactory(t, http.NewServeMux(), true)

	tl := findTool(t, trading.OrderTools(factory, nil), trading.ToolCreateOrder)
	args := `{"symbol":"ETH/USD","side":"buy","type":"limit","qty":1}`
	out, err := tl.Execute(context.Background(), json.RawMessage(args))
	require.NoError(t, err)
	assert.True(t, out.IsError)
	assert.Contains(t, out.Content, "limit price")
}

func TestListPositionsTool_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	factory := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/positions", r.URL.Path)
		w.Write([]byte(`[
			{"symbol":"AAPL","asset_class":"us_equity","current_price":"190"},
			{"symbol":"ETHUSD","asset_class":"crypto","current_price":"3000","market_value":null},
			{"symbol":"BTCUSD","asset_class":"crypto","current_price":"60000"}
		]`))
	}), true)

	tl := findTool(t, trading.PositionTools(factory, nil), trading.ToolListPositions)
	out, err := tl.Execute(context.Background(), nil)
	require.NoError(t, err)
	require.False(t, out.IsError)

	var got []trading.Position
	require.NoError(t, json.Unmarshal([]byte(out.Content), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "BTCUSD", got[0].Symbol)
	assert.Equal(t, "ETHUSD", got[1].Symbol)
	assert.Equal(t, "0", got[1].MarketValue)
	assert.NotContains(t, out.Content, "asset_id")
}

func TestGetPositionTool_NotFound(t *testing.T) {
	t.Parallel()

	factory := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":40410000,"message":"position does not exist"}`))
	}), true)

	tl := findTool(t, trading.PositionTools(factory, nil), trading.ToolGetPosition)
	out, err := tl.Execute(context.Background(), json.RawMessage(`{"symbol":"ETH/USD"}`))
	require.NoError(t, err)
	assert.True(t, out.IsError)
	assert.Contains(t, out.Content, "No open position found")
}

func TestGetPositionTool_RejectsNonCrypto(t *testing.T) {
	t.Parallel()

	factory := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"symbol": "AAPL", "asset_class": "us_equity",
		})
	}), true)

	tl := findTool(t, trading.PositionTools(factory, nil), trading.ToolGetPosition)
	out, err := tl.Execute(context.Background(), json.RawMessage(`{"symbol":"AAPL"}`))
	require.NoError(t, err)
	assert.True(t, out.IsError)
	assert.Contains(t, out.Content, "not a cryptocurrency")
}

func TestClosePositionTool_Success(t *testing.T) {
	t.Parallel()

	factory := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(map[string]any{
				"symbol": "ETHUSD", "asset_class": "crypto", "current_price": "3000",
			})
			return
		}
		require.Equal(t, http.MethodDelete, r.Method)
		require.True(t, strings.HasSuffix(r.URL.Path, "/positions/ETHUSD"))
		json.NewEncoder(w).Encode(alpaca.Order{ID: "close-1", Status: "pending_new"})
	}), true)

	tl := findTool(t, trading.PositionTools(factory, nil), trading.ToolClosePosition)
	out, err := tl.Execute(context.Background(), json.RawMessage(`{"symbol":"ETHUSD"}`))
	require.NoError(t, err)
	assert.False(t, out.IsError)
	assert.Contains(t, out.Content, "close-1")
}

func TestClosePositionTool_NotFound(t *testing.T) {
	t.Parallel()

	factory := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":40410000,"message":"position does not exist"}`))
	}), true)

	tl := findTool(t, trading.PositionTools(factory, nil), trading.ToolClosePosition)
	out, err := tl.Execute(context.Background(), json.RawMessage(`{"symbol":"DOGE/USD"}`))
	require.NoError(t, err)
	assert.True(t, out.IsError)
	assert.Contains(t, out.Content, "No open position found")
}
