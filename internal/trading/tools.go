package trading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jondoescoding/kryptt/internal/alpaca"
	"github.com/jondoescoding/kryptt/internal/keys"
	"github.com/jondoescoding/kryptt/internal/tool"
)

// Tool names the agents dispatch by.
const (
	ToolQuickCryptoOrder = "quick_crypto_order"
	ToolCreateOrder      = "create_order"
	ToolListPositions    = "list_positions"
	ToolGetPosition      = "get_position"
	ToolClosePosition    = "close_position"
)

// toolBase carries the shared dependencies of every trading tool.
type toolBase struct {
	factory *alpaca.Factory
	logger  *slog.Logger
}

func newToolBase(factory *alpaca.Factory, logger *slog.Logger) toolBase {
	if logger == nil {
		logger = slog.Default()
	}
	return toolBase{factory: factory, logger: logger}
}

// client resolves the brokerage client, translating an empty credential
// slot into a user-presentable output.
func (b toolBase) client() (*alpaca.Client, tool.Output, bool) {
	c, err := b.factory.Client()
	if err != nil {
		if errors.Is(err, keys.ErrNotConfigured) {
			return nil, tool.Errorf("Alpaca API keys not configured. Save your keys first."), false
		}
		return nil, tool.Errorf("failed to initialize trading client: %v", err), false
	}
	return c, tool.Output{}, true
}

// OrderTools returns the tools available to the order agent.
func OrderTools(factory *alpaca.Factory, logger *slog.Logger) []tool.Tool {
	base := newToolBase(factory, logger)
	return []tool.Tool{
		&quickOrderTool{toolBase: base},
		&createOrderTool{toolBase: base},
	}
}

// PositionTools returns the tools available to the position agent.
func PositionTools(factory *alpaca.Factory, logger *slog.Logger) []tool.Tool {
	base := newToolBase(factory, logger)
	return []tool.Tool{
		&listPositionsTool{toolBase: base},
		&getPositionTool{toolBase: base},
		&closePositionTool{toolBase: base},
	}
}

// quickOrderTool places a GTC market order on a USD pair with minimal
// parameters ("Buy 0.1 ETH").
type quickOrderTool struct {
	toolBase
}

type quickOrderArgs struct {
	Action   string  `json:"action"`
	Quantity float64 `json:"quantity"`
	Crypto   string  `json:"crypto"`
}

func (t *quickOrderTool) Name() string { return ToolQuickCryptoOrder }

func (t *quickOrderTool) Description() string {
	return "Create a simple market order for crypto with minimal parameters. " +
		"action is 'buy' or 'sell', quantity is the amount to trade, " +
		"crypto is the cryptocurrency code (e.g. 'ETH', 'BTC')."
}

func (t *quickOrderTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"action": {"type": "string", "description": "'buy' or 'sell'"},
			"quantity": {"type": "number", "description": "Amount of crypto to trade"},
			"crypto": {"type": "string", "description": "Cryptocurrency code, e.g. 'ETH'"}
		},
		"required": ["action", "quantity", "crypto"]
	}`)
}

func (t *quickOrderTool) Execute(ctx context.Context, args json.RawMessage) (tool.Output, error) {
	var a quickOrderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return tool.Output{}, fmt.Errorf("decode %s args: %w", t.Name(), err)
	}

	t.logger.Info("quick order requested", "action", a.Action, "quantity", a.Quantity, "crypto", a.Crypto)

	req, err := NewQuickOrderRequest(a.Action, a.Quantity, a.Crypto)
	if err != nil {
		return tool.Errorf("%v", err), nil
	}

	client, out, ok := t.client()
	if !ok {
		return out, nil
	}

	order, err := client.SubmitOrder(ctx, req)
	if err != nil {
		return tool.Errorf("failed to create order: %v", err), nil
	}

	return tool.Output{Content: fmt.Sprintf(
		"Successfully created market order for %v %s. Order ID %s, status %s.",
		a.Quantity, req.Symbol, order.ID, order.Status,
	)}, nil
}

// createOrderTool places a fully-specified order (limit, stop, stop-limit,
// notional sizing, explicit time in force).
type createOrderTool struct {
	toolBase
}

func (t *createOrderTool) Name() string { return ToolCreateOrder }

func (t *createOrderTool) Description() string {
	return "Create a trading order with full control: order type (market, limit, stop, stop_limit), " +
		"quantity or notional dollar amount, time in force, and limit/stop prices where required. " +
		"symbol is a crypto pair such as 'ETH/USD'."
}

func (t *createOrderTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"symbol": {"type": "string", "description": "Trading pair, e.g. 'ETH/USD'"},
			"side": {"type": "string", "description": "'buy' or 'sell'"},
			"type": {"type": "string", "description": "'market', 'limit', 'stop' or 'stop_limit'"},
			"qty": {"type": "number", "description": "Quantity to trade (exclusive with notional)"},
			"notional": {"type": "number", "description": "Dollar amount to trade (exclusive with qty)"},
			"time_in_force": {"type": "string", "description": "Order lifetime, defaults to 'day'"},
			"limit_price": {"type": "number", "description": "Required for limit and stop_limit orders"},
			"stop_price": {"type": "number", "description": "Required for stop and stop_limit orders"}
		},
		"required": ["symbol", "side", "type"]
	}`)
}

func (t *createOrderTool) Execute(ctx context.Context, args json.RawMessage) (tool.Output, error) {
	var params OrderParams
	if err := json.Unmarshal(args, &params); err != nil {
		return tool.Output{}, fmt.Errorf("decode %s args: %w", t.Name(), err)
	}

	t.logger.Info("order requested", "symbol", params.Symbol, "type", params.Type, "side", params.Side)

	req, err := NewOrderRequest(params)
	if err != nil {
		return tool.Errorf("I couldn't create the order: %v", err), nil
	}

	client, out, ok := t.client()
	if !ok {
		return out, nil
	}

	order, err := client.SubmitOrder(ctx, req)
	if err != nil {
		return tool.Errorf("failed to create order: %v", err), nil
	}

	return tool.Output{Content: fmt.Sprintf(
		"Successfully created %s order for %s. Order ID %s, status %s.",
		req.Type, req.Symbol, order.ID, order.Status,
	)}, nil
}

// listPositionsTool returns all crypto positions, cleaned and sorted
// descending by current price.
type listPositionsTool struct {
	toolBase
}

func (t *listPositionsTool) Name() string { return ToolListPositions }

func (t *listPositionsTool) Description() string {
	return "Retrieve all open crypto positions, sorted by current price descending."
}

func (t *listPositionsTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *listPositionsTool) Execute(ctx context.Context, _ json.RawMessage) (tool.Output, error) {
	client, out, ok := t.client()
	if !ok {
		return out, nil
	}

	raw, err := client.GetAllPositions(ctx)
	if err != nil {
		return tool.Errorf("failed to get crypto positions: %v", err), nil
	}

	cleaned := CleanCryptoPositions(raw)
	t.logger.Info("crypto positions retrieved", "count", len(cleaned))

	encoded, err := json.Marshal(cleaned)
	if err != nil {
		return tool.Output{}, fmt.Errorf("encode positions: %w", err)
	}
	return tool.Output{Content: string(encoded)}, nil
}

// getPositionTool returns a single open crypto position by symbol.
type getPositionTool struct {
	toolBase
}

type symbolArgs struct {
	Symbol string `json:"symbol"`
}

func (t *getPositionTool) Name() string { return ToolGetPosition }

func (t *getPositionTool) Description() string {
	return "Get a single open crypto position by symbol, e.g. 'ETH/USD'."
}

func (t *getPositionTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"symbol": {"type": "string", "description": "Position symbol, e.g. 'ETH/USD'"}
		},
		"required": ["symbol"]
	}`)
}

func (t *getPositionTool) Execute(ctx context.Context, args json.RawMessage) (tool.Output, error) {
	var a symbolArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return tool.Output{}, fmt.Errorf("decode %s args: %w", t.Name(), err)
	}

	client, out, ok := t.client()
	if !ok {
		return out, nil
	}

	pos, err := FetchCryptoPosition(ctx, client, a.Symbol)
	if err != nil {
		switch {
		case errors.Is(err, alpaca.ErrPositionNotFound):
			return tool.Errorf("No open position found for %s.", a.Symbol), nil
		case errors.Is(err, ErrNotCrypto):
			return tool.Errorf("Asset %s is not a cryptocurrency.", a.Symbol), nil
		default:
			return tool.Errorf("failed to get position: %v", err), nil
		}
	}

	encoded, err := json.Marshal(pos)
	if err != nil {
		return tool.Output{}, fmt.Errorf("encode position: %w", err)
	}
	return tool.Output{Content: string(encoded)}, nil
}

// closePositionTool liquidates a crypto position entirely.
type closePositionTool struct {
	toolBase
}

func (t *closePositionTool) Name() string { return ToolClosePosition }

func (t *closePositionTool) Description() string {
	return "Close a crypto position completely for the given symbol."
}

func (t *closePositionTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"symbol": {"type": "string", "description": "Position symbol, e.g. 'ETH/USD'"}
		},
		"required": ["symbol"]
	}`)
}

func (t *closePositionTool) Execute(ctx context.Context, args json.RawMessage) (tool.Output, error) {
	var a symbolArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return tool.Output{}, fmt.Errorf("decode %s args: %w", t.Name(), err)
	}

	client, out, ok := t.client()
	if !ok {
		return out, nil
	}

	order, err := CloseCryptoPosition(ctx, client, a.Symbol)
	if err != nil {
		switch {
		case errors.Is(err, alpaca.ErrPositionNotFound):
			return tool.Errorf("No open position found for %s.", a.Symbol), nil
		case errors.Is(err, ErrNotCrypto):
			return tool.Errorf("Asset %s is not a cryptocurrency.", a.Symbol), nil
		default:
			return tool.Errorf("failed to close position: %v", err), nil
		}
	}

	t.logger.Info("position closed", "symbol", a.Symbol, "order_id", order.ID)
	return tool.Output{Content: fmt.Sprintf(
		"Successfully closed position for %s. Closure order %s, status %s.",
		a.Symbol, order.ID, order.Status,
	)}, nil
}
