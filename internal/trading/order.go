// Package trading validates and normalizes order parameters and cleans up
// position records before and after they cross the brokerage boundary.
package trading

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jondoescoding/kryptt/internal/alpaca"
)

// QuoteCurrency is the fixed quote side of every trading pair the
// simplified order path produces.
const QuoteCurrency = "USD"

// Side is the direction of an order.
type Side string

// Side values.
const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderType is the kind of order being placed.
type OrderType string

// OrderType values.
const (
	OrderTypeMarket    OrderType = "market"
	OrderTypeLimit     OrderType = "limit"
	OrderTypeStop      OrderType = "stop"
	OrderTypeStopLimit OrderType = "stop_limit"
)

// TimeInForce controls how long an order stays active.
type TimeInForce string

// TimeInForce values.
const (
	TimeInForceDay TimeInForce = "day"
	TimeInForceGTC TimeInForce = "gtc"
	TimeInForceOPG TimeInForce = "opg"
	TimeInForceCLS TimeInForce = "cls"
	TimeInForceIOC TimeInForce = "ioc"
	TimeInForceFOK TimeInForce = "fok"
)

// ParseSide normalizes a side string case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	default:
		return "", fmt.Errorf("%w: invalid side %q, must be 'buy' or 'sell'", ErrInvalidParameter, s)
	}
}

// ParseOrderType normalizes an order type case-insensitively.
// Both "stop_limit" and "stop-limit" spellings are accepted.
func ParseOrderType(s string) (OrderType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "market":
		return OrderTypeMarket, nil
	case "limit":
		return OrderTypeLimit, nil
	case "stop":
		return OrderTypeStop, nil
	case "stop_limit", "stop-limit":
		return OrderTypeStopLimit, nil
	default:
		return "", fmt.Errorf("%w: invalid order type %q, must be one of market, limit, stop, stop_limit",
			ErrInvalidParameter, s)
	}
}

// ParseTimeInForce normalizes a time-in-force string case-insensitively.
func ParseTimeInForce(s string) (TimeInForce, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day":
		return TimeInForceDay, nil
	case "gtc":
		return TimeInForceGTC, nil
	case "opg":
		return TimeInForceOPG, nil
	case "cls":
		return TimeInForceCLS, nil
	case "ioc":
		return TimeInForceIOC, nil
	case "fok":
		return TimeInForceFOK, nil
	default:
		return "", fmt.Errorf("%w: invalid time in force %q", ErrInvalidParameter, s)
	}
}

// QuickOrderSymbol builds a trading pair from a bare crypto code,
// e.g. "eth" -> "ETH/USD".
func QuickOrderSymbol(base string) string {
	return strings.ToUpper(strings.TrimSpace(base)) + "/" + QuoteCurrency
}

// OrderParams is a loosely-typed order as received from a chat tool call
// or a structured caller, before validation.
type OrderParams struct {
	Symbol      string   `json:"symbol"`
	Side        string   `json:"side"`
	Type        string   `json:"type"`
	Qty         *float64 `json:"qty,omitempty"`
	Notional    *float64 `json:"notional,omitempty"`
	TimeInForce string   `json:"time_in_force,omitempty"`
	LimitPrice  *float64 `json:"limit_price,omitempty"`
	StopPrice   *float64 `json:"stop_price,omitempty"`
}

// NewOrderRequest validates p and normalizes it into a brokerage order
// request. All failures wrap ErrInvalidParameter with a message fit to
// show the user.
func NewOrderRequest(p OrderParams) (alpaca.OrderRequest, error) {
	if strings.TrimSpace(p.Symbol) == "" {
		return alpaca.OrderRequest{}, fmt.Errorf("%w: symbol is required", ErrInvalidParameter)
	}

	side, err := ParseSide(p.Side)
	if err != nil {
		return alpaca.OrderRequest{}, err
	}

	orderType, err := ParseOrderType(p.Type)
	if err != nil {
		return alpaca.OrderRequest{}, err
	}

	tifRaw := p.TimeInForce
	if tifRaw == "" {
		tifRaw = string(TimeInForceDay)
	}
	tif, err := ParseTimeInForce(tifRaw)
	if err != nil {
		return alpaca.OrderRequest{}, err
	}

	switch {
	case p.Qty == nil && p.Notional == nil:
		return alpaca.OrderRequest{}, fmt.Errorf("%w: either quantity or notional amount must be provided",
			ErrInvalidParameter)
	case p.Qty != nil && p.Notional != nil:
		return alpaca.OrderRequest{}, fmt.Errorf("%w: cannot specify both quantity and notional amount",
			ErrInvalidParameter)
	case p.Qty != nil && *p.Qty <= 0:
		return alpaca.OrderRequest{}, fmt.Errorf("%w: quantity must be greater than 0", ErrInvalidParameter)
	case p.Notional != nil && *p.Notional <= 0:
		return alpaca.OrderRequest{}, fmt.Errorf("%w: notional amount must be greater than 0", ErrInvalidParameter)
	}

	needsLimit := orderType == OrderTypeLimit || orderType == OrderTypeStopLimit
	needsStop := orderType == OrderTypeStop || orderType == OrderTypeStopLimit
	if needsLimit && p.LimitPrice == nil {
		return alpaca.OrderRequest{}, fmt.Errorf("%w: %s orders require a limit price", ErrInvalidParameter, orderType)
	}
	if needsStop && p.StopPrice == nil {
		return alpaca.OrderRequest{}, fmt.Errorf("%w: %s orders require a stop price", ErrInvalidParameter, orderType)
	}

	req := alpaca.OrderRequest{
		Symbol:      strings.TrimSpace(p.Symbol),
		Side:        string(side),
		Type:        string(orderType),
		TimeInForce: string(tif),
	}
	if p.Qty != nil {
		req.Qty = formatAmount(*p.Qty)
	}
	if p.Notional != nil {
		req.Notional = formatAmount(*p.Notional)
	}
	if needsLimit {
		req.LimitPrice = formatAmount(*p.LimitPrice)
	}
	if needsStop {
		req.StopPrice = formatAmount(*p.StopPrice)
	}
	return req, nil
}

// NewQuickOrderRequest validates the simplified path: a bare crypto code,
// a side, and a quantity become a GTC market order on the USD pair.
func NewQuickOrderRequest(action string, quantity float64, crypto string) (alpaca.OrderRequest, error) {
	side, err := ParseSide(action)
	if err != nil {
		return alpaca.OrderRequest{}, err
	}
	if quantity <= 0 {
		return alpaca.OrderRequest{}, fmt.Errorf("%w: quantity must be greater than 0", ErrInvalidParameter)
	}
	if strings.TrimSpace(crypto) == "" {
		return alpaca.OrderRequest{}, fmt.Errorf("%w: crypto symbol is required", ErrInvalidParameter)
	}

	return alpaca.OrderRequest{
		Symbol:      QuickOrderSymbol(crypto),
		Qty:         formatAmount(quantity),
		Side:        string(side),
		Type:        string(OrderTypeMarket),
		TimeInForce: string(TimeInForceGTC),
	}, nil
}

// formatAmount renders a quantity or price the way the brokerage API
// expects: a plain decimal string without exponent notation.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
