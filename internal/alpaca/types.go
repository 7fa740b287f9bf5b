package alpaca

// Account is the trading account snapshot returned by GET /account.
type Account struct {
	ID                        string `json:"id"`
	AccountNumber             string `json:"account_number"`
	Status                    string `json:"status"`
	CryptoStatus              string `json:"crypto_status,omitempty"`
	Currency                  string `json:"currency"`
	BuyingPower               string `json:"buying_power"`
	RegTBuyingPower           string `json:"regt_buying_power"`
	DaytradingBuyingPower     string `json:"daytrading_buying_power"`
	NonMarginableBuyingPower  string `json:"non_marginable_buying_power,omitempty"`
	Cash                      string `json:"cash"`
	PortfolioValue            string `json:"portfolio_value"`
	PatternDayTrader          bool   `json:"pattern_day_trader"`
	TradingBlocked            bool   `json:"trading_blocked"`
	TransfersBlocked          bool   `json:"transfers_blocked"`
	AccountBlocked            bool   `json:"account_blocked"`
	CreatedAt                 string `json:"created_at"`
	TradeSuspendedByUser      bool   `json:"trade_suspended_by_user"`
	Multiplier                string `json:"multiplier"`
	ShortingEnabled           bool   `json:"shorting_enabled"`
	Equity                    string `json:"equity"`
	LastEquity                string `json:"last_equity"`
	LongMarketValue           string `json:"long_market_value"`
	ShortMarketValue          string `json:"short_market_value"`
	InitialMargin             string `json:"initial_margin"`
	MaintenanceMargin         string `json:"maintenance_margin"`
	LastMaintenanceMargin     string `json:"last_maintenance_margin"`
	SMA                       string `json:"sma"`
	DaytradeCount             int    `json:"daytrade_count"`
}

// Asset is a tradable instrument as reported by GET /assets.
type Asset struct {
	ID             string `json:"id"`
	Class          string `json:"class"`
	Exchange       string `json:"exchange"`
	Symbol         string `json:"symbol"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	Tradable       bool   `json:"tradable"`
	MinOrderSize   string `json:"min_order_size,omitempty"`
	PriceIncrement string `json:"price_increment,omitempty"`
}

// Position is a raw open position as reported upstream. Numeric fields the
// exchange may omit are pointers so absence survives decoding; cleanup
// happens in the trading package.
type Position struct {
	AssetID                string  `json:"asset_id"`
	Symbol                 string  `json:"symbol"`
	Exchange               string  `json:"exchange"`
	AssetClass             string  `json:"asset_class"`
	AssetMarginable        bool    `json:"asset_marginable"`
	AvgEntryPrice          string  `json:"avg_entry_price"`
	Qty                    string  `json:"qty"`
	Side                   string  `json:"side"`
	CostBasis              string  `json:"cost_basis"`
	MarketValue            *string `json:"market_value"`
	UnrealizedPL           *string `json:"unrealized_pl"`
	UnrealizedPLPC         *string `json:"unrealized_plpc"`
	UnrealizedIntradayPL   *string `json:"unrealized_intraday_pl"`
	UnrealizedIntradayPLPC *string `json:"unrealized_intraday_plpc"`
	CurrentPrice           *string `json:"current_price"`
	LastdayPrice           *string `json:"lastday_price"`
	ChangeToday            *string `json:"change_today"`
	SwapRate               *string `json:"swap_rate"`
	AvgEntrySwapRate       *string `json:"avg_entry_swap_rate"`
	QtyAvailable           *string `json:"qty_available"`
}

// Order is the brokerage's view of a submitted or closed order.
type Order struct {
	ID            string `json:"id"`
	ClientOrderID string `json:"client_order_id"`
	Symbol        string `json:"symbol"`
	Qty           string `json:"qty,omitempty"`
	Notional      string `json:"notional,omitempty"`
	FilledQty     string `json:"filled_qty,omitempty"`
	Side          string `json:"side"`
	Type          string `json:"type"`
	TimeInForce   string `json:"time_in_force"`
	LimitPrice    string `json:"limit_price,omitempty"`
	StopPrice     string `json:"stop_price,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	SubmittedAt   string `json:"submitted_at,omitempty"`
}

// OrderRequest is the wire shape for POST /orders. Amount and price fields
// are decimal strings per the brokerage API.
type OrderRequest struct {
	Symbol      string `json:"symbol"`
	Qty         string `json:"qty,omitempty"`
	Notional    string `json:"notional,omitempty"`
	Side        string `json:"side"`
	Type        string `json:"type"`
	TimeInForce string `json:"time_in_force"`
	LimitPrice  string `json:"limit_price,omitempty"`
	StopPrice   string `json:"stop_price,omitempty"`
}
