// Package alpaca is a minimal typed client for the Alpaca trading REST API,
// covering only the operations this service forwards: account and asset
// queries, position management, and order submission.
package alpaca

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Header names for API authentication.
const (
	headerAPIKey    = "APCA-API-KEY-ID"
	headerAPISecret = "APCA-API-SECRET-KEY"
)

// defaultHTTPTimeout bounds a single brokerage call. There is no retry
// loop; a failed call propagates to the handler.
const defaultHTTPTimeout = 30 * time.Second

// Client talks to one brokerage endpoint with one credential pair.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// NewClient creates a Client for the given endpoint. An empty endpoint
// falls back to the paper-trading URL the credential store defaults to.
func NewClient(apiKey, apiSecret, endpoint string) *Client {
	if endpoint == "" {
		endpoint = "https://paper-api.alpaca.markets/v2"
	}
	return &Client{
		baseURL:    strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// GetAccount returns the trading account snapshot.
func (c *Client) GetAccount(ctx context.Context) (Account, error) {
	var acct Account
	err := c.do(ctx, http.MethodGet, "/account", nil, nil, &acct)
	return acct, err
}

// GetAssets returns assets filtered by status and asset class.
// Empty filter values are omitted from the query.
func (c *Client) GetAssets(ctx context.Context, status, assetClass string) ([]Asset, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if assetClass != "" {
		query.Set("asset_class", assetClass)
	}

	var assets []Asset
	err := c.do(ctx, http.MethodGet, "/assets", query, nil, &assets)
	return assets, err
}

// GetAllPositions returns every open position on the account.
func (c *Client) GetAllPositions(ctx context.Context) ([]Position, error) {
	var positions []Position
	err := c.do(ctx, http.MethodGet, "/positions", nil, nil, &positions)
	return positions, err
}

// GetOpenPosition returns the open position for a symbol or asset ID.
// A position that does not exist upstream yields ErrPositionNotFound.
func (c *Client) GetOpenPosition(ctx context.Context, symbol string) (Position, error) {
	var pos Position
	err := c.do(ctx, http.MethodGet, "/positions/"+url.PathEscape(symbol), nil, nil, &pos)
	if err != nil {
		if isPositionNotFound(err) {
			return Position{}, fmt.Errorf("%w: %s", ErrPositionNotFound, symbol)
		}
		return Position{}, err
	}
	return pos, nil
}

// ClosePosition liquidates the entire position for a symbol and returns
// the resulting order.
func (c *Client) ClosePosition(ctx context.Context, symbol string) (Order, error) {
	var order Order
	err := c.do(ctx, http.MethodDelete, "/positions/"+url.PathEscape(symbol), nil, nil, &order)
	if err != nil {
		if isPositionNotFound(err) {
			return Order{}, fmt.Errorf("%w: %s", ErrPositionNotFound, symbol)
		}
		return Order{}, err
	}
	return order, nil
}

// SubmitOrder places a new order.
func (c *Client) SubmitOrder(ctx context.Context, req OrderRequest) (Order, error) {
	var order Order
	err := c.do(ctx, http.MethodPost, "/orders", nil, req, &order)
	return order, err
}

// do executes one API request. body is JSON-encoded when non-nil; a 2xx
// response is decoded into out, anything else into *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("alpaca: encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("alpaca: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerAPISecret, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("alpaca: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if readErr == nil {
			// Ignore decode failures; the status code alone is still useful.
			_ = json.Unmarshal(raw, apiErr)
			if apiErr.Message == "" {
				apiErr.Message = strings.TrimSpace(string(raw))
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("alpaca: decode response: %w", err)
	}
	return nil
}
