// Package prices fetches and indexes daily close-price series.
package prices

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PricePoint is one trading day's data from the price service.
type PricePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Open  float64 `json:"open"`
	Close float64 `json:"close"`
}

// Client talks to the price service. The network fallback lives here, not
// in the core pipeline: a bounded number of attempts with a fixed pause.
type Client struct {
	baseURL    string
	maxRetries int
	httpClient *http.Client
}

// NewClient builds a price-service client. maxRetries <= 0 means a single
// attempt.
func NewClient(baseURL string, maxRetries int) *Client {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	return &Client{
		baseURL:    baseURL,
		maxRetries: maxRetries,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch downloads the close-price series for a ticker over a date range.
// An empty series from the service counts as a failed attempt.
func (c *Client) Fetch(ticker string, start, end time.Time) (*Series, error) {
	payload, err := json.Marshal(map[string]string{
		"ticker":     ticker,
		"start_date": start.Format("2006-01-02"),
		"end_date":   end.Format("2006-01-02"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode price request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		series, err := c.fetchOnce(payload)
		if err == nil {
			return series, nil
		}
		lastErr = err
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("all %d attempts failed for %s: %w", c.maxRetries, ticker, lastErr)
}

func (c *Client) fetchOnce(payload []byte) (*Series, error) {
	resp, err := c.httpClient.Post(c.baseURL+"/stock_data", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("price request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price service returned %d", resp.StatusCode)
	}

	var points []PricePoint
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("price service returned empty series")
	}
	return NewSeries(points)
}
