package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"shop-api/internal/domain"
)

// Client fetches EUR-based exchange rates from a Frankfurter-compatible API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Rate struct {
	Base   string  `json:"base"`
	Target string  `json:"target"`
	Rate   float64 `json:"rate"`
	Date   string  `json:"date"`
}

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Latest(ctx context.Context, target string) (*Rate, error) {
	upper := strings.ToUpper(strings.TrimSpace(target))
	if !currencyRe.MatchString(upper) {
		return nil, fmt.Errorf("%w: currency code must be 3 letters (e.g. USD, GBP, JPY)", domain.ErrValidation)
	}

	endpoint := fmt.Sprintf("%s/latest?from=EUR&to=%s", c.baseURL, upper)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates API returned status %d", resp.StatusCode)
	}

	var raw struct {
		Date  string             `json:"date"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	rate, ok := raw.Rates[upper]
	if !ok {
		return nil, fmt.Errorf("currency %s not supported by the rates API", upper)
	}

	return &Rate{Base: "EUR", Target: upper, Rate: rate, Date: raw.Date}, nil
}
