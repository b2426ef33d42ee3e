package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
)

const (
	coingeckoAPI = "https://api.coingecko.com/api/v3/simple/price?ids=usd-coin&vs_currencies=ngn"

	// coin and currency keys in the CoinGecko price response
	usdcID      = "usd-coin"
	ngnCurrency = "ngn"

	// a fresh rate is served from memory for this long
	rateCacheTTL = time.Minute
)

var ErrRateUnavailable = errors.New("exchange rate unavailable")

// CoinGeckoClient client for CoinGecko API
type CoinGeckoClient struct {
	url     string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter

	mu        sync.Mutex
	rate      decimal.Decimal
	fetchedAt time.Time
	now       func() time.Time
}

// NewCoinGeckoClient creates a new CoinGecko client. An empty url uses the
// public endpoint.
func NewCoinGeckoClient(url string) *CoinGeckoClient {
	if url == "" {
		url = coingeckoAPI
	}
	return &CoinGeckoClient{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		cb:      newCircuitBreaker("coingecko"),
		limiter: ratelimit.New(5),
		now:     time.Now,
	}
}

// PriceResponse response from CoinGecko API, coin id -> currency -> price
type PriceResponse map[string]map[string]decimal.Decimal

// GetUSDCtoNGNrate returns how many naira one USDC is worth.
// A rate fetched less than a minute ago is reused.
func (c *CoinGeckoClient) GetUSDCtoNGNrate(ctx context.Context) (decimal.Decimal, error) {
	c.mu.Lock()
	if !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < rateCacheTTL {
		rate := c.rate
		c.mu.Unlock()
		return rate, nil
	}
	c.mu.Unlock()

	res, err := c.cb.Execute(func() (interface{}, error) {
		c.limiter.Take()
		return c.fetch(ctx)
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}

	rate := res.(decimal.Decimal)
	c.mu.Lock()
	c.rate = rate
	c.fetchedAt = c.now()
	c.mu.Unlock()
	return rate, nil
}

func (c *CoinGeckoClient) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("failed to get rate: status %d", resp.StatusCode)
	}

	var priceResp PriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate: %w", err)
	}

	rate, ok := priceResp[usdcID][ngnCurrency]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("no %s price for %s", strings.ToUpper(ngnCurrency), usdcID)
	}
	return rate, nil
}
