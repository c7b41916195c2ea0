package pricefeed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-jose/go-jose/v4/json"
	"github.com/prover-network/proverstats/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const cacheKey = "token_usd_price"

// Client serves the token's USD price, reading through the injected cache
// and falling back to the upstream feed on a miss.
type Client struct {
	http   *http.Client
	url    string
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// New builds a price client. Environment:
//   - PRICE_FEED_URL: upstream JSON endpoint returning {"price": "<decimal>"}
//   - PRICE_TTL_SECONDS: cache lifetime (default 300)
func New(cache Cache, logger *zap.Logger) *Client {
	return &Client{
		http:   &http.Client{Timeout: 10 * time.Second},
		url:    utils.Env("PRICE_FEED_URL", "http://localhost:8081/price"),
		cache:  cache,
		ttl:    time.Duration(utils.EnvInt("PRICE_TTL_SECONDS", 300)) * time.Second,
		logger: logger,
	}
}

type feedResponse struct {
	Price string `json:"price"`
}

// Price returns the current USD price. A live cache entry short-circuits the
// upstream call; a cache backend failure is logged and treated as a miss so
// a flaky redis never takes the endpoint down.
func (c *Client) Price(ctx context.Context) (decimal.Decimal, error) {
	cached, ok, err := c.cache.Get(ctx, cacheKey)
	if err != nil {
		c.logger.Warn("price cache read failed, fetching upstream", zap.Error(err))
	} else if ok {
		if price, perr := decimal.NewFromString(cached); perr == nil {
			return price, nil
		}
		c.logger.Warn("discarding unparsable cached price", zap.String("value", cached))
	}

	price, err := c.fetch(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if err := c.cache.Set(ctx, cacheKey, price.String(), c.ttl); err != nil {
		c.logger.Warn("price cache write failed", zap.Error(err))
	}
	return price, nil
}

// Refresh forces an upstream fetch and repopulates the cache. The app cron
// calls this so request paths normally stay on the cached value.
func (c *Client) Refresh(ctx context.Context) error {
	price, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, cacheKey, price.String(), c.ttl)
}

func (c *Client) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Decimal{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("fetch price feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("price feed returned status %d", resp.StatusCode)
	}

	var body feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode price feed response: %w", err)
	}

	price, err := decimal.NewFromString(body.Price)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse price %q: %w", body.Price, err)
	}
	return price, nil
}
