package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	mem "ltctrack/pkg/memcache"
	"ltctrack/pkg/utils"
)

const priceSymbol = "LTCUSDT"

// PriceSource fetches the LTC/USDT daily close for one day. nil means the
// exchange has no candle for that day.
type PriceSource interface {
	ClosePrice(ctx context.Context, day utils.Day) (*float64, error)
}

type PriceServiceInterface interface {
	PriceAt(ctx context.Context, day utils.Day) (*float64, error)
}

// -------------- Binance klines client ---------------

type BinanceClient struct {
	HTTP    *http.Client
	BaseURL string
}

func NewBinanceClient(baseURL string, timeout time.Duration) *BinanceClient {
	return &BinanceClient{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: baseURL,
	}
}

func (c *BinanceClient) ClosePrice(ctx context.Context, day utils.Day) (*float64, error) {
	startMs := day.Time().UnixMilli()

	u, err := url.Parse(c.BaseURL + "/api/v3/klines")
	if err != nil {
		return nil, fmt.Errorf("binance url: %w", err)
	}
	q := url.Values{}
	q.Set("symbol", priceSymbol)
	q.Set("interval", "1d")
	q.Set("startTime", strconv.FormatInt(startMs, 10))
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("binance request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: binance http error: %v", utils.ErrUpstreamError, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: binance bad status: %s", utils.ErrUpstreamError, resp.Status)
	}

	// Each kline is [openTime, open, high, low, close, volume, ...].
	var klines [][]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&klines); err != nil {
		return nil, fmt.Errorf("%w: binance decode: %v", utils.ErrUpstreamError, err)
	}
	if len(klines) == 0 || len(klines[0]) < 5 {
		return nil, nil
	}

	var openTime int64
	if err := json.Unmarshal(klines[0][0], &openTime); err != nil || openTime != startMs {
		// Binance answers with the next available candle when the day has none.
		return nil, nil
	}

	var closeStr string
	if err := json.Unmarshal(klines[0][4], &closeStr); err != nil {
		return nil, fmt.Errorf("%w: binance close price: %v", utils.ErrUpstreamError, err)
	}
	price, err := strconv.ParseFloat(closeStr, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: binance close price: %v", utils.ErrUpstreamError, err)
	}
	return &price, nil
}

// -------------- cached lookup ---------------

// PriceService answers from the cache first; concurrent misses for the same
// day share one upstream call. "No price" is cached too, failures are not.
type PriceService struct {
	source PriceSource
	cache  mem.PriceStore
	ttl    time.Duration
	group  singleflight.Group
	log    *zap.Logger
}

func NewPriceService(source PriceSource, cache mem.PriceStore, ttl time.Duration, log *zap.Logger) *PriceService {
	return &PriceService{
		source: source,
		cache:  cache,
		ttl:    ttl,
		log:    log.Named("prices"),
	}
}

func priceCacheKey(day utils.Day) string {
	return "ltcusdt-" + day.String()
}

func (p *PriceService) PriceAt(ctx context.Context, day utils.Day) (*float64, error) {
	key := priceCacheKey(day)
	if price, ok := p.cache.Get(key); ok {
		return price, nil
	}

	v, err, _ := p.group.Do(key, func() (interface{}, error) {
		if price, ok := p.cache.Get(key); ok {
			return price, nil
		}
		price, err := p.source.ClosePrice(ctx, day)
		if err != nil {
			return nil, err
		}
		p.cache.Set(key, price, p.ttl)
		return price, nil
	})
	if err != nil {
		p.log.Warn("price lookup failed", zap.String("day", day.String()), zap.Error(err))
		return nil, err
	}
	return v.(*float64), nil
}
