package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"corrlab/internal/domain"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoProvider fetches historical crypto prices from the CoinGecko API.
type CoinGeckoProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	limiter *TokenBucket
}

// NewCoinGeckoProvider creates a provider limited to 8 requests per minute,
// the free-tier budget. apiKey is optional and sent as the demo key header.
func NewCoinGeckoProvider(tracer trace.Tracer, apiKey string) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: coingeckoBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
		limiter: NewTokenBucket(8, 7500*time.Millisecond),
	}
}

func (p *CoinGeckoProvider) Name() string { return "coingecko" }

// FetchDailyCloses returns one USD close per UTC day for coinID over r. The
// close is the last price point CoinGecko reports for that day.
func (p *CoinGeckoProvider) FetchDailyCloses(ctx context.Context, coinID string, r domain.DateRange) ([]domain.Observation, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch-daily-closes")
	defer span.End()
	span.SetAttributes(attribute.String("coin_id", coinID), attribute.String("range", r.String()))

	u := fmt.Sprintf("%s/coins/%s/market_chart/range?vs_currency=usd&from=%d&to=%d",
		p.baseURL, url.PathEscape(coinID), r.Start.Unix(), r.End.AddDate(0, 0, 1).Unix())

	header := http.Header{}
	if p.apiKey != "" {
		header.Set("x-cg-demo-api-key", p.apiKey)
	}

	body, err := getJSON(ctx, p.client, p.limiter, u, header)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("coingecko market chart for %s: %w", coinID, err)
	}

	obs, err := parseMarketChart(body, r)
	if err != nil {
		return nil, fmt.Errorf("parse coingecko market chart for %s: %w", coinID, err)
	}
	span.SetAttributes(attribute.Int("observations", len(obs)))
	return obs, nil
}

// parseMarketChart reads {"prices": [[ms, price], ...]}.
func parseMarketChart(body []byte, r domain.DateRange) ([]domain.Observation, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid json")
	}
	prices := gjson.GetBytes(body, "prices")
	if !prices.IsArray() {
		return nil, fmt.Errorf("missing prices array")
	}

	closes := newDailyCloses(r)
	for _, pt := range prices.Array() {
		pair := pt.Array()
		if len(pair) < 2 || pair[1].Type != gjson.Number {
			continue
		}
		closes.add(time.UnixMilli(pair[0].Int()), time.UTC, pair[1].Float())
	}
	return closes.observations(), nil
}
