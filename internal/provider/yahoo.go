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

const yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooProvider reads daily bars from the public Yahoo Finance chart API.
type YahooProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *TokenBucket
}

func NewYahooProvider(tracer trace.Tracer) *YahooProvider {
	return &YahooProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: yahooBaseURL,
		tracer:  tracer,
		limiter: NewTokenBucket(30, 2*time.Second),
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// FetchDailyCloses returns the daily closes of ticker over r, dated in the
// exchange's local calendar. Days without a close (holidays) are skipped.
func (p *YahooProvider) FetchDailyCloses(ctx context.Context, ticker string, r domain.DateRange) ([]domain.Observation, error) {
	ctx, span := p.tracer.Start(ctx, "yahoo.fetch-daily-closes")
	defer span.End()
	span.SetAttributes(attribute.String("ticker", ticker), attribute.String("range", r.String()))

	u := fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d",
		p.baseURL, url.PathEscape(ticker), r.Start.Unix(), r.End.AddDate(0, 0, 1).Unix())

	header := http.Header{}
	header.Set("User-Agent", "Mozilla/5.0")

	body, err := getJSON(ctx, p.client, p.limiter, u, header)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("yahoo chart for %s: %w", ticker, err)
	}

	obs, err := parseChart(body, r)
	if err != nil {
		return nil, fmt.Errorf("parse yahoo chart for %s: %w", ticker, err)
	}
	span.SetAttributes(attribute.Int("observations", len(obs)))
	return obs, nil
}

func parseChart(body []byte, r domain.DateRange) ([]domain.Observation, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid json")
	}
	if desc := gjson.GetBytes(body, "chart.error.description"); desc.String() != "" {
		return nil, fmt.Errorf("yahoo api error: %s", desc.String())
	}
	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, fmt.Errorf("no chart result")
	}

	loc := time.FixedZone("exchange", int(result.Get("meta.gmtoffset").Int()))
	timestamps := result.Get("timestamp").Array()
	closeCol := result.Get("indicators.quote.0.close").Array()

	closes := newDailyCloses(r)
	for i, ts := range timestamps {
		if i >= len(closeCol) || closeCol[i].Type != gjson.Number {
			continue
		}
		closes.add(time.Unix(ts.Int(), 0), loc, closeCol[i].Float())
	}
	return closes.observations(), nil
}
