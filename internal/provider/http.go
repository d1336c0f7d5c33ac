package provider

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"time"

	"corrlab/internal/domain"
)

// getJSON performs a rate-limited GET and returns the body of a 200 response.
func getJSON(ctx context.Context, client *http.Client, limiter *TokenBucket, url string, header http.Header) ([]byte, error) {
	if limiter != nil {
		if err := limiter.Take(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// dailyCloses keeps the last value seen on each calendar day inside r and
// returns them in date order. Values are rounded to cents.
type dailyCloses struct {
	r      domain.DateRange
	byDate map[string]timedValue
}

type timedValue struct {
	at    time.Time
	value float64
}

func newDailyCloses(r domain.DateRange) *dailyCloses {
	return &dailyCloses{r: r, byDate: make(map[string]timedValue)}
}

// add records a value observed at instant at, bucketed by the calendar day of
// at in loc.
func (d *dailyCloses) add(at time.Time, loc *time.Location, value float64) {
	local := at.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(d.r.Start) || day.After(d.r.End) {
		return
	}
	key := day.Format(domain.DateLayout)
	if prev, ok := d.byDate[key]; ok && prev.at.After(at) {
		return
	}
	d.byDate[key] = timedValue{at: at, value: value}
}

func (d *dailyCloses) observations() []domain.Observation {
	out := make([]domain.Observation, 0, len(d.byDate))
	for date, tv := range d.byDate {
		out = append(out, domain.Observation{Date: date, Value: roundCents(tv.value)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
