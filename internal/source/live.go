package source

import (
	"context"
	"fmt"
	"time"

	"corrlab/internal/domain"
	"corrlab/internal/synthetic"

	"github.com/rs/zerolog/log"
)

// HistoryProvider fetches daily closing values for a provider-specific symbol.
type HistoryProvider interface {
	Name() string
	FetchDailyCloses(ctx context.Context, symbol string, r domain.DateRange) ([]domain.Observation, error)
}

// FallbackRecorder is notified whenever live data is replaced by synthetic data.
type FallbackRecorder interface {
	RecordFallback(source string)
	RecordLiveFetch(provider string, seconds float64)
}

// LiveFetch is one attempt at real data. A failed attempt always wraps
// domain.ErrProviderUnavailable.
type LiveFetch func(ctx context.Context, r domain.DateRange) ([]domain.Observation, error)

// liveFetch binds a provider and symbol into a single, time-boxed attempt.
// An empty result counts as a failure.
func liveFetch(p HistoryProvider, symbol string, timeout time.Duration, rec FallbackRecorder) LiveFetch {
	return func(ctx context.Context, r domain.DateRange) ([]domain.Observation, error) {
		if p == nil {
			return nil, fmt.Errorf("%w: live data disabled", domain.ErrProviderUnavailable)
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		start := time.Now()
		obs, err := p.FetchDailyCloses(ctx, symbol, r)
		if rec != nil {
			rec.RecordLiveFetch(p.Name(), time.Since(start).Seconds())
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrProviderUnavailable, p.Name(), symbol, err)
		}
		if len(obs) == 0 {
			return nil, fmt.Errorf("%w: %s returned no data for %s over %s", domain.ErrProviderUnavailable, p.Name(), symbol, r)
		}
		return obs, nil
	}
}

// WithFallback substitutes gen's output whenever live fails. The returned
// function never fails.
func WithFallback(live LiveFetch, gen synthetic.Generator, onFallback func(error)) func(context.Context, domain.DateRange) []domain.Observation {
	return func(ctx context.Context, r domain.DateRange) []domain.Observation {
		obs, err := live(ctx, r)
		if err == nil {
			return obs
		}
		if onFallback != nil {
			onFallback(err)
		}
		return gen(r)
	}
}

func logFallback(src domain.Source, rec FallbackRecorder) func(error) {
	return func(err error) {
		log.Warn().Err(err).Str("source", src.ID()).Msg("live fetch failed, using synthetic series")
		if rec != nil {
			rec.RecordFallback(src.ID())
		}
	}
}
