// Package source maps data source identifiers to the functions that produce
// their series.
package source

import (
	"context"
	"time"

	"corrlab/internal/domain"
	"corrlab/internal/synthetic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	kospiTicker   = "^KS11"
	bitcoinCoinID = "bitcoin"
)

// Producer builds the series for one source over a range. It only fails when
// ctx is already done.
type Producer func(ctx context.Context, r domain.DateRange) (domain.Series, error)

type Resolver struct {
	tracer      trace.Tracer
	equity      HistoryProvider
	crypto      HistoryProvider
	liveTimeout time.Duration
	recorder    FallbackRecorder
}

// NewResolver wires live providers for the market sources. Either provider may
// be nil, in which case that source always uses synthetic data.
func NewResolver(tracer trace.Tracer, equity, crypto HistoryProvider, liveTimeout time.Duration, recorder FallbackRecorder) *Resolver {
	return &Resolver{
		tracer:      tracer,
		equity:      equity,
		crypto:      crypto,
		liveTimeout: liveTimeout,
		recorder:    recorder,
	}
}

// Resolve looks up id without fetching anything.
func (r *Resolver) Resolve(id string) (domain.Source, Producer, error) {
	src, err := domain.ParseSource(id)
	if err != nil {
		return src, nil, err
	}

	switch src {
	case domain.SourceWeatherSeoul:
		return src, r.generated(src, synthetic.Temperature), nil
	case domain.SourceKOSPIIndex:
		return src, r.live(src, r.equity, kospiTicker, synthetic.EquityWalk), nil
	case domain.SourceBTCPrice:
		return src, r.live(src, r.crypto, bitcoinCoinID, synthetic.CryptoWalk), nil
	case domain.SourceCovidCases:
		return src, r.generated(src, synthetic.Epidemic), nil
	}
	return src, nil, domain.NewUnknownSourceError(id)
}

func (r *Resolver) generated(src domain.Source, gen synthetic.Generator) Producer {
	return func(ctx context.Context, dr domain.DateRange) (domain.Series, error) {
		if err := ctx.Err(); err != nil {
			return domain.Series{}, err
		}
		_, span := r.tracer.Start(ctx, "source.generate")
		defer span.End()
		span.SetAttributes(attribute.String("source", src.ID()))

		return domain.Series{Name: src.DisplayName(), Observations: gen(dr)}, nil
	}
}

func (r *Resolver) live(src domain.Source, p HistoryProvider, symbol string, gen synthetic.Generator) Producer {
	if p == nil {
		return r.generated(src, gen)
	}
	fetch := WithFallback(liveFetch(p, symbol, r.liveTimeout, r.recorder), gen, logFallback(src, r.recorder))

	return func(ctx context.Context, dr domain.DateRange) (domain.Series, error) {
		if err := ctx.Err(); err != nil {
			return domain.Series{}, err
		}
		ctx, span := r.tracer.Start(ctx, "source.live")
		defer span.End()
		span.SetAttributes(attribute.String("source", src.ID()), attribute.String("symbol", symbol))

		return domain.Series{Name: src.DisplayName(), Observations: fetch(ctx, dr)}, nil
	}
}
