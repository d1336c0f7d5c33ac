package source

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"corrlab/internal/domain"
	"corrlab/internal/synthetic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type stubProvider struct {
	mu    sync.Mutex
	obs   []domain.Observation
	err   error
	delay time.Duration
	calls int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchDailyCloses(ctx context.Context, symbol string, r domain.DateRange) ([]domain.Observation, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.obs, p.err
}

type stubRecorder struct {
	mu        sync.Mutex
	fallbacks []string
	fetches   int
}

func (r *stubRecorder) RecordFallback(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks = append(r.fallbacks, source)
}

func (r *stubRecorder) RecordLiveFetch(provider string, seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches++
}

func testRange(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	r, err := domain.NewDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestResolveUnknownSourceFetchesNothing(t *testing.T) {
	equity := &stubProvider{}
	crypto := &stubProvider{}
	res := NewResolver(testTracer, equity, crypto, time.Second, nil)

	_, producer, err := res.Resolve("gold_price")
	require.Error(t, err)
	assert.Nil(t, producer)
	assert.True(t, errors.Is(err, domain.ErrUnknownSource))
	assert.Zero(t, equity.calls+crypto.calls)
}

func TestResolveWeatherUsesGenerator(t *testing.T) {
	equity := &stubProvider{}
	res := NewResolver(testTracer, equity, nil, time.Second, nil)
	r := testRange(t, "2024-01-01", "2024-01-10")

	src, producer, err := res.Resolve("weather_seoul")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceWeatherSeoul, src)

	series, err := producer(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "서울 날씨", series.Name)
	assert.Len(t, series.Observations, 10)
	assert.Equal(t, synthetic.Temperature(r), series.Observations)
	assert.Zero(t, equity.calls)
}

func TestResolveCovidUsesGenerator(t *testing.T) {
	res := NewResolver(testTracer, nil, nil, time.Second, nil)
	r := testRange(t, "2021-03-01", "2021-03-31")

	_, producer, err := res.Resolve("covid_cases")
	require.NoError(t, err)
	series, err := producer(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, synthetic.Epidemic(r), series.Observations)
}

func TestLiveSourceReturnsProviderData(t *testing.T) {
	live := []domain.Observation{{Date: "2023-01-02", Value: 2218.68}, {Date: "2023-01-03", Value: 2255.98}}
	equity := &stubProvider{obs: live}
	rec := &stubRecorder{}
	res := NewResolver(testTracer, equity, nil, time.Second, rec)

	_, producer, err := res.Resolve("kospi_index")
	require.NoError(t, err)
	series, err := producer(context.Background(), testRange(t, "2023-01-01", "2023-01-05"))
	require.NoError(t, err)

	assert.Equal(t, live, series.Observations)
	assert.Equal(t, "KOSPI 지수", series.Name)
	assert.Empty(t, rec.fallbacks)
	assert.Equal(t, 1, rec.fetches)
}

func TestLiveSourceFallsBackOnError(t *testing.T) {
	crypto := &stubProvider{err: errors.New("connection refused")}
	rec := &stubRecorder{}
	res := NewResolver(testTracer, nil, crypto, time.Second, rec)
	r := testRange(t, "2023-01-01", "2023-03-01")

	_, producer, err := res.Resolve("btc_price")
	require.NoError(t, err)
	series, err := producer(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, synthetic.CryptoWalk(r), series.Observations)
	assert.Equal(t, []string{"btc_price"}, rec.fallbacks)
	assert.Equal(t, 1, crypto.calls)
}

func TestLiveSourceFallsBackOnEmpty(t *testing.T) {
	equity := &stubProvider{obs: []domain.Observation{}}
	res := NewResolver(testTracer, equity, nil, time.Second, nil)
	r := testRange(t, "2023-01-01", "2023-01-31")

	_, producer, err := res.Resolve("kospi_index")
	require.NoError(t, err)
	series, err := producer(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, synthetic.EquityWalk(r), series.Observations)
}

func TestLiveSourceFallsBackOnTimeout(t *testing.T) {
	equity := &stubProvider{delay: time.Second}
	res := NewResolver(testTracer, equity, nil, 20*time.Millisecond, nil)
	r := testRange(t, "2023-01-01", "2023-01-31")

	_, producer, err := res.Resolve("kospi_index")
	require.NoError(t, err)

	start := time.Now()
	series, err := producer(context.Background(), r)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, synthetic.EquityWalk(r), series.Observations)
}

func TestLiveSourceWithoutProviderUsesGenerator(t *testing.T) {
	rec := &stubRecorder{}
	res := NewResolver(testTracer, nil, nil, time.Second, rec)
	r := testRange(t, "2023-01-01", "2023-01-31")

	_, producer, err := res.Resolve("btc_price")
	require.NoError(t, err)
	series, err := producer(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, synthetic.CryptoWalk(r), series.Observations)
	assert.Empty(t, rec.fallbacks)
	assert.Zero(t, rec.fetches)
}

func TestProducerHonorsCancelledContext(t *testing.T) {
	res := NewResolver(testTracer, nil, nil, time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, producer, err := res.Resolve("weather_seoul")
	require.NoError(t, err)
	_, err = producer(ctx, testRange(t, "2023-01-01", "2023-01-31"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithFallbackPassesProviderError(t *testing.T) {
	var got error
	live := func(ctx context.Context, r domain.DateRange) ([]domain.Observation, error) {
		return nil, domain.ErrProviderUnavailable
	}
	fetch := WithFallback(live, synthetic.Temperature, func(err error) { got = err })

	obs := fetch(context.Background(), testRange(t, "2024-01-01", "2024-01-03"))
	assert.Len(t, obs, 3)
	assert.ErrorIs(t, got, domain.ErrProviderUnavailable)
}

func TestLiveFetchWrapsProviderUnavailable(t *testing.T) {
	fetch := liveFetch(&stubProvider{err: errors.New("503")}, "^KS11", time.Second, nil)
	_, err := fetch(context.Background(), testRange(t, "2024-01-01", "2024-01-03"))
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)

	fetch = liveFetch(nil, "^KS11", time.Second, nil)
	_, err = fetch(context.Background(), testRange(t, "2024-01-01", "2024-01-03"))
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}
