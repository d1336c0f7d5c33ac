// Package synthetic produces deterministic daily series used when no live
// data exists for a source or the live provider cannot serve a request.
//
// Every generator builds its own seeded stream on each call, so output depends
// only on the requested range.
package synthetic

import (
	"math"
	"math/rand/v2"
	"time"

	"corrlab/internal/domain"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	TemperatureSeed uint64 = 42
	EpidemicSeed    uint64 = 123
	EquitySeed      uint64 = 456
	CryptoSeed      uint64 = 789
)

// Generator yields one observation per calendar day of the range.
type Generator func(r domain.DateRange) []domain.Observation

var epidemicEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func newStream(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

// Temperature models Seoul daily mean temperature as a yearly sinusoid plus Gaussian noise.
func Temperature(r domain.DateRange) []domain.Observation {
	const (
		baseTemp  = 15.0
		amplitude = 10.0
	)
	noise := distuv.Normal{Mu: 0, Sigma: 3, Src: newStream(TemperatureSeed)}

	dates := r.Dates()
	out := make([]domain.Observation, 0, len(dates))
	for _, d := range dates {
		seasonal := baseTemp + amplitude*math.Sin(2*math.Pi*float64(d.YearDay())/365)
		out = append(out, domain.Observation{
			Date:  d.Format(domain.DateLayout),
			Value: round2(seasonal + noise.Rand()),
		})
	}
	return out
}

// EquityWalk is a geometric random walk shaped like the KOSPI index.
func EquityWalk(r domain.DateRange) []domain.Observation {
	return randomWalk(r, walkParams{seed: EquitySeed, start: 2500, floor: 1000, drift: 0.001, vol: 0.02})
}

// CryptoWalk is a geometric random walk shaped like the BTC/USD price.
func CryptoWalk(r domain.DateRange) []domain.Observation {
	return randomWalk(r, walkParams{seed: CryptoSeed, start: 45000, floor: 10000, drift: 0.002, vol: 0.05})
}

type walkParams struct {
	seed  uint64
	start float64
	floor float64
	drift float64
	vol   float64
}

// randomWalk steps before emitting, so the first observation already carries one draw.
func randomWalk(r domain.DateRange, p walkParams) []domain.Observation {
	step := distuv.Normal{Mu: p.drift, Sigma: p.vol, Src: newStream(p.seed)}

	dates := r.Dates()
	out := make([]domain.Observation, 0, len(dates))
	price := p.start
	for _, d := range dates {
		price = math.Max(p.floor, price*(1+step.Rand()))
		out = append(out, domain.Observation{
			Date:  d.Format(domain.DateLayout),
			Value: round2(price),
		})
	}
	return out
}

// Epidemic approximates daily confirmed cases as a damped wave anchored at
// 2020-01-01 with Poisson noise.
func Epidemic(r domain.DateRange) []domain.Observation {
	noise := distuv.Poisson{Lambda: 50, Src: newStream(EpidemicSeed)}

	dates := r.Dates()
	out := make([]domain.Observation, 0, len(dates))
	for _, d := range dates {
		offset := d.Sub(epidemicEpoch).Hours() / 24
		wave := 1000 + 800*math.Sin(offset/45)*math.Exp(-offset/500)
		cases := math.Max(0, math.Round(wave+noise.Rand()))
		out = append(out, domain.Observation{
			Date:  d.Format(domain.DateLayout),
			Value: cases,
		})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
