// Package correlation joins two series on their dates and measures their
// linear association.
package correlation

import (
	"math"
	"sort"

	"corrlab/internal/domain"

	"gonum.org/v1/gonum/stat"
)

// MinOverlap is the fewest shared dates a correlation can be computed from.
const MinOverlap = 2

// Aligned holds the inner join of two series, ordered by date.
type Aligned struct {
	Dates []string
	X     []float64
	Y     []float64
}

func (a Aligned) Len() int {
	return len(a.Dates)
}

// Align keeps only the dates present in both series.
func Align(a, b domain.Series) Aligned {
	left := a.ByDate()
	right := b.ByDate()

	dates := make([]string, 0, min(len(left), len(right)))
	for d := range left {
		if _, ok := right[d]; ok {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)

	out := Aligned{
		Dates: dates,
		X:     make([]float64, len(dates)),
		Y:     make([]float64, len(dates)),
	}
	for i, d := range dates {
		out.X[i] = left[d]
		out.Y[i] = right[d]
	}
	return out
}

// Correlate returns the Pearson correlation coefficient of the two series over
// their shared dates.
func Correlate(a, b domain.Series) (float64, error) {
	return pearson(Align(a, b))
}

func pearson(al Aligned) (float64, error) {
	if al.Len() < MinOverlap {
		return 0, domain.NewInsufficientOverlapError()
	}
	r := stat.Correlation(al.X, al.Y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, domain.NewDegenerateCorrelationError()
	}
	// Rounding can push a perfect fit just past the bound.
	return math.Max(-1, math.Min(1, r)), nil
}

// Summary bundles the statistics the commentary payload is built from.
type Summary struct {
	N     int     `json:"n"`
	R     float64 `json:"r"`
	Mean1 float64 `json:"mean1"`
	Mean2 float64 `json:"mean2"`
	Std1  float64 `json:"std1"`
	Std2  float64 `json:"std2"`
}

// Summarize correlates the series and describes both aligned columns.
func Summarize(a, b domain.Series) (Summary, error) {
	al := Align(a, b)
	r, err := pearson(al)
	if err != nil {
		return Summary{}, err
	}
	mean1, std1 := stat.MeanStdDev(al.X, nil)
	mean2, std2 := stat.MeanStdDev(al.Y, nil)
	return Summary{
		N:     al.Len(),
		R:     r,
		Mean1: mean1,
		Mean2: mean2,
		Std1:  std1,
		Std2:  std2,
	}, nil
}
