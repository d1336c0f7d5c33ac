package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-date format used on the wire and in every Observation.
const DateLayout = "2006-01-02"

// MaxRangeDays is the longest span an analysis may cover.
const MaxRangeDays = 365

// Observation is one daily value of a series.
type Observation struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Series is a date-ascending run of observations tagged with the name of the
// source that produced it.
type Series struct {
	Name         string        `json:"name"`
	Observations []Observation `json:"data"`
}

func (s Series) Len() int {
	return len(s.Observations)
}

// ByDate indexes the series by date. Later duplicates win.
func (s Series) ByDate() map[string]float64 {
	m := make(map[string]float64, len(s.Observations))
	for _, o := range s.Observations {
		m[o.Date] = o.Value
	}
	return m
}

// DateRange is an inclusive span of calendar days, both ends at UTC midnight.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDate parses a YYYY-MM-DD string as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// NewDateRange builds a range from two YYYY-MM-DD strings without checking order or span.
func NewDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{Start: s, End: e}, nil
}

// Days is the number of whole days between Start and End.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start) / (24 * time.Hour))
}

// Dates lists every calendar day from Start through End inclusive.
func (r DateRange) Dates() []time.Time {
	if r.End.Before(r.Start) {
		return nil
	}
	out := make([]time.Time, 0, r.Days()+1)
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// AnalysisResult is the outcome of correlating two sources over one range.
type AnalysisResult struct {
	Correlation float64
	Series1     Series
	Series2     Series
	Name1       string
	Name2       string
}
