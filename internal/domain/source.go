package domain

// Source is the closed set of data sources an analysis can draw from.
type Source int

const (
	sourceUnknown Source = iota
	SourceWeatherSeoul
	SourceKOSPIIndex
	SourceBTCPrice
	SourceCovidCases
)

// AllSources lists every recognized source in display order.
var AllSources = []Source{
	SourceWeatherSeoul,
	SourceKOSPIIndex,
	SourceBTCPrice,
	SourceCovidCases,
}

// ParseSource maps a wire identifier onto a Source.
func ParseSource(id string) (Source, error) {
	switch id {
	case "weather_seoul":
		return SourceWeatherSeoul, nil
	case "kospi_index":
		return SourceKOSPIIndex, nil
	case "btc_price":
		return SourceBTCPrice, nil
	case "covid_cases":
		return SourceCovidCases, nil
	}
	return sourceUnknown, NewUnknownSourceError(id)
}

// ID returns the wire identifier.
func (s Source) ID() string {
	switch s {
	case SourceWeatherSeoul:
		return "weather_seoul"
	case SourceKOSPIIndex:
		return "kospi_index"
	case SourceBTCPrice:
		return "btc_price"
	case SourceCovidCases:
		return "covid_cases"
	}
	return ""
}

// DisplayName returns the Korean label shown to users.
func (s Source) DisplayName() string {
	switch s {
	case SourceWeatherSeoul:
		return "서울 날씨"
	case SourceKOSPIIndex:
		return "KOSPI 지수"
	case SourceBTCPrice:
		return "비트코인 가격"
	case SourceCovidCases:
		return "코로나19 확진자"
	}
	return ""
}

// HasLiveFeed reports whether the source is backed by an external market data provider.
func (s Source) HasLiveFeed() bool {
	return s == SourceKOSPIIndex || s == SourceBTCPrice
}

func (s Source) String() string {
	return s.ID()
}
