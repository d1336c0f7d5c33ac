package commentary

import (
	"fmt"
	"strings"
)

const maxBullets = 3

// FallbackText suggests follow-up analyses from the sample size and the kind
// of sources involved.
func FallbackText(p Payload) string {
	var suggestions []string

	switch {
	case p.N < 30:
		suggestions = append(suggestions, "표본 크기가 작아 더 많은 데이터 수집이 필요할 가능성이 있습니다.")
	case p.N < 100:
		suggestions = append(suggestions, "구간별 안정성 검증을 위한 부분 샘플 분석을 고려해볼 수 있습니다.")
	default:
		suggestions = append(suggestions, "계절성이나 구간별 민감도 분석을 통한 세부 검증이 가능합니다.")
	}

	if mentions(p, "날씨") {
		suggestions = append(suggestions, "기상 데이터의 계절성 영향을 고려한 롤링 윈도우 분석을 검토해보세요.")
	}
	if mentions(p, "주가", "지수") {
		suggestions = append(suggestions, "금융 데이터의 변동성을 고려해 로그 변환 후 재분석이 권장됩니다.")
	}
	suggestions = append(suggestions, closingSentence)

	if len(suggestions) > maxBullets {
		suggestions = suggestions[:maxBullets]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s%s %s 간의 관계 해석을 보완하기 위한 추가 분석 관점을 제안합니다.",
		p.Source1, Particle(p.Source1, "과", "와"), p.Source2))
	for _, s := range suggestions {
		sb.WriteString("\n- ")
		sb.WriteString(s)
	}
	return sb.String()
}

func mentions(p Payload, words ...string) bool {
	for _, w := range words {
		if strings.Contains(p.Source1, w) || strings.Contains(p.Source2, w) {
			return true
		}
	}
	return false
}
