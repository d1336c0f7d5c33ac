package commentary

import (
	"fmt"
	"strings"
)

const systemPrompt = `역할: 상관분석 결과에 보완적 관점을 더하는 데이터 분석 조언자.

금지:
- 상관계수(r)의 수치, 방향, 강도를 다시 서술하지 말 것
- "강한/중간/약한 상관관계" 같은 기본 해석 반복 금지
- HTML, 마크다운, 코드, 링크, 이모지, 표 사용 금지

형식:
- 한국어. 단정 대신 '가능성', '검토가 필요', '가설' 같은 표현 사용
- 120~220자 요약 한 문단과 한 문장짜리 불릿 2~3개
- 데이터 품질, 구간 분석, 교란요인, 모델링 제안 중심
- 마지막 불릿은 "` + closingSentence + `"로 끝낼 것`

func BuildSystemPrompt() string {
	return systemPrompt
}

func BuildUserPrompt(p Payload) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("분석 대상: %s%s %s\n", p.Source1, Particle(p.Source1, "과", "와"), p.Source2))
	sb.WriteString(fmt.Sprintf("표본 수: %d개, 기간: %s ~ %s\n", p.N, orDash(p.StartDate), orDash(p.EndDate)))
	sb.WriteString(fmt.Sprintf("상관계수: %.3f (참고용, 재서술 금지)\n\n", p.R))
	sb.WriteString("기존 통계 해석을 반복하지 말고 데이터 품질, 구간 분석, 교란요인, 모델링 관점의 보완 제안만 작성하세요.\n")
	sb.WriteString("요약 한 문단과 불릿 2~3개, 추정과 가설의 어조를 유지하세요.")
	return sb.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
