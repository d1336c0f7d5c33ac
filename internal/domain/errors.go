package domain

import "errors"

var (
	ErrValidation            = errors.New("validation failed")
	ErrUnknownSource         = errors.New("unknown data source")
	ErrProviderUnavailable   = errors.New("provider unavailable")
	ErrInsufficientOverlap   = errors.New("insufficient overlap")
	ErrDegenerateCorrelation = errors.New("degenerate correlation")
)

const (
	MsgMissingParams       = "필수 파라미터가 누락되었습니다."
	MsgInvalidDate         = "날짜 형식이 올바르지 않습니다. (YYYY-MM-DD)"
	MsgStartAfterEnd       = "시작일이 종료일보다 늦습니다."
	MsgRangeTooLong        = "분석 기간은 1년을 초과할 수 없습니다."
	MsgUnknownSource       = "알 수 없는 데이터 소스입니다: "
	MsgInsufficientOverlap = "충분한 공통 데이터가 없습니다."
	MsgCorrelationFailed   = "상관계수 계산에 실패했습니다."
	MsgInternal            = "서버 오류가 발생했습니다."
	MsgMissingFieldPrefix  = "필수 필드 누락: "
)

// UserError carries a caller-facing message alongside the sentinel that classifies it.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

func NewValidationError(msg string) error {
	return &UserError{Kind: ErrValidation, Message: msg}
}

func NewUnknownSourceError(id string) error {
	return &UserError{Kind: ErrUnknownSource, Message: MsgUnknownSource + id}
}

func NewInsufficientOverlapError() error {
	return &UserError{Kind: ErrInsufficientOverlap, Message: MsgInsufficientOverlap}
}

func NewDegenerateCorrelationError() error {
	return &UserError{Kind: ErrDegenerateCorrelation, Message: MsgCorrelationFailed}
}

// UserMessage returns the message to show a caller for err. Errors without a
// UserError in their chain get a generic message.
func UserMessage(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return MsgInternal
}
