package service

import (
	"errors"

	"corrlab/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AnalysisRequest is the body of POST /api/analyze.
type AnalysisRequest struct {
	DataSource1 string `json:"dataSource1" validate:"required"`
	DataSource2 string `json:"dataSource2" validate:"required"`
	StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// ValidateRequest checks fields and the date range before any data is touched.
func ValidateRequest(req AnalysisRequest) (domain.DateRange, error) {
	if err := validate.Struct(req); err != nil {
		return domain.DateRange{}, translateValidation(err)
	}

	r, err := domain.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return domain.DateRange{}, domain.NewValidationError(domain.MsgInvalidDate)
	}
	if !r.Start.Before(r.End) {
		return domain.DateRange{}, domain.NewValidationError(domain.MsgStartAfterEnd)
	}
	if r.Days() > domain.MaxRangeDays {
		return domain.DateRange{}, domain.NewValidationError(domain.MsgRangeTooLong)
	}
	return r, nil
}

// translateValidation reports a missing field ahead of a malformed one.
func translateValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError(domain.MsgMissingParams)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return domain.NewValidationError(domain.MsgMissingParams)
		}
	}
	return domain.NewValidationError(domain.MsgInvalidDate)
}
