package gateway

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/rental-service/internal/api/dto"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

// Validator checks request payloads before they are forwarded to the server.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a struct validator keyed on json field names.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates tagged fields and converts failures into a validation error
// with per-field details.
func (v *Validator) Struct(payload any) error {
	err := v.v.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return apperrors.NewValidationError("invalid payload", details)
}

// CheckBookingWindow enforces the temporal rules the struct tags cannot
// express: neither endpoint in the past and a strictly positive window.
func (v *Validator) CheckBookingWindow(req dto.CreateBookingRequest) error {
	if req.Start == nil || req.End == nil {
		return apperrors.NewValidationError("start and end are required", nil)
	}
	now := time.Now()
	if req.Start.Before(now) {
		return apperrors.NewValidationError("start must not be in the past", nil)
	}
	if req.End.Before(now) {
		return apperrors.NewValidationError("end must not be in the past", nil)
	}
	if !req.Start.Before(*req.End) {
		return apperrors.NewValidationError("start must be before end", nil)
	}
	return nil
}
