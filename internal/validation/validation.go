// Package validation checks struct tags with go-playground/validator and
// reports failures as *models.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mmynk/leasehold/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	errValidate  error
)

// initValidator creates the validator with the decimal rules money fields need.
func initValidator() (*validator.Validate, error) {
	vld := validator.New(validator.WithRequiredStructEnabled())

	vld.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// decimal.Decimal is a struct, so validation reads the field directly
	// rather than through a custom type func.
	if err := vld.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && value.IsPositive()
	}); err != nil {
		return nil, fmt.Errorf("failed to register 'positive_decimal': %w", err)
	}

	if err := vld.RegisterValidation("cents", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && value.Equal(value.Round(2))
	}); err != nil {
		return nil, fmt.Errorf("failed to register 'cents': %w", err)
	}

	// decimal_lte=<limit> bounds a decimal from above.
	if err := vld.RegisterValidation("decimal_lte", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		limit, err := decimal.NewFromString(fl.Param())
		return err == nil && value.LessThanOrEqual(limit)
	}); err != nil {
		return nil, fmt.Errorf("failed to register 'decimal_lte': %w", err)
	}

	return vld, nil
}

func getValidator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		validate, errValidate = initValidator()
	})
	return validate, errValidate
}

// Struct checks payload's validate tags and reports the first failure as
// a *models.ValidationError naming the field by its json tag.
func Struct(payload any) error {
	vld, err := getValidator()
	if err != nil {
		return err
	}

	if err := vld.Struct(payload); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return formatFieldError(fieldErrors[0])
		}
		return models.NewValidationError("", err.Error())
	}
	return nil
}

func formatFieldError(fe validator.FieldError) error {
	field := fe.Field()

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "max":
		msg = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		msg = fmt.Sprintf("must contain at least %s", fe.Param())
	case "oneof":
		msg = fmt.Sprintf("must be one of [%s]", fe.Param())
	case "positive_decimal":
		msg = "must be greater than zero"
	case "cents":
		msg = "must have at most two decimal places"
	case "decimal_lte":
		msg = fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		msg = "must be a valid email address"
	case "gtefield":
		msg = "must not be before issue_date"
	default:
		msg = fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return models.NewValidationError(field, msg)
}
