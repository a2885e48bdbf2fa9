package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/popcorn-palace/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	ErrRequired       = "is required"
	ErrMinLength      = "must be at least %s"
	ErrMaxLength      = "must be at most %s"
	ErrGreaterThan    = "must be greater than %s"
	ErrGreaterOrEqual = "must not be less than %s"
	ErrLessOrEqual    = "must not be greater than %s"
	ErrAfterField     = "must be after %s"
	ErrOneOf          = "must be one of: %s"
	ErrMoney          = "must have at most 8 integer digits and 2 decimal places"
	ErrInvalid        = "is invalid"
)

// maxMoney is the first value that no longer fits a numeric(10, 2) column.
var maxMoney = decimal.New(1, 8)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// decimals are compared as floats so that numeric tags like gte=0 apply to prices
	validator.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	validator.RegisterTagNameFunc(jsonFieldName)

	_ = validator.RegisterValidation("money", validMoney)

	return validator
}

// jsonFieldName reports fields by their JSON name so that issues match what
// clients send.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	default:
		return name
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToLower(r[0])

	return string(r)
}

func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}

	return d.InexactFloat64()
}

// validMoney reports whether the field is an amount storable without rounding.
func validMoney(fl validator.FieldLevel) bool {
	var d decimal.Decimal

	switch v := fl.Field().Interface().(type) {
	case decimal.Decimal:
		d = v
	case float64:
		d = decimal.NewFromFloat(v)
	default:
		return false
	}

	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxMoney)
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "gt":
		return fmt.Sprintf(ErrGreaterThan, err.Param())
	case "gte":
		return fmt.Sprintf(ErrGreaterOrEqual, err.Param())
	case "lte":
		return fmt.Sprintf(ErrLessOrEqual, err.Param())
	case "gtfield":
		return fmt.Sprintf(ErrAfterField, lowerFirst(err.Param()))
	case "oneof":
		return fmt.Sprintf(ErrOneOf, err.Param())
	case "money":
		return ErrMoney
	default:
		return ErrInvalid
	}
}

// Check validates s and returns a *domain.ValidationError listing every
// failed field. Errors not produced by field checks are returned unchanged.
func Check(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	issues := lo.Map(fieldErrs, func(fe validator.FieldError, _ int) domain.FieldIssue {
		return domain.FieldIssue{
			Field: fe.Field(),
			Issue: ValidationMessage(fe),
		}
	})

	return &domain.ValidationError{Issues: issues}
}
