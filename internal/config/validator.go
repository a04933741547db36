package config

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	// ErrNilConfig is returned when validating a nil config
	ErrNilConfig = errors.New("config is nil")
	// ErrValidationFailed wraps every validation problem
	ErrValidationFailed = errors.New("config validation failed")
)

var validate = validator.New()

// Validate checks field constraints and that StartingMoney is a non-negative amount
func Validate(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}

	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(ErrValidationFailed, formatValidationErrors(err))
	}

	money, err := decimal.NewFromString(cfg.StartingMoney)
	if err != nil {
		return errors.Wrapf(ErrValidationFailed, "field 'StartingMoney' is not an amount: %s", cfg.StartingMoney)
	}
	if money.IsNegative() {
		return errors.Wrap(ErrValidationFailed, "field 'StartingMoney' must not be negative")
	}
	return nil
}

func formatValidationErrors(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	var sb strings.Builder
	for i, fe := range fieldErrs {
		if i > 0 {
			sb.WriteString("; ")
		}

		field := fe.Field()
		switch fe.Tag() {
		case "required":
			sb.WriteString(fmt.Sprintf("field '%s' is required", field))
		case "min":
			sb.WriteString(fmt.Sprintf("field '%s' must be at least %s", field, fe.Param()))
		case "oneof":
			sb.WriteString(fmt.Sprintf("field '%s' must be one of [%s]", field, fe.Param()))
		default:
			sb.WriteString(fmt.Sprintf("field '%s' failed validation '%s'", field, fe.Tag()))
		}
	}
	return sb.String()
}
