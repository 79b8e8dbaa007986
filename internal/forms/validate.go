// Package forms holds one form model per record kind. A form validates the
// admin's input and maps it explicitly onto an insert or a patch payload.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/eventdesk/internal/records"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	v.RegisterCustomTypeFunc(func(v reflect.Value) any {
		f, _ := v.Interface().(decimal.Decimal).Float64()
		return f
	}, decimal.Decimal{})

	v.RegisterCustomTypeFunc(func(v reflect.Value) any {
		return v.Interface().(records.Date).String()
	}, records.Date{})

	return v
}

// check runs the struct rules and reports every failing field.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating form: %w", err)
	}

	out := &records.ValidationError{}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, records.FieldError{Field: fe.Field(), Message: message(fe)})
	}

	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}

		return "must be at least " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

// payload is a validated column set bound to the form it came from.
type payload struct {
	form   any
	fields map[string]any
}

func (p payload) Validate() error        { return check(p.form) }
func (p payload) Fields() map[string]any { return p.fields }

// fieldError reports a single-input parse failure the same way as a rule
// failure.
func fieldError(field, msg string) error {
	return &records.ValidationError{Fields: []records.FieldError{{Field: field, Message: msg}}}
}

// ParseAmount reads a money input. Blank is zero.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fieldError(field, "must be a number")
	}

	return d, nil
}

// ParseDateField reads a YYYY-MM-DD input. Blank is the zero date, which the
// form rules then reject where a date is required.
func ParseDateField(field, s string) (records.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return records.Date{}, nil
	}

	d, err := records.ParseDate(s)
	if err != nil {
		return records.Date{}, fieldError(field, "must be a date (YYYY-MM-DD)")
	}

	return d, nil
}

func orDefault[T ~string](v, def T) T {
	if v == "" {
		return def
	}

	return v
}
