// Package validate checks raw form submissions before they reach the scorer.
// The scorer itself accepts any well-typed input; the rules here are what a
// caller must satisfy for the result to be meaningful.
package validate

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskscope/riskscope/pkg/scoring"
)

// DateLayout is the accepted format of the reference date.
const DateLayout = "2006-01-02"

// Form is a raw submission. Numeric fields are pointers so a missing
// value can be told apart from zero.
type Form struct {
	Val   *float64 `json:"val" yaml:"val" validate:"required,finite,gte=0"`
	Flag1 bool     `json:"flag1" yaml:"flag1"`
	Text  string   `json:"text" yaml:"text" validate:"required"`
	Hour  *int     `json:"hour" yaml:"hour" validate:"required,gte=0,lte=23"`
	Email string   `json:"email" yaml:"email" validate:"required,email"`
	Addr1 string   `json:"addr1" yaml:"addr1" validate:"required"`
	Addr2 string   `json:"addr2" yaml:"addr2" validate:"required"`
	Count *int     `json:"count" yaml:"count" validate:"required,gte=0"`
	Date  string   `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
}

// FromInput builds a Form carrying the values of an already-typed input.
func FromInput(in scoring.Input) Form {
	val, hour, count := in.Val, in.Hour, in.Count
	return Form{
		Val:   &val,
		Flag1: in.Flag1,
		Text:  in.Text,
		Hour:  &hour,
		Email: in.Email,
		Addr1: in.Addr1,
		Addr2: in.Addr2,
		Count: &count,
		Date:  in.ReferenceDate.Format(DateLayout),
	}
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned when a Form fails validation. Fields are in form order.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// NaN and ±Inf decode from YAML (.nan, .inf) and from flags ("Inf").
	err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks a form and converts it to a scoring input.
// Text is trimmed before it is checked and the trimmed value is kept;
// addresses are taken verbatim.
func Validate(f Form) (scoring.Input, error) {
	f.Text = strings.TrimSpace(f.Text)

	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return scoring.Input{}, fmt.Errorf("validating form: %w", err)
		}
		out := &Error{Fields: make([]FieldError, 0, len(verrs))}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, FieldError{
				Field:   fe.Field(),
				Message: message(fe),
			})
		}
		return scoring.Input{}, out
	}

	ref, err := time.Parse(DateLayout, f.Date)
	if err != nil {
		return scoring.Input{}, &Error{Fields: []FieldError{{Field: "date", Message: dateMessage}}}
	}

	return scoring.Input{
		Val:           *f.Val,
		Flag1:         f.Flag1,
		Text:          f.Text,
		Hour:          *f.Hour,
		Email:         f.Email,
		Addr1:         f.Addr1,
		Addr2:         f.Addr2,
		Count:         *f.Count,
		ReferenceDate: ref,
	}, nil
}

// Analyze validates a form and scores it as of now. On a validation
// failure it returns the unset sentinel result together with the error.
func Analyze(f Form, engine *scoring.Engine, now time.Time) (scoring.Result, error) {
	in, err := Validate(f)
	if err != nil {
		return scoring.Unset(), err
	}
	return engine.AnalyzeAt(in, now), nil
}

const dateMessage = "date must be a valid date (YYYY-MM-DD)"

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "val":
		return "val must be a finite non-negative number"
	case "text":
		return "text must not be empty"
	case "hour":
		return "hour must be between 0 and 23"
	case "email":
		if fe.Tag() == "required" {
			return "email must not be empty"
		}
		return "email must be a valid email address"
	case "addr1", "addr2":
		return fe.Field() + " must not be empty"
	case "count":
		return "count must be a non-negative integer"
	case "date":
		return dateMessage
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
