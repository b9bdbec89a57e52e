package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mentorhub/mentor-qa-service/internal/models"
)

// ValidationError describes a single failed rule on a request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// HasRule reports whether any error was produced by the given rule tag.
func (ve ValidationErrors) HasRule(rule string) bool {
	for _, e := range ve {
		if e.Rule == rule {
			return true
		}
	}
	return false
}

// RuleMessage pairs a rule tag with the user-facing message shown when it fails.
type RuleMessage struct {
	Rule    string
	Message string
}

// FirstMessage returns the message of the first rule in precedence that failed.
// Falls back to the generic error text when no listed rule matched.
func (ve ValidationErrors) FirstMessage(precedence []RuleMessage) string {
	for _, rm := range precedence {
		if ve.HasRule(rm.Rule) {
			return rm.Message
		}
	}
	return ve.Error()
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	registerRules(v)
	return &Validator{validate: v}
}

// Validate runs struct validation and converts the result to ValidationErrors.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func ToValidationErrors(err error) ValidationErrors {
	var out ValidationErrors

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Message: err.Error(), Rule: "invalid"}}
	}
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: describe(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must contain non-whitespace characters"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "loose_email":
		return "must contain '@' and '.'"
	case "question_category":
		return "is not a known category"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func registerRules(v *validator.Validate) {
	// notblank rejects strings made only of whitespace
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// loose_email only asks for an "@" and a "."
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.Contains(s, "@") && strings.Contains(s, ".")
	})

	_ = v.RegisterValidation("question_category", func(fl validator.FieldLevel) bool {
		return models.QuestionCategory(fl.Field().String()).IsValid()
	})
}
