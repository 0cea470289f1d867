package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the only accepted date input format (yyyy-MM-dd).
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// New creates a new validator instance using the wall clock
func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock creates a validator whose notion of "today" comes from now.
func NewWithClock(now func() time.Time) *Validator {
	v := validator.New()

	// Register custom tag name function to use JSON tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	val := &Validator{validate: v, now: now}

	// Register custom validators
	v.RegisterValidation("dateformat", validateDateFormat)
	v.RegisterValidation("notpast", val.validateNotPast)

	return val
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Convert validation errors to our custom format
	var validationErrs ValidationErrors
	for _, fe := range fieldErrs {
		validationErrs = append(validationErrs, ValidationError{
			Field:   fe.Field(),
			Message: msgForTag(fe),
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
		})
	}

	return validationErrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "dateformat":
		return fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", field)
	case "notpast":
		return fmt.Sprintf("%s must not be in the past", field)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// Custom validators

// validateDateFormat validates YYYY-MM-DD format and that the date exists
func validateDateFormat(fl validator.FieldLevel) bool {
	date := fl.Field().String()
	if !datePattern.MatchString(date) {
		return false
	}
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// validateNotPast accepts today and any later date, in the clock's zone
func (v *Validator) validateNotPast(fl validator.FieldLevel) bool {
	now := v.now()
	date, err := time.ParseInLocation(DateLayout, fl.Field().String(), now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !date.Before(today)
}
