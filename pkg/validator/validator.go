// Package validator checks input with small composable rules.
//
//	err := validator.Apply(
//		validator.Required("name", req.Name).WithMessage("Bitte einen Namen angeben."),
//		validator.Email("email", req.Email),
//	)
//	if errs := validator.Extract(err); errs != nil {
//		// render errs next to the fields
//	}
//
// Every failing rule is reported, in the order given.
package validator

import (
	"errors"
	"strings"
)

// ValidationError is one failed rule.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors is the result of a failed Apply.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve))
	for i, e := range ve {
		parts[i] = e.Field + ": " + e.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages for field.
func (ve ValidationErrors) Get(field string) []string {
	var msgs []string
	for _, e := range ve {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Rule is a deferred check with the error it reports.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// WithMessage replaces the rule's message.
func (r Rule) WithMessage(msg string) Rule {
	r.Error.Message = msg
	return r
}

// Apply runs every rule and returns ValidationErrors for the failing ones,
// or nil.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Extract returns the ValidationErrors in err's chain, or nil.
func Extract(err error) ValidationErrors {
	var errs ValidationErrors
	if errors.As(err, &errs) {
		return errs
	}
	return nil
}

func IsValidationError(err error) bool {
	return Extract(err) != nil
}
