package console

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// FieldErrors maps a form field to its validation message. An empty map means
// the draft may be submitted.
type FieldErrors map[string]string

// Ok reports whether the draft passed validation.
func (e FieldErrors) Ok() bool { return len(e) == 0 }

// ValidationError gates submission: the reconciler returns it instead of
// issuing a network call when a draft fails validation.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("console: validation failed: %s", strings.Join(fields, ", "))
}

var urlPattern = regexp.MustCompile(`^https?://`)

// ValidateAPI checks an API draft at submit time.
func ValidateAPI(draft API) FieldErrors {
	errs := FieldErrors{}
	if draft.Name == "" {
		errs["name"] = "Name is required"
	}
	if draft.URL == "" {
		errs["url"] = "URL is required"
	} else if !urlPattern.MatchString(draft.URL) {
		errs["url"] = "URL must be valid (start with http:// or https://)"
	}
	if draft.Percentage == "" {
		errs["percentage"] = "Percentage is required"
	} else if pct, err := strconv.ParseFloat(draft.Percentage, 64); err != nil || pct < 0 || pct > 100 {
		errs["percentage"] = "Percentage must be between 0 and 100"
	}
	if draft.Key == "" {
		errs["key"] = "API key is required"
	}
	return errs
}

// ValidateExchange checks an exchange draft at submit time.
func ValidateExchange(draft Exchange) FieldErrors {
	errs := FieldErrors{}
	if draft.Name == "" {
		errs["name"] = "Name is required"
	}
	if draft.Price == "" {
		errs["price"] = "Price is required"
	} else if _, err := strconv.ParseFloat(draft.Price, 64); err != nil {
		errs["price"] = "Price must be a valid number"
	}
	return errs
}

// ValidateCategory checks a category draft at submit time.
func ValidateCategory(draft Category) FieldErrors {
	errs := FieldErrors{}
	if draft.Name == "" {
		errs["name"] = "Name is required"
	}
	return errs
}

// ValidateService checks a service draft at submit time, including the
// min/max cross-field rule.
func ValidateService(draft Service) FieldErrors {
	errs := FieldErrors{}
	if draft.Name == "" {
		errs["name"] = "Name is required"
	}
	if draft.Price < 0 {
		errs["price"] = "Price must be a valid number"
	}
	for field, msg := range ValidateQuantityBounds(draft.Min, draft.Max) {
		errs[field] = msg
	}
	return errs
}

// ValidateQuantityBounds implements the reactive min/max rule: when min
// exceeds a non-zero max both fields carry an error, and neither does the
// moment the condition no longer holds. Forms re-run it on every keystroke
// touching either field, independent of submit.
func ValidateQuantityBounds(min, max int) FieldErrors {
	if min > max && max != 0 {
		return FieldErrors{
			"min": "Min must be less than max",
			"max": "Max must be greater than min",
		}
	}
	return FieldErrors{}
}
