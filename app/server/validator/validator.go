// Package validator checks request fields of the coupon api.
package validator

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validator collects field errors and non-field errors of a request
type Validator struct {
	FieldErrors    map[string]string
	NonFieldErrors []string
}

// Valid returns true if there are no field errors
func (v *Validator) Valid() bool {
	return len(v.FieldErrors) == 0
}

// AddFieldError adds an error for the key, the first error for a key wins
func (v *Validator) AddFieldError(key, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}

	if _, exists := v.FieldErrors[key]; !exists {
		v.FieldErrors[key] = message
	}
}

// AddNonFieldError adds an error message not related to a particular field
func (v *Validator) AddNonFieldError(message string) {
	v.NonFieldErrors = append(v.NonFieldErrors, message)
}

// CheckField adds an error for the key if check is not ok
func (v *Validator) CheckField(ok bool, key, message string) {
	if !ok {
		v.AddFieldError(key, message)
	}
}

// Error joins all errors in a stable order, keys sorted
func (v *Validator) Error() string {
	keys := make([]string, 0, len(v.FieldErrors))
	for k := range v.FieldErrors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys)+len(v.NonFieldErrors))
	for _, k := range keys {
		msgs = append(msgs, k+": "+v.FieldErrors[k])
	}
	msgs = append(msgs, v.NonFieldErrors...)
	return strings.Join(msgs, "; ")
}

// NotBlank returns true if a value is not an empty string
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MaxChars returns true if a value contains no more than n characters
func MaxChars(value string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) <= n
}

// IsNumber returns true if value is an integer
func IsNumber(value string) bool {
	_, err := strconv.Atoi(value)
	return err == nil
}

// InRange returns true if value is an integer within [low, high]
func InRange(value string, low, high int) bool {
	n, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	return n >= low && n <= high
}
