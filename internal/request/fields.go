package request

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// form walks one raw payload and collects every constraint violation in a
// single pass. Checkers return zero values on violation and keep going, so
// a caller submitting two invalid fields sees two messages.
type form struct {
	raw        map[string]any
	violations []string
}

func newForm(raw map[string]any) *form {
	if raw == nil {
		raw = map[string]any{}
	}
	return &form{raw: raw}
}

func (f *form) fail(field, reason string) {
	f.violations = append(f.violations, field+" "+reason)
}

func (f *form) ok() bool { return len(f.violations) == 0 }

// requireString demands a non-empty string no longer than maxLen runes.
func (f *form) requireString(field string, maxLen int) string {
	v, present := f.raw[field]
	if !present || v == nil {
		f.fail(field, "is required")
		return ""
	}
	s, isString := v.(string)
	if !isString {
		f.fail(field, "must be a string")
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		f.fail(field, "is required")
		return ""
	}
	if maxLen > 0 && len([]rune(s)) > maxLen {
		f.fail(field, fmt.Sprintf("must be at most %d characters", maxLen))
		return ""
	}
	return s
}

// optionalString accepts an absent field; present values follow the same
// rules as requireString except that empty collapses to absent.
func (f *form) optionalString(field string, maxLen int) *string {
	v, present := f.raw[field]
	if !present || v == nil {
		return nil
	}
	s, isString := v.(string)
	if !isString {
		f.fail(field, "must be a string")
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if maxLen > 0 && len([]rune(s)) > maxLen {
		f.fail(field, fmt.Sprintf("must be at most %d characters", maxLen))
		return nil
	}
	return &s
}

// enum checks a previously extracted value against an allowed set. Skipped
// when the value is empty (its own requirement already reported).
func (f *form) enum(field, value string, allowed []string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	f.fail(field, "must be one of: "+strings.Join(allowed, ", "))
}

// number coerces JSON numbers and numeric strings into a float64.
func (f *form) number(field string, v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			f.fail(field, "must be a number")
			return 0, false
		}
		return parsed, true
	default:
		f.fail(field, "must be a number")
		return 0, false
	}
}

// optionalNumber accepts an absent field; present values must coerce to a
// number within [min, max].
func (f *form) optionalNumber(field string, min, max float64) *float64 {
	v, present := f.raw[field]
	if !present || v == nil {
		return nil
	}
	n, valid := f.number(field, v)
	if !valid {
		return nil
	}
	if n < min || n > max {
		f.fail(field, fmt.Sprintf("must be between %v and %v", min, max))
		return nil
	}
	return &n
}

// requireInt demands a whole number within [min, max].
func (f *form) requireInt(field string, min, max int) int {
	v, present := f.raw[field]
	if !present || v == nil {
		f.fail(field, "is required")
		return 0
	}
	n, valid := f.number(field, v)
	if !valid {
		return 0
	}
	if n != math.Trunc(n) {
		f.fail(field, "must be a whole number")
		return 0
	}
	i := int(n)
	if i < min || i > max {
		f.fail(field, fmt.Sprintf("must be between %d and %d", min, max))
		return 0
	}
	return i
}

// intOr returns fallback when the field is absent; present values must be a
// whole number no smaller than min (and no larger than max when max > 0).
func (f *form) intOr(field string, fallback, min, max int) int {
	v, present := f.raw[field]
	if !present || v == nil {
		return fallback
	}
	n, valid := f.number(field, v)
	if !valid {
		return fallback
	}
	if n != math.Trunc(n) {
		f.fail(field, "must be a whole number")
		return fallback
	}
	i := int(n)
	if i < min {
		f.fail(field, fmt.Sprintf("must be at least %d", min))
		return fallback
	}
	if max > 0 && i > max {
		f.fail(field, fmt.Sprintf("must be at most %d", max))
		return fallback
	}
	return i
}

// boolOr returns fallback when the field is absent; accepts booleans and
// their string forms.
func (f *form) boolOr(field string, fallback bool) bool {
	v, present := f.raw[field]
	if !present || v == nil {
		return fallback
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true":
			return true
		case "false":
			return false
		}
	}
	f.fail(field, "must be true or false")
	return fallback
}

// optionalBool accepts an absent field; present values follow boolOr rules.
func (f *form) optionalBool(field string) *bool {
	v, present := f.raw[field]
	if !present || v == nil {
		return nil
	}
	switch b := v.(type) {
	case bool:
		return &b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true":
			t := true
			return &t
		case "false":
			t := false
			return &t
		}
	}
	f.fail(field, "must be true or false")
	return nil
}

// optionalTime accepts an absent field; present values must be RFC 3339 or
// a plain date.
func (f *form) optionalTime(field string) *time.Time {
	v, present := f.raw[field]
	if !present || v == nil {
		return nil
	}
	s, isString := v.(string)
	if !isString {
		f.fail(field, "must be an RFC 3339 timestamp")
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	f.fail(field, "must be an RFC 3339 timestamp")
	return nil
}
