// Package validation implements the declarative per-route input validator.
// A Schema maps field names to a closed set of rule kinds; Validate
// interprets the schema against merged request input and either accepts
// (returning type-coerced values) or reports every violation as a
// human-readable message. Malformed input is never a panic or an error
// return, it is the reported violation.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Type string

const (
	Number  Type = "number"
	String  Type = "string"
	Boolean Type = "boolean"
	Array   Type = "array"
	Object  Type = "object"
)

// Rules is the closed rule set for one field. Zero values mean "rule unset".
type Rules struct {
	Required bool
	Type     Type

	// Numeric bounds, applied after string→number coercion.
	Min *float64
	Max *float64

	// String length bounds.
	MinLen int
	MaxLen int

	// Enum membership over the coerced value.
	Enum []any

	Email bool
	Date  bool
	JSON  bool

	// Check is the escape hatch: it receives the coerced value and the
	// full input set, and returns a violation message or "".
	Check func(value any, input Input) string
}

type Schema map[string]Rules

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Validate interprets schema against input. It returns the input with
// coerced values (numeric strings become float64) and the list of
// violations. Rule evaluation short-circuits within a field once the
// required or type check fails, but every field is always evaluated.
func Validate(schema Schema, input Input) (Input, []string) {
	out := make(Input, len(input))
	for k, v := range input {
		out[k] = v
	}

	var violations []string
	for field, rules := range schema {
		value, present := out[field]
		empty := !present || value == nil || value == ""

		if rules.Required && empty {
			violations = append(violations, fmt.Sprintf("Field '%s' is required", field))
			continue
		}
		if empty {
			continue
		}

		if rules.Type != "" {
			coerced, ok := coerceType(rules.Type, value)
			if !ok {
				violations = append(violations, fmt.Sprintf("Field '%s' must be %s", field, typeArticle(rules.Type)))
				continue
			}
			value = coerced
			out[field] = coerced
		}

		if rules.Type == Number {
			num := value.(float64)
			if rules.Min != nil && num < *rules.Min {
				violations = append(violations, fmt.Sprintf("Field '%s' must be at least %s", field, formatNumber(*rules.Min)))
			}
			if rules.Max != nil && num > *rules.Max {
				violations = append(violations, fmt.Sprintf("Field '%s' must be at most %s", field, formatNumber(*rules.Max)))
			}
		}

		if rules.Type == String {
			str := value.(string)
			if rules.MinLen > 0 && len(str) < rules.MinLen {
				violations = append(violations, fmt.Sprintf("Field '%s' must be at least %d characters", field, rules.MinLen))
			}
			if rules.MaxLen > 0 && len(str) > rules.MaxLen {
				violations = append(violations, fmt.Sprintf("Field '%s' must be at most %d characters", field, rules.MaxLen))
			}
		}

		if len(rules.Enum) > 0 && !enumContains(rules.Enum, value) {
			violations = append(violations, fmt.Sprintf("Field '%s' must be one of: %s", field, joinEnum(rules.Enum)))
		}

		if rules.Email {
			str, ok := value.(string)
			if !ok || !emailRe.MatchString(str) {
				violations = append(violations, fmt.Sprintf("Field '%s' must be a valid email address", field))
			}
		}

		if rules.Date {
			if msg := checkDate(field, value); msg != "" {
				violations = append(violations, msg)
			}
		}

		if rules.JSON {
			if msg := checkJSON(field, value); msg != "" {
				violations = append(violations, msg)
			}
		}

		if rules.Check != nil {
			if msg := rules.Check(value, out); msg != "" {
				violations = append(violations, msg)
			}
		}
	}

	return out, violations
}

// coerceType checks value against t, converting numeric strings to float64.
func coerceType(t Type, value any) (any, bool) {
	switch t {
	case Number:
		switch v := value.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int32:
			return float64(v), true
		case int64:
			return float64(v), true
		case json.Number:
			f, err := v.Float64()
			return f, err == nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			return f, err == nil
		}
		return nil, false
	case String:
		v, ok := value.(string)
		return v, ok
	case Boolean:
		v, ok := value.(bool)
		return v, ok
	case Array:
		v, ok := value.([]any)
		return v, ok
	case Object:
		v, ok := value.(map[string]any)
		return v, ok
	}
	return value, true
}

func checkDate(field string, value any) string {
	str, ok := value.(string)
	if !ok || !dateRe.MatchString(str) {
		return fmt.Sprintf("Field '%s' must be a valid date (YYYY-MM-DD)", field)
	}
	// The shape regex admits impossible dates like 2024-02-30; time.Parse
	// enforces calendar validity.
	if _, err := time.Parse("2006-01-02", str); err != nil {
		return fmt.Sprintf("Field '%s' must be a valid date", field)
	}
	return ""
}

func checkJSON(field string, value any) string {
	switch v := value.(type) {
	case string:
		if !json.Valid([]byte(v)) {
			return fmt.Sprintf("Field '%s' must be valid JSON", field)
		}
	case map[string]any, []any:
		// Already structured JSON from the request body.
	default:
		return fmt.Sprintf("Field '%s' must be valid JSON", field)
	}
	return ""
}

func enumContains(enum []any, value any) bool {
	for _, e := range enum {
		if enumEqual(e, value) {
			return true
		}
	}
	return false
}

func enumEqual(e, value any) bool {
	switch v := value.(type) {
	case float64:
		switch ev := e.(type) {
		case float64:
			return ev == v
		case int:
			return float64(ev) == v
		}
		return false
	case string:
		ev, ok := e.(string)
		return ok && ev == v
	case bool:
		ev, ok := e.(bool)
		return ok && ev == v
	}
	return e == value
}

func joinEnum(enum []any) string {
	parts := make([]string, len(enum))
	for i, e := range enum {
		parts[i] = fmt.Sprintf("%v", e)
	}
	return strings.Join(parts, ", ")
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func typeArticle(t Type) string {
	switch t {
	case Array:
		return "an array"
	case Object:
		return "an object"
	}
	return "a " + string(t)
}

// Float is a convenience for literal Min/Max bounds in schema declarations.
func Float(f float64) *float64 {
	return &f
}
