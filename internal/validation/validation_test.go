package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RequiredMissing(t *testing.T) {
	schema := Schema{
		"name": {Required: true, Type: String},
	}

	_, violations := Validate(schema, Input{})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'name' is required", violations[0])
}

func TestValidate_RequiredEmptyString(t *testing.T) {
	schema := Schema{
		"name": {Required: true, Type: String},
	}

	_, violations := Validate(schema, Input{"name": ""})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'name' is required", violations[0])
}

func TestValidate_OptionalMissingIsFine(t *testing.T) {
	schema := Schema{
		"description": {Type: String, MaxLen: 500},
	}

	_, violations := Validate(schema, Input{})
	assert.Empty(t, violations)
}

func TestValidate_NumericStringCoercion(t *testing.T) {
	schema := Schema{
		"amount": {Required: true, Type: Number},
	}

	out, violations := Validate(schema, Input{"amount": "150.50"})
	require.Empty(t, violations)
	assert.Equal(t, 150.50, out["amount"])
}

func TestValidate_NonNumericString(t *testing.T) {
	schema := Schema{
		"amount": {Required: true, Type: Number},
	}

	_, violations := Validate(schema, Input{"amount": "abc"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'amount' must be a number", violations[0])
}

func TestValidate_TypeFailureShortCircuitsLaterRules(t *testing.T) {
	schema := Schema{
		"amount": {Required: true, Type: Number, Min: Float(1)},
	}

	// The bounds rule must not run (and must not panic) once the type
	// check has failed.
	_, violations := Validate(schema, Input{"amount": "not-a-number"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'amount' must be a number", violations[0])
}

func TestValidate_NumericBounds(t *testing.T) {
	schema := Schema{
		"id": {Required: true, Type: Number, Min: Float(1)},
	}

	_, violations := Validate(schema, Input{"id": float64(0)})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'id' must be at least 1", violations[0])

	_, violations = Validate(schema, Input{"id": float64(1)})
	assert.Empty(t, violations)
}

func TestValidate_StringLengthBounds(t *testing.T) {
	schema := Schema{
		"name": {Required: true, Type: String, MinLen: 2, MaxLen: 5},
	}

	_, violations := Validate(schema, Input{"name": "a"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'name' must be at least 2 characters", violations[0])

	_, violations = Validate(schema, Input{"name": "abcdef"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'name' must be at most 5 characters", violations[0])
}

func TestValidate_Enum(t *testing.T) {
	schema := Schema{
		"trx_type": {Required: true, Type: String, Enum: []any{"income", "expense"}},
	}

	_, violations := Validate(schema, Input{"trx_type": "transfer"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'trx_type' must be one of: income, expense", violations[0])

	_, violations = Validate(schema, Input{"trx_type": "income"})
	assert.Empty(t, violations)
}

func TestValidate_Email(t *testing.T) {
	schema := Schema{
		"email": {Required: true, Type: String, Email: true},
	}

	for _, bad := range []string{"plain", "a@b", "a b@c.com", "@c.com"} {
		_, violations := Validate(schema, Input{"email": bad})
		require.Len(t, violations, 1, "expected %q to be rejected", bad)
		assert.Equal(t, "Field 'email' must be a valid email address", violations[0])
	}

	_, violations := Validate(schema, Input{"email": "user@example.com"})
	assert.Empty(t, violations)
}

func TestValidate_DateShape(t *testing.T) {
	schema := Schema{
		"trx_date": {Required: true, Type: String, Date: true},
	}

	_, violations := Validate(schema, Input{"trx_date": "15-01-2025"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'trx_date' must be a valid date (YYYY-MM-DD)", violations[0])

	_, violations = Validate(schema, Input{"trx_date": "2025-01-15"})
	assert.Empty(t, violations)
}

func TestValidate_ImpossibleCalendarDate(t *testing.T) {
	schema := Schema{
		"trx_date": {Required: true, Type: String, Date: true},
	}

	// Shape matches the regex but the day does not exist.
	_, violations := Validate(schema, Input{"trx_date": "2024-02-30"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'trx_date' must be a valid date", violations[0])
}

func TestValidate_JSONRule(t *testing.T) {
	schema := Schema{
		"meta": {JSON: true},
	}

	_, violations := Validate(schema, Input{"meta": `{"tag":"office"}`})
	assert.Empty(t, violations)

	_, violations = Validate(schema, Input{"meta": map[string]any{"tag": "office"}})
	assert.Empty(t, violations)

	_, violations = Validate(schema, Input{"meta": `{"tag":`})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'meta' must be valid JSON", violations[0])
}

func TestValidate_BooleanType(t *testing.T) {
	schema := Schema{
		"is_active": {Type: Boolean},
	}

	_, violations := Validate(schema, Input{"is_active": true})
	assert.Empty(t, violations)

	_, violations = Validate(schema, Input{"is_active": "yes"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'is_active' must be a boolean", violations[0])
}

func TestValidate_CollectsAcrossFields(t *testing.T) {
	schema := Schema{
		"name":   {Required: true, Type: String},
		"email":  {Required: true, Type: String, Email: true},
		"amount": {Required: true, Type: Number},
	}

	_, violations := Validate(schema, Input{"email": "nope", "amount": "x"})
	// One violation per field: missing name, bad email, non-numeric amount.
	assert.Len(t, violations, 3)
}

func TestValidate_CheckRule(t *testing.T) {
	schema := Schema{
		"end_date": {Required: true, Type: String, Date: true, Check: func(value any, input Input) string {
			if input.String("start_date") > value.(string) {
				return "Field 'end_date' must not be before start_date"
			}
			return ""
		}},
		"start_date": {Required: true, Type: String, Date: true},
	}

	_, violations := Validate(schema, Input{"start_date": "2025-02-01", "end_date": "2025-01-01"})
	require.Len(t, violations, 1)
	assert.Equal(t, "Field 'end_date' must not be before start_date", violations[0])
}

func TestInput_JSONNormalization(t *testing.T) {
	in := Input{
		"verbatim":   `{"a":1}`,
		"structured": map[string]any{"a": float64(1)},
	}

	assert.Equal(t, `{"a":1}`, string(in.JSON("verbatim")))
	assert.JSONEq(t, `{"a":1}`, string(in.JSON("structured")))
	assert.Nil(t, in.JSON("absent"))
}

func TestInput_StringPtr(t *testing.T) {
	in := Input{"note": "hello", "empty": ""}

	require.NotNil(t, in.StringPtr("note"))
	assert.Equal(t, "hello", *in.StringPtr("note"))
	assert.Nil(t, in.StringPtr("empty"))
	assert.Nil(t, in.StringPtr("absent"))
}
