package validation

import (
	"encoding/json"
	"time"
)

// Input is the merged, coerced request input (body + query + path params)
// a handler consumes after validation has passed. Accessors assume the
// schema already guaranteed presence and type for required fields.
type Input map[string]any

func (in Input) Has(key string) bool {
	v, ok := in[key]
	return ok && v != nil && v != ""
}

func (in Input) String(key string) string {
	v, _ := in[key].(string)
	return v
}

// StringPtr returns nil for absent or empty fields.
func (in Input) StringPtr(key string) *string {
	v, ok := in[key].(string)
	if !ok || v == "" {
		return nil
	}
	return &v
}

func (in Input) Number(key string) float64 {
	v, _ := in[key].(float64)
	return v
}

func (in Input) Int32(key string) int32 {
	return int32(in.Number(key))
}

func (in Input) Bool(key string) bool {
	v, _ := in[key].(bool)
	return v
}

// Date parses a field the schema already validated as YYYY-MM-DD.
func (in Input) Date(key string) time.Time {
	t, _ := time.Parse("2006-01-02", in.String(key))
	return t
}

// JSON normalizes a json-rule field to its raw encoding: strings are
// taken verbatim, structured values are re-marshaled. Absent fields
// yield nil.
func (in Input) JSON(key string) json.RawMessage {
	switch v := in[key].(type) {
	case string:
		if v == "" {
			return nil
		}
		return json.RawMessage(v)
	case map[string]any, []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return raw
	}
	return nil
}
