package tables

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Record is one decoded row. Values are positional and line up with Columns.
type Record struct {
	Columns []Column
	Values  []interface{}
}

// Get returns the value of the named column
func (r Record) Get(name string) (interface{}, bool) {
	for i, col := range r.Columns {
		if col.Name == name {
			return r.Values[i], true
		}
	}
	return nil, false
}

// MarshalJSON encodes the record as an object keyed by column name,
// keeping column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(jsonValue(r.Values[i]))
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// jsonValue maps NaN and ±Inf, which JSON cannot carry, to null
func jsonValue(v interface{}) interface{} {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v
}

// Strings renders the values for a CSV line
func (r Record) Strings() []string {
	out := make([]string, len(r.Values))
	for i, v := range r.Values {
		switch val := v.(type) {
		case string:
			out[i] = val
		case int64:
			out[i] = strconv.FormatInt(val, 10)
		case float64:
			out[i] = strconv.FormatFloat(val, 'f', -1, 64)
		case nil:
			out[i] = ""
		default:
			out[i] = fmt.Sprint(val)
		}
	}
	return out
}
