package rawrecord

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one untyped record as decoded from a remote API response.
// Fields may be missing, null, or carry numbers encoded as strings; the
// accessors below coerce them into defined values so that no arithmetic is
// ever performed on unvalidated data.
type Record map[string]any

// String returns the field as a string, or "" when absent or not a string.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// StringOr returns the field as a string, or fallback when absent or empty.
func (r Record) StringOr(key, fallback string) string {
	if s := r.String(key); s != "" {
		return s
	}
	return fallback
}

// Bool returns the field as a bool, or false when absent or not a bool.
func (r Record) Bool(key string) bool {
	v, _ := r[key].(bool)
	return v
}

// Decimal coerces the field into a decimal. Accepted encodings are JSON
// numbers, json.Number, integers and numeric strings. The second return is
// false only when a value is present but cannot be interpreted as a number;
// absent and null fields coerce to zero with ok=true, because "no value yet"
// is a legitimate upstream state while "garbage value" is not.
func (r Record) Decimal(key string) (decimal.Decimal, bool) {
	v, present := r[key]
	if !present || v == nil {
		return decimal.Zero, true
	}

	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Zero, true
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// timeLayouts are the timestamp encodings observed in workflow API payloads.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time returns the field parsed as a timestamp, or nil when the field is
// absent, null, or unparsable. A missing date is never defaulted to "now";
// that would hide missing data from whoever reads the derived summaries.
func (r Record) Time(key string) *time.Time {
	s := r.String(key)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// Child returns a nested object field as a Record, or nil when absent.
func (r Record) Child(key string) Record {
	if m, ok := r[key].(map[string]any); ok {
		return Record(m)
	}
	return nil
}
