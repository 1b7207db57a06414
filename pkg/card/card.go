// Package card defines the flat study-card record shared by every kioku
// subsystem. Cards come from hand-authored collection documents and are
// treated as opaque: the engine reads fields but never writes them.
package card

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Card maps a field name to a JSON primitive or an array of primitives.
type Card map[string]any

// String returns the named field rendered as a string. Arrays are joined
// with ", ". Missing fields and nulls render as "".
func (c Card) String(field string) string {
	v, ok := c[field]
	if !ok || v == nil {
		return ""
	}
	return Render(v)
}

// Has reports whether the card carries a non-null value for field.
func (c Card) Has(field string) bool {
	v, ok := c[field]
	return ok && v != nil
}

// Fields returns the card's field names in sorted order.
func (c Card) Fields() []string {
	fields := make([]string, 0, len(c))
	for k := range c {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// Clone returns a shallow copy of the card. Array values are copied so
// callers can trim fields without aliasing the original.
func (c Card) Clone() Card {
	out := make(Card, len(c))
	for k, v := range c {
		if list, ok := v.([]any); ok {
			copied := make([]any, len(list))
			copy(copied, list)
			out[k] = copied
			continue
		}
		out[k] = v
	}
	return out
}

// Render converts a card value to display text.
func Render(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, Render(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ValidValue reports whether v is a JSON primitive or an array of
// primitives, the only shapes a card field may hold.
func ValidValue(v any) bool {
	switch t := v.(type) {
	case nil, string, bool, float64:
		return true
	case []any:
		for _, item := range t {
			switch item.(type) {
			case nil, string, bool, float64:
			default:
				return false
			}
		}
		return true
	default:
		return false
	}
}
