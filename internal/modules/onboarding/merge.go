package onboarding

import (
	"strings"
)

// Extracted conversational fields arrive with a certainty convention: the
// upstream extractor prefixes hedged values with "uncertain: ". Internally
// that convention is modeled as an explicit tagged value so the merge rules
// never depend on substring sniffing beyond the ingestion boundary.

const uncertainPrefix = "uncertain: "

// FieldValue is one extracted datum with its certainty tag. Non-string data
// is always certain.
type FieldValue struct {
	Data      any
	Uncertain bool
}

// ParseField classifies a wire value. Only strings can be uncertain.
func ParseField(v any) FieldValue {
	if s, ok := v.(string); ok && strings.HasPrefix(s, uncertainPrefix) {
		return FieldValue{Data: s, Uncertain: true}
	}
	return FieldValue{Data: v, Uncertain: false}
}

// Merge combines newly extracted fields into previously stored ones and
// returns a fresh map; neither argument is mutated. Per incoming key:
//   - nil and empty-string values are skipped (existing wins, or stays absent)
//   - certain existing data is never overwritten by an uncertain incoming value
//   - in every other pairing the incoming value wins (most recent certain
//     value, or most recent hedge)
func Merge(existing, incoming map[string]any) map[string]any {
	out := make(map[string]any, len(existing)+len(incoming))
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range incoming {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		in := ParseField(v)
		cur, has := out[k]
		if has {
			ex := ParseField(cur)
			if !ex.Uncertain && in.Uncertain {
				continue
			}
		}
		out[k] = in.Data
	}
	return out
}
