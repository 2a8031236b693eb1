package validation

import (
	"sort"

	types "github.com/venturegate/validation-backend/internal/domain"
)

// Aggregation over evidence lists. Everything here is a pure reducer: total
// over any list shape, no errors, malformed fields count as absent.

type Aggregates struct {
	Count          int
	AverageQuality float64
	Experiments    int
	StrengthMix    map[types.EvidenceStrength]int
	TypeSet        []types.EvidenceType
	Contradictions int
}

func Aggregate(items []types.EvidenceItem) Aggregates {
	return Aggregates{
		Count:          len(items),
		AverageQuality: AverageQuality(items),
		Experiments:    ExperimentCount(items),
		StrengthMix:    StrengthMix(items),
		TypeSet:        EvidenceTypeSet(items),
		Contradictions: contradictionCount(items),
	}
}

// AverageQuality is the arithmetic mean of quality scores, 0 for an empty
// list. Contradictory evidence is included unweighted; penalizing it is not
// this layer's job.
func AverageQuality(items []types.EvidenceItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range items {
		sum += it.QualityScore
	}
	return sum / float64(len(items))
}

func ExperimentCount(items []types.EvidenceItem) int {
	n := 0
	for _, it := range items {
		if it.Type == types.EvidenceExperiment {
			n++
		}
	}
	return n
}

// StrengthMix always returns all three strength keys, zero-valued when
// absent. Unknown strength values are ignored rather than rejected.
func StrengthMix(items []types.EvidenceItem) map[types.EvidenceStrength]int {
	mix := map[types.EvidenceStrength]int{
		types.StrengthWeak:   0,
		types.StrengthMedium: 0,
		types.StrengthStrong: 0,
	}
	for _, it := range items {
		if _, ok := mix[it.Strength]; ok {
			mix[it.Strength]++
		}
	}
	return mix
}

// EvidenceTypeSet returns the distinct evidence types present, sorted so
// callers get a deterministic order.
func EvidenceTypeSet(items []types.EvidenceItem) []types.EvidenceType {
	seen := map[types.EvidenceType]bool{}
	for _, it := range items {
		if it.Type == "" {
			continue
		}
		seen[it.Type] = true
	}
	out := make([]types.EvidenceType, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func contradictionCount(items []types.EvidenceItem) int {
	n := 0
	for _, it := range items {
		if it.IsContradiction {
			n++
		}
	}
	return n
}
