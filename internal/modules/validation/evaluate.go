package validation

import (
	"fmt"

	types "github.com/venturegate/validation-backend/internal/domain"
)

// Evaluation is the outcome of judging a project's accumulated state against
// one gate policy. Readiness is continuous and independent of the binary
// Pass/Fail outcome so partial progress is visible before a gate is
// attempted.
type Evaluation struct {
	Status    types.GateStatus `json:"status"`
	Readiness float64          `json:"readiness_score"`
	Reasons   []string         `json:"reasons"`
}

// Evaluate applies policy to state. Pass requires all three criteria at or
// above threshold (equality satisfies). A fresh all-zero state yields
// Pending rather than Failed: nothing has been measured yet.
func Evaluate(state types.ValidationState, policy types.GatePolicy) Evaluation {
	readiness := Readiness(state, policy)

	if state.EvidenceCount == 0 && state.ExperimentsCount == 0 && state.EvidenceQuality == 0 {
		return Evaluation{
			Status:    types.StatusPending,
			Readiness: readiness,
			Reasons:   []string{"No evidence collected yet"},
		}
	}

	var reasons []string
	if state.EvidenceQuality < policy.MinQuality {
		reasons = append(reasons, fmt.Sprintf(
			"Evidence quality too low: %.2f < %.2f", state.EvidenceQuality, policy.MinQuality))
	}
	if state.ExperimentsCount < policy.MinExperiments {
		reasons = append(reasons, fmt.Sprintf(
			"Insufficient experiments: have %d, need %d", state.ExperimentsCount, policy.MinExperiments))
	}
	if state.EvidenceCount < policy.MinTotalEvidence {
		reasons = append(reasons, fmt.Sprintf(
			"Insufficient total evidence: have %d, need %d", state.EvidenceCount, policy.MinTotalEvidence))
	}

	status := types.StatusPassed
	if len(reasons) > 0 {
		status = types.StatusFailed
	}
	return Evaluation{Status: status, Readiness: readiness, Reasons: reasons}
}

// Readiness is the unweighted mean of min(1, actual/required) across the
// three gate criteria. A zero requirement is trivially satisfied (ratio 1.0)
// so a lenient policy never divides by zero.
func Readiness(state types.ValidationState, policy types.GatePolicy) float64 {
	ratios := []float64{
		ratio(state.EvidenceQuality, policy.MinQuality),
		ratio(float64(state.ExperimentsCount), float64(policy.MinExperiments)),
		ratio(float64(state.EvidenceCount), float64(policy.MinTotalEvidence)),
	}
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	return sum / float64(len(ratios))
}

func ratio(actual, required float64) float64 {
	if required <= 0 {
		return 1.0
	}
	r := actual / required
	if r > 1.0 {
		return 1.0
	}
	if r < 0 {
		return 0
	}
	return r
}

// Advisories reports the softer policy expectations that do not flip the
// Pass/Fail decision: required evidence types and the minimum strength mix.
// They surface in API responses as warnings for the venture team.
func Advisories(agg Aggregates, policy types.GatePolicy) []string {
	var out []string

	if len(policy.RequiredTypes) > 0 {
		present := map[types.EvidenceType]bool{}
		for _, t := range agg.TypeSet {
			present[t] = true
		}
		var missing []string
		for _, t := range policy.RequiredTypes {
			if !present[t] {
				missing = append(missing, string(t))
			}
		}
		if len(missing) > 0 {
			out = append(out, fmt.Sprintf("Missing required evidence types: %v", missing))
		}
	}

	mins := map[types.EvidenceStrength]int{
		types.StrengthWeak:   policy.MinWeakEvidence,
		types.StrengthMedium: policy.MinMediumEvidence,
		types.StrengthStrong: policy.MinStrongEvidence,
	}
	for _, s := range []types.EvidenceStrength{types.StrengthWeak, types.StrengthMedium, types.StrengthStrong} {
		if want := mins[s]; want > 0 && agg.StrengthMix[s] < want {
			out = append(out, fmt.Sprintf(
				"Strength mix below recommendation: %s evidence %d < %d", s, agg.StrengthMix[s], want))
		}
	}

	if maxRatio, ok := policy.Thresholds["max_contradiction_ratio"]; ok && agg.Count > 0 {
		r := float64(agg.Contradictions) / float64(agg.Count)
		if r > maxRatio {
			out = append(out, fmt.Sprintf(
				"Contradiction ratio %.2f exceeds %.2f", r, maxRatio))
		}
	}

	return out
}
