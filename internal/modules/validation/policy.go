package validation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	types "github.com/venturegate/validation-backend/internal/domain"
)

// Built-in gate policies. Later gates are stricter than earlier gates on
// every comparable dimension; TestDefaultPolicyMonotonicity keeps that
// honest since nothing enforces it at runtime.
var defaultPolicies = map[types.GateID]types.GatePolicy{
	types.GateDesirability: {
		Gate:              types.GateDesirability,
		MinExperiments:    5,
		MinWeakEvidence:   0,
		MinMediumEvidence: 3,
		MinStrongEvidence: 1,
		MinTotalEvidence:  10,
		MinQuality:        0.70,
		RequiredTypes:     []types.EvidenceType{types.EvidenceInterview, types.EvidenceAnalytics},
		Thresholds:        map[string]float64{"max_contradiction_ratio": 0.40},
		RequiresApproval:  false,
	},
	types.GateFeasibility: {
		Gate:              types.GateFeasibility,
		MinExperiments:    8,
		MinWeakEvidence:   0,
		MinMediumEvidence: 4,
		MinStrongEvidence: 2,
		MinTotalEvidence:  15,
		MinQuality:        0.75,
		RequiredTypes:     []types.EvidenceType{types.EvidenceInterview, types.EvidenceAnalytics, types.EvidenceExperiment},
		Thresholds:        map[string]float64{"max_contradiction_ratio": 0.30},
		RequiresApproval:  false,
	},
	types.GateViability: {
		Gate:              types.GateViability,
		MinExperiments:    12,
		MinWeakEvidence:   0,
		MinMediumEvidence: 5,
		MinStrongEvidence: 3,
		MinTotalEvidence:  20,
		MinQuality:        0.80,
		RequiredTypes:     []types.EvidenceType{types.EvidenceAnalytics, types.EvidenceExperiment},
		Thresholds:        map[string]float64{"max_contradiction_ratio": 0.25},
		RequiresApproval:  true,
	},
	types.GateScale: {
		Gate:              types.GateScale,
		MinExperiments:    15,
		MinWeakEvidence:   0,
		MinMediumEvidence: 6,
		MinStrongEvidence: 4,
		MinTotalEvidence:  30,
		MinQuality:        0.85,
		RequiredTypes:     []types.EvidenceType{types.EvidenceAnalytics, types.EvidenceExperiment},
		Thresholds:        map[string]float64{"max_contradiction_ratio": 0.20},
		RequiresApproval:  true,
	},
}

// DefaultPolicy returns the built-in policy for gate. An unknown gate falls
// back to the least-restrictive default (the DESIRABILITY policy) so a
// misconfiguration degrades progress checks instead of blocking every
// evaluation; ok reports whether the gate was recognized so callers can log
// the fallback.
func DefaultPolicy(gate types.GateID) (types.GatePolicy, bool) {
	if p, ok := defaultPolicies[gate]; ok {
		return clonePolicy(p), true
	}
	return clonePolicy(defaultPolicies[types.GateDesirability]), false
}

func clonePolicy(p types.GatePolicy) types.GatePolicy {
	out := p
	out.RequiredTypes = append([]types.EvidenceType(nil), p.RequiredTypes...)
	out.Thresholds = make(map[string]float64, len(p.Thresholds))
	for k, v := range p.Thresholds {
		out.Thresholds[k] = v
	}
	return out
}

// OverrideFields is the partial-policy shape stored per tenant (and accepted
// in the optional policy file). Pointer fields distinguish "not overridden"
// from a deliberate zero.
type OverrideFields struct {
	MinExperiments    *int               `json:"min_experiments,omitempty" yaml:"min_experiments,omitempty"`
	MinWeakEvidence   *int               `json:"min_weak_evidence,omitempty" yaml:"min_weak_evidence,omitempty"`
	MinMediumEvidence *int               `json:"min_medium_evidence,omitempty" yaml:"min_medium_evidence,omitempty"`
	MinStrongEvidence *int               `json:"min_strong_evidence,omitempty" yaml:"min_strong_evidence,omitempty"`
	MinTotalEvidence  *int               `json:"min_total_evidence,omitempty" yaml:"min_total_evidence,omitempty"`
	MinQuality        *float64           `json:"min_quality,omitempty" yaml:"min_quality,omitempty"`
	RequiredTypes     []string           `json:"required_types,omitempty" yaml:"required_types,omitempty"`
	Thresholds        map[string]float64 `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
	RequiresApproval  *bool              `json:"requires_approval,omitempty" yaml:"requires_approval,omitempty"`
}

// ApplyOverride merges the set fields of an override over base and returns
// the merged policy. base is not mutated.
func ApplyOverride(base types.GatePolicy, o OverrideFields) types.GatePolicy {
	out := clonePolicy(base)
	if o.MinExperiments != nil {
		out.MinExperiments = *o.MinExperiments
	}
	if o.MinWeakEvidence != nil {
		out.MinWeakEvidence = *o.MinWeakEvidence
	}
	if o.MinMediumEvidence != nil {
		out.MinMediumEvidence = *o.MinMediumEvidence
	}
	if o.MinStrongEvidence != nil {
		out.MinStrongEvidence = *o.MinStrongEvidence
	}
	if o.MinTotalEvidence != nil {
		out.MinTotalEvidence = *o.MinTotalEvidence
	}
	if o.MinQuality != nil {
		out.MinQuality = *o.MinQuality
	}
	if o.RequiredTypes != nil {
		out.RequiredTypes = out.RequiredTypes[:0]
		for _, t := range o.RequiredTypes {
			out.RequiredTypes = append(out.RequiredTypes, types.EvidenceType(t))
		}
	}
	for k, v := range o.Thresholds {
		out.Thresholds[k] = v
	}
	if o.RequiresApproval != nil {
		out.RequiresApproval = *o.RequiresApproval
	}
	return out
}

type policyFile struct {
	Gates map[types.GateID]OverrideFields `yaml:"gates"`
}

// LoadPolicyFile reads deployment-level policy adjustments from a YAML file.
// These layer between the built-in defaults and tenant overrides.
func LoadPolicyFile(path string) (map[types.GateID]OverrideFields, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	var pf policyFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}
	for gate := range pf.Gates {
		if !gate.Valid() {
			return nil, fmt.Errorf("policy file: unknown gate %q", gate)
		}
	}
	return pf.Gates, nil
}
