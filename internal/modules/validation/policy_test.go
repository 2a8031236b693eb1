package validation

import (
	"os"
	"path/filepath"
	"testing"

	types "github.com/venturegate/validation-backend/internal/domain"
)

func TestDefaultPolicy(t *testing.T) {
	t.Run("known_gate", func(t *testing.T) {
		p, ok := DefaultPolicy(types.GateDesirability)
		if !ok {
			t.Fatal("DESIRABILITY not recognized")
		}
		if p.MinQuality != 0.70 || p.MinExperiments != 5 || p.MinTotalEvidence != 10 {
			t.Fatalf("unexpected DESIRABILITY defaults: %+v", p)
		}
	})

	t.Run("unknown_gate_falls_back_least_restrictive", func(t *testing.T) {
		p, ok := DefaultPolicy(types.GateID("MOONSHOT"))
		if ok {
			t.Fatal("unknown gate reported as recognized")
		}
		want, _ := DefaultPolicy(types.GateDesirability)
		if p.MinQuality != want.MinQuality || p.MinTotalEvidence != want.MinTotalEvidence {
			t.Fatalf("fallback=%+v, want DESIRABILITY defaults %+v", p, want)
		}
	})

	t.Run("returned_policy_is_a_copy", func(t *testing.T) {
		a, _ := DefaultPolicy(types.GateScale)
		a.Thresholds["max_contradiction_ratio"] = 0.99
		a.RequiredTypes[0] = types.EvidenceType("tampered")
		b, _ := DefaultPolicy(types.GateScale)
		if b.Thresholds["max_contradiction_ratio"] == 0.99 {
			t.Fatal("mutating a returned policy leaked into the defaults")
		}
		if b.RequiredTypes[0] == "tampered" {
			t.Fatal("mutating returned RequiredTypes leaked into the defaults")
		}
	})
}

// Later gates must be at least as strict as earlier gates on every numeric
// dimension. Nothing in the evaluator enforces this, so the defaults are
// pinned here.
func TestDefaultPolicyMonotonicity(t *testing.T) {
	for i := 1; i < len(types.GateOrder); i++ {
		prev, _ := DefaultPolicy(types.GateOrder[i-1])
		cur, _ := DefaultPolicy(types.GateOrder[i])
		if cur.MinQuality < prev.MinQuality {
			t.Fatalf("%s MinQuality %v < %s %v", cur.Gate, cur.MinQuality, prev.Gate, prev.MinQuality)
		}
		if cur.MinExperiments < prev.MinExperiments {
			t.Fatalf("%s MinExperiments %d < %s %d", cur.Gate, cur.MinExperiments, prev.Gate, prev.MinExperiments)
		}
		if cur.MinTotalEvidence < prev.MinTotalEvidence {
			t.Fatalf("%s MinTotalEvidence %d < %s %d", cur.Gate, cur.MinTotalEvidence, prev.Gate, prev.MinTotalEvidence)
		}
	}
}

func TestApplyOverride(t *testing.T) {
	base, _ := DefaultPolicy(types.GateDesirability)

	t.Run("empty_override_is_identity", func(t *testing.T) {
		got := ApplyOverride(base, OverrideFields{})
		if got.MinQuality != base.MinQuality || got.MinExperiments != base.MinExperiments ||
			got.MinTotalEvidence != base.MinTotalEvidence || len(got.RequiredTypes) != len(base.RequiredTypes) {
			t.Fatalf("empty override changed the policy: %+v vs %+v", got, base)
		}
	})

	t.Run("set_fields_win", func(t *testing.T) {
		q := 0.90
		exp := 2
		got := ApplyOverride(base, OverrideFields{MinQuality: &q, MinExperiments: &exp})
		if got.MinQuality != 0.90 || got.MinExperiments != 2 {
			t.Fatalf("override not applied: %+v", got)
		}
		if got.MinTotalEvidence != base.MinTotalEvidence {
			t.Fatalf("unset field changed: %d vs %d", got.MinTotalEvidence, base.MinTotalEvidence)
		}
	})

	t.Run("zero_value_override_is_honored", func(t *testing.T) {
		zero := 0
		got := ApplyOverride(base, OverrideFields{MinExperiments: &zero})
		if got.MinExperiments != 0 {
			t.Fatalf("explicit zero override lost: %d", got.MinExperiments)
		}
	})

	t.Run("required_types_replaced_wholesale", func(t *testing.T) {
		got := ApplyOverride(base, OverrideFields{RequiredTypes: []string{"experiment"}})
		if len(got.RequiredTypes) != 1 || got.RequiredTypes[0] != types.EvidenceExperiment {
			t.Fatalf("RequiredTypes=%v, want [experiment]", got.RequiredTypes)
		}
	})

	t.Run("thresholds_merged_per_key", func(t *testing.T) {
		got := ApplyOverride(base, OverrideFields{Thresholds: map[string]float64{"max_contradiction_ratio": 0.10}})
		if got.Thresholds["max_contradiction_ratio"] != 0.10 {
			t.Fatalf("threshold override lost: %v", got.Thresholds)
		}
	})

	t.Run("base_not_mutated", func(t *testing.T) {
		q := 0.99
		_ = ApplyOverride(base, OverrideFields{MinQuality: &q, Thresholds: map[string]float64{"max_contradiction_ratio": 0.01}})
		if base.MinQuality == 0.99 || base.Thresholds["max_contradiction_ratio"] == 0.01 {
			t.Fatalf("ApplyOverride mutated its base: %+v", base)
		}
	})
}

func TestLoadPolicyFile(t *testing.T) {
	writeTemp := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "policies.yaml")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write temp policy file: %v", err)
		}
		return path
	}

	t.Run("valid_file", func(t *testing.T) {
		path := writeTemp(t, `
gates:
  DESIRABILITY:
    min_quality: 0.65
    min_experiments: 3
  VIABILITY:
    requires_approval: false
`)
		got, err := LoadPolicyFile(path)
		if err != nil {
			t.Fatalf("LoadPolicyFile: %v", err)
		}
		des, ok := got[types.GateDesirability]
		if !ok || des.MinQuality == nil || *des.MinQuality != 0.65 {
			t.Fatalf("DESIRABILITY override missing or wrong: %+v", des)
		}
		via, ok := got[types.GateViability]
		if !ok || via.RequiresApproval == nil || *via.RequiresApproval {
			t.Fatalf("VIABILITY override missing or wrong: %+v", via)
		}
	})

	t.Run("unknown_gate_rejected", func(t *testing.T) {
		path := writeTemp(t, `
gates:
  PIVOT:
    min_quality: 0.5
`)
		if _, err := LoadPolicyFile(path); err == nil {
			t.Fatal("unknown gate accepted")
		}
	})

	t.Run("missing_file", func(t *testing.T) {
		if _, err := LoadPolicyFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("missing file accepted")
		}
	})
}
