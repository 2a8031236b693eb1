package validation

import (
	"math"
	"strings"
	"testing"

	types "github.com/venturegate/validation-backend/internal/domain"
)

func testPolicy() types.GatePolicy {
	return types.GatePolicy{
		Gate:             types.GateDesirability,
		MinExperiments:   5,
		MinTotalEvidence: 10,
		MinQuality:       0.70,
	}
}

func TestEvaluateBoundaries(t *testing.T) {
	cases := []struct {
		name       string
		state      types.ValidationState
		wantStatus types.GateStatus
		wantReason string
	}{
		{
			name: "exact_thresholds_pass",
			state: types.ValidationState{
				EvidenceQuality:  0.70,
				ExperimentsCount: 5,
				EvidenceCount:    10,
			},
			wantStatus: types.StatusPassed,
		},
		{
			name: "quality_just_under_fails",
			state: types.ValidationState{
				EvidenceQuality:  0.69,
				ExperimentsCount: 5,
				EvidenceCount:    10,
			},
			wantStatus: types.StatusFailed,
			wantReason: "Evidence quality too low",
		},
		{
			name: "experiments_under_fails",
			state: types.ValidationState{
				EvidenceQuality:  0.80,
				ExperimentsCount: 4,
				EvidenceCount:    12,
			},
			wantStatus: types.StatusFailed,
			wantReason: "Insufficient experiments",
		},
		{
			name: "total_evidence_under_fails",
			state: types.ValidationState{
				EvidenceQuality:  0.80,
				ExperimentsCount: 6,
				EvidenceCount:    9,
			},
			wantStatus: types.StatusFailed,
			wantReason: "Insufficient total evidence",
		},
		{
			name:       "fresh_state_is_pending_not_failed",
			state:      types.ValidationState{},
			wantStatus: types.StatusPending,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.state, testPolicy())
			if got.Status != tc.wantStatus {
				t.Fatalf("status=%s, want %s (reasons=%v)", got.Status, tc.wantStatus, got.Reasons)
			}
			if tc.wantStatus == types.StatusPassed && len(got.Reasons) != 0 {
				t.Fatalf("passed evaluation carries reasons: %v", got.Reasons)
			}
			if tc.wantReason != "" {
				found := false
				for _, r := range got.Reasons {
					if strings.Contains(r, tc.wantReason) {
						found = true
					}
				}
				if !found {
					t.Fatalf("reasons=%v, want one containing %q", got.Reasons, tc.wantReason)
				}
			}
		})
	}
}

func TestReadiness(t *testing.T) {
	policy := testPolicy()

	t.Run("zero_state", func(t *testing.T) {
		got := Readiness(types.ValidationState{}, policy)
		if got != 0 {
			t.Fatalf("Readiness=%v, want 0", got)
		}
	})

	t.Run("full_state_is_one", func(t *testing.T) {
		got := Readiness(types.ValidationState{
			EvidenceQuality:  0.9,
			ExperimentsCount: 8,
			EvidenceCount:    20,
		}, policy)
		if got != 1.0 {
			t.Fatalf("Readiness=%v, want 1.0", got)
		}
	})

	t.Run("partial_state_mean_of_ratios", func(t *testing.T) {
		// quality 0.35/0.70=0.5, experiments 1/5=0.2, evidence 5/10=0.5
		got := Readiness(types.ValidationState{
			EvidenceQuality:  0.35,
			ExperimentsCount: 1,
			EvidenceCount:    5,
		}, policy)
		want := (0.5 + 0.2 + 0.5) / 3
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("Readiness=%v, want %v", got, want)
		}
	})

	t.Run("zero_requirement_is_trivially_satisfied", func(t *testing.T) {
		lenient := types.GatePolicy{Gate: types.GateDesirability}
		got := Readiness(types.ValidationState{}, lenient)
		if got != 1.0 {
			t.Fatalf("Readiness against zero-requirement policy=%v, want 1.0", got)
		}
	})

	t.Run("monotone_in_evidence", func(t *testing.T) {
		few := Readiness(types.ValidationState{EvidenceQuality: 0.7, ExperimentsCount: 0, EvidenceCount: 1}, policy)
		more := Readiness(types.ValidationState{EvidenceQuality: 0.7, ExperimentsCount: 1, EvidenceCount: 3}, policy)
		if more <= few {
			t.Fatalf("readiness should grow with evidence: few=%v more=%v", few, more)
		}
	})
}

func TestAdvisories(t *testing.T) {
	policy, _ := DefaultPolicy(types.GateDesirability)

	t.Run("missing_required_type", func(t *testing.T) {
		agg := Aggregate([]types.EvidenceItem{
			{Type: types.EvidenceInterview, Strength: types.StrengthStrong, QualityScore: 0.9},
			{Type: types.EvidenceExperiment, Strength: types.StrengthMedium, QualityScore: 0.8},
		})
		warnings := Advisories(agg, policy)
		found := false
		for _, w := range warnings {
			if strings.Contains(w, "Missing required evidence types") && strings.Contains(w, "analytics") {
				found = true
			}
		}
		if !found {
			t.Fatalf("warnings=%v, want missing analytics advisory", warnings)
		}
	})

	t.Run("advisories_never_flip_pass", func(t *testing.T) {
		// State passes the three criteria even though the advisory mix is off.
		state := types.ValidationState{EvidenceQuality: 0.9, ExperimentsCount: 6, EvidenceCount: 12}
		got := Evaluate(state, policy)
		if got.Status != types.StatusPassed {
			t.Fatalf("status=%s, want Passed", got.Status)
		}
	})

	t.Run("contradiction_ratio", func(t *testing.T) {
		agg := Aggregate([]types.EvidenceItem{
			{Type: types.EvidenceInterview, Strength: types.StrengthStrong, QualityScore: 0.9, IsContradiction: true},
			{Type: types.EvidenceAnalytics, Strength: types.StrengthMedium, QualityScore: 0.8},
		})
		warnings := Advisories(agg, policy)
		found := false
		for _, w := range warnings {
			if strings.Contains(w, "Contradiction ratio") {
				found = true
			}
		}
		if !found {
			t.Fatalf("warnings=%v, want contradiction advisory", warnings)
		}
	})
}
