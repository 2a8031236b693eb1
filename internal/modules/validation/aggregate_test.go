package validation

import (
	"math"
	"testing"

	types "github.com/venturegate/validation-backend/internal/domain"
)

func sampleEvidence() []types.EvidenceItem {
	return []types.EvidenceItem{
		{Type: types.EvidenceInterview, Strength: types.StrengthStrong, QualityScore: 0.9},
		{Type: types.EvidenceAnalytics, Strength: types.StrengthMedium, QualityScore: 0.8},
		{Type: types.EvidenceExperiment, Strength: types.StrengthStrong, QualityScore: 0.85},
		{Type: types.EvidenceExperiment, Strength: types.StrengthMedium, QualityScore: 0.75},
		{Type: types.EvidenceDesk, Strength: types.StrengthWeak, QualityScore: 0.6},
	}
}

func TestAverageQuality(t *testing.T) {
	cases := []struct {
		name  string
		items []types.EvidenceItem
		want  float64
	}{
		{
			name:  "sample_mean",
			items: sampleEvidence(),
			want:  (0.9 + 0.8 + 0.85 + 0.75 + 0.6) / 5,
		},
		{
			name:  "empty_is_zero",
			items: nil,
			want:  0,
		},
		{
			name: "perfect_scores",
			items: []types.EvidenceItem{
				{Type: types.EvidenceInterview, Strength: types.StrengthStrong, QualityScore: 1.0},
				{Type: types.EvidenceAnalytics, Strength: types.StrengthStrong, QualityScore: 1.0},
			},
			want: 1.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AverageQuality(tc.items)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("AverageQuality=%v, want %v", got, tc.want)
			}
			if got < 0 || got > 1 {
				t.Fatalf("AverageQuality=%v outside [0,1]", got)
			}
		})
	}
}

func TestExperimentCount(t *testing.T) {
	cases := []struct {
		name  string
		items []types.EvidenceItem
		want  int
	}{
		{name: "sample", items: sampleEvidence(), want: 2},
		{name: "empty", items: nil, want: 0},
		{
			name: "no_experiments",
			items: []types.EvidenceItem{
				{Type: types.EvidenceInterview, Strength: types.StrengthStrong, QualityScore: 0.9},
				{Type: types.EvidenceAnalytics, Strength: types.StrengthMedium, QualityScore: 0.8},
			},
			want: 0,
		},
		{
			name: "all_experiments",
			items: []types.EvidenceItem{
				{Type: types.EvidenceExperiment, Strength: types.StrengthStrong, QualityScore: 0.9},
				{Type: types.EvidenceExperiment, Strength: types.StrengthMedium, QualityScore: 0.8},
				{Type: types.EvidenceExperiment, Strength: types.StrengthStrong, QualityScore: 0.85},
			},
			want: 3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExperimentCount(tc.items); got != tc.want {
				t.Fatalf("ExperimentCount=%d, want %d", got, tc.want)
			}
		})
	}
}

func TestStrengthMix(t *testing.T) {
	mix := StrengthMix(sampleEvidence())
	want := map[types.EvidenceStrength]int{
		types.StrengthWeak:   1,
		types.StrengthMedium: 2,
		types.StrengthStrong: 2,
	}
	for k, v := range want {
		if mix[k] != v {
			t.Fatalf("StrengthMix[%s]=%d, want %d", k, mix[k], v)
		}
	}

	// All three keys present even when the list is empty.
	empty := StrengthMix(nil)
	for _, s := range []types.EvidenceStrength{types.StrengthWeak, types.StrengthMedium, types.StrengthStrong} {
		if v, ok := empty[s]; !ok || v != 0 {
			t.Fatalf("StrengthMix(nil)[%s]=%d,%v, want 0,true", s, v, ok)
		}
	}

	// Unknown strengths are ignored rather than counted or rejected.
	odd := StrengthMix([]types.EvidenceItem{{Type: types.EvidenceDesk, Strength: "dubious", QualityScore: 0.5}})
	if odd[types.StrengthWeak]+odd[types.StrengthMedium]+odd[types.StrengthStrong] != 0 {
		t.Fatalf("unknown strength leaked into mix: %v", odd)
	}
}

func TestEvidenceTypeSet(t *testing.T) {
	got := EvidenceTypeSet(sampleEvidence())
	want := []types.EvidenceType{
		types.EvidenceAnalytics,
		types.EvidenceDesk,
		types.EvidenceExperiment,
		types.EvidenceInterview,
	}
	if len(got) != len(want) {
		t.Fatalf("EvidenceTypeSet=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("EvidenceTypeSet=%v, want %v", got, want)
		}
	}

	single := EvidenceTypeSet([]types.EvidenceItem{
		{Type: types.EvidenceInterview, Strength: types.StrengthStrong, QualityScore: 0.9},
		{Type: types.EvidenceInterview, Strength: types.StrengthMedium, QualityScore: 0.8},
	})
	if len(single) != 1 || single[0] != types.EvidenceInterview {
		t.Fatalf("EvidenceTypeSet=%v, want [interview]", single)
	}

	// Missing type fields are treated as absent, not errors.
	if got := EvidenceTypeSet([]types.EvidenceItem{{QualityScore: 0.5}}); len(got) != 0 {
		t.Fatalf("EvidenceTypeSet with empty type=%v, want empty", got)
	}
}

func TestAggregate(t *testing.T) {
	agg := Aggregate(sampleEvidence())
	if agg.Count != 5 {
		t.Fatalf("Count=%d, want 5", agg.Count)
	}
	if agg.Experiments != 2 {
		t.Fatalf("Experiments=%d, want 2", agg.Experiments)
	}
	if agg.Contradictions != 0 {
		t.Fatalf("Contradictions=%d, want 0", agg.Contradictions)
	}
}
