package onboarding

import (
	"testing"
)

func TestParseField(t *testing.T) {
	cases := []struct {
		name          string
		in            any
		wantUncertain bool
	}{
		{name: "plain_string", in: "B2B SaaS", wantUncertain: false},
		{name: "uncertain_string", in: "uncertain: maybe B2C", wantUncertain: true},
		{name: "prefix_mid_string_is_certain", in: "definitely not uncertain: stuff", wantUncertain: false},
		{name: "non_string", in: 42, wantUncertain: false},
		{name: "nil", in: nil, wantUncertain: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseField(tc.in); got.Uncertain != tc.wantUncertain {
				t.Fatalf("ParseField(%v).Uncertain=%v, want %v", tc.in, got.Uncertain, tc.wantUncertain)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	cases := []struct {
		name     string
		existing map[string]any
		incoming map[string]any
		wantKey  string
		want     any
	}{
		{
			name:     "new_key_added",
			existing: map[string]any{},
			incoming: map[string]any{"budget_range": "10-50k"},
			wantKey:  "budget_range",
			want:     "10-50k",
		},
		{
			name:     "certain_overwrites_certain",
			existing: map[string]any{"target_customers": "students"},
			incoming: map[string]any{"target_customers": "young professionals"},
			wantKey:  "target_customers",
			want:     "young professionals",
		},
		{
			name:     "uncertain_never_overwrites_certain",
			existing: map[string]any{"target_customers": "students"},
			incoming: map[string]any{"target_customers": "uncertain: maybe retirees"},
			wantKey:  "target_customers",
			want:     "students",
		},
		{
			name:     "certain_overwrites_uncertain",
			existing: map[string]any{"target_customers": "uncertain: maybe students"},
			incoming: map[string]any{"target_customers": "young professionals"},
			wantKey:  "target_customers",
			want:     "young professionals",
		},
		{
			name:     "uncertain_overwrites_uncertain",
			existing: map[string]any{"target_customers": "uncertain: maybe students"},
			incoming: map[string]any{"target_customers": "uncertain: maybe retirees"},
			wantKey:  "target_customers",
			want:     "uncertain: maybe retirees",
		},
		{
			name:     "nil_incoming_skipped",
			existing: map[string]any{"budget_range": "10-50k"},
			incoming: map[string]any{"budget_range": nil},
			wantKey:  "budget_range",
			want:     "10-50k",
		},
		{
			name:     "empty_string_incoming_skipped",
			existing: map[string]any{"budget_range": "10-50k"},
			incoming: map[string]any{"budget_range": ""},
			wantKey:  "budget_range",
			want:     "10-50k",
		},
		{
			name:     "non_string_incoming_wins",
			existing: map[string]any{"pain_level": "high"},
			incoming: map[string]any{"pain_level": 8},
			wantKey:  "pain_level",
			want:     8,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Merge(tc.existing, tc.incoming)
			if got[tc.wantKey] != tc.want {
				t.Fatalf("Merge()[%q]=%v, want %v", tc.wantKey, got[tc.wantKey], tc.want)
			}
		})
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	existing := map[string]any{"a": "old", "b": "keep"}
	incoming := map[string]any{"a": "new", "c": "uncertain: maybe"}

	out := Merge(existing, incoming)

	if existing["a"] != "old" || existing["b"] != "keep" || len(existing) != 2 {
		t.Fatalf("existing mutated: %v", existing)
	}
	if incoming["a"] != "new" || incoming["c"] != "uncertain: maybe" || len(incoming) != 2 {
		t.Fatalf("incoming mutated: %v", incoming)
	}
	if out["a"] != "new" || out["b"] != "keep" || out["c"] != "uncertain: maybe" {
		t.Fatalf("unexpected merge result: %v", out)
	}

	// The returned map is independent of both inputs.
	out["a"] = "tampered"
	if existing["a"] != "old" || incoming["a"] != "new" {
		t.Fatal("merge result shares storage with an input")
	}
}

func TestMergeSkipsEmptyOnFreshKey(t *testing.T) {
	out := Merge(map[string]any{}, map[string]any{"x": "", "y": nil, "z": "value"})
	if _, ok := out["x"]; ok {
		t.Fatal("empty string stored for a fresh key")
	}
	if _, ok := out["y"]; ok {
		t.Fatal("nil stored for a fresh key")
	}
	if out["z"] != "value" {
		t.Fatalf("z=%v, want value", out["z"])
	}
}
