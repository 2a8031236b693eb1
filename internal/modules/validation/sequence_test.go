package validation

import (
	"testing"

	types "github.com/venturegate/validation-backend/internal/domain"
)

func TestNextGate(t *testing.T) {
	cases := []struct {
		name   string
		gate   types.GateID
		want   types.GateID
		wantOK bool
	}{
		{name: "desirability", gate: types.GateDesirability, want: types.GateFeasibility, wantOK: true},
		{name: "feasibility", gate: types.GateFeasibility, want: types.GateViability, wantOK: true},
		{name: "viability", gate: types.GateViability, want: types.GateScale, wantOK: true},
		{name: "scale_is_terminal", gate: types.GateScale, wantOK: false},
		{name: "unknown", gate: types.GateID("PIVOT"), wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextGate(tc.gate)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("NextGate(%s)=(%s,%v), want (%s,%v)", tc.gate, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestCanProgress(t *testing.T) {
	cases := []struct {
		name   string
		gate   types.GateID
		status types.GateStatus
		want   bool
	}{
		{name: "passed_mid_sequence", gate: types.GateDesirability, status: types.StatusPassed, want: true},
		{name: "failed_blocks", gate: types.GateDesirability, status: types.StatusFailed, want: false},
		{name: "pending_blocks", gate: types.GateFeasibility, status: types.StatusPending, want: false},
		{name: "passed_scale_is_final", gate: types.GateScale, status: types.StatusPassed, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanProgress(tc.gate, tc.status); got != tc.want {
				t.Fatalf("CanProgress(%s,%s)=%v, want %v", tc.gate, tc.status, got, tc.want)
			}
		})
	}
}
