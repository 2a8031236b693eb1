package validation

import (
	types "github.com/venturegate/validation-backend/internal/domain"
)

// NextGate returns the gate after g in the canonical sequence. ok is false
// for SCALE (the final gate) and for unknown gates.
func NextGate(g types.GateID) (types.GateID, bool) {
	for i, gate := range types.GateOrder {
		if gate == g {
			if i+1 < len(types.GateOrder) {
				return types.GateOrder[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// CanProgress reports whether a venture may move past gate g: only a Passed
// status allows progression, and nothing progresses beyond SCALE.
func CanProgress(g types.GateID, status types.GateStatus) bool {
	if status != types.StatusPassed {
		return false
	}
	_, ok := NextGate(g)
	return ok
}
