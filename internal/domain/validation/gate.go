package validation

// GateID names a validation checkpoint a venture must pass to advance.
type GateID string

const (
	GateDesirability GateID = "DESIRABILITY"
	GateFeasibility  GateID = "FEASIBILITY"
	GateViability    GateID = "VIABILITY"
	GateScale        GateID = "SCALE"
)

// GateOrder is the canonical progression sequence.
var GateOrder = []GateID{GateDesirability, GateFeasibility, GateViability, GateScale}

func (g GateID) Valid() bool {
	switch g {
	case GateDesirability, GateFeasibility, GateViability, GateScale:
		return true
	}
	return false
}

// GateStatus is three-valued on purpose: Pending is the state before any
// evaluation has meaningfully run, Failed is the state after evaluation
// determined insufficiency.
type GateStatus string

const (
	StatusPending GateStatus = "Pending"
	StatusPassed  GateStatus = "Passed"
	StatusFailed  GateStatus = "Failed"
)

// GatePolicy holds the thresholds a gate evaluation is judged against.
// Later gates are never weaker than earlier gates on any comparable
// dimension; that is a configuration-time convention verified by tests,
// not enforced at runtime.
type GatePolicy struct {
	Gate              GateID             `json:"gate" yaml:"gate"`
	MinExperiments    int                `json:"min_experiments" yaml:"min_experiments"`
	MinWeakEvidence   int                `json:"min_weak_evidence" yaml:"min_weak_evidence"`
	MinMediumEvidence int                `json:"min_medium_evidence" yaml:"min_medium_evidence"`
	MinStrongEvidence int                `json:"min_strong_evidence" yaml:"min_strong_evidence"`
	MinTotalEvidence  int                `json:"min_total_evidence" yaml:"min_total_evidence"`
	MinQuality        float64            `json:"min_quality" yaml:"min_quality"`
	RequiredTypes     []EvidenceType     `json:"required_types" yaml:"required_types"`
	Thresholds        map[string]float64 `json:"thresholds" yaml:"thresholds"`
	RequiresApproval  bool               `json:"requires_approval" yaml:"requires_approval"`
}
