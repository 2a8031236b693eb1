package onboarding

// Clarity and Completeness labels mirror what the upstream quality-assessment
// collaborator emits per conversational turn.
type Clarity string

const (
	ClarityLow    Clarity = "low"
	ClarityMedium Clarity = "medium"
	ClarityHigh   Clarity = "high"
)

type Completeness string

const (
	CompletenessPartial  Completeness = "partial"
	CompletenessComplete Completeness = "complete"
)

// QualityAssessment is produced by the external assessment collaborator for
// a single conversational turn. Consumed as-is, never mutated; provenance is
// not validated here.
type QualityAssessment struct {
	TopicsCovered []string       `json:"topics_covered"`
	Coverage      float64        `json:"coverage"`
	Clarity       Clarity        `json:"clarity"`
	Completeness  Completeness   `json:"completeness"`
	ExtractedData map[string]any `json:"extracted_data"`
}
