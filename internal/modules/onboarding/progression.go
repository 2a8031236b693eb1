package onboarding

import (
	types "github.com/venturegate/validation-backend/internal/domain"
)

const (
	// coverageToAdvance is the primary topic-coverage rule.
	coverageToAdvance = 0.75
	// Fallback rule: a well-engaged conversation that keeps circling the
	// same topics should not stall forever, so after enough messages a
	// looser coverage bar applies.
	fallbackMinMessages = 6
	fallbackCoverage    = 0.6
)

// ShouldAdvance decides whether a conversation moves to its next stage.
// messageCount is optional; the message-based fallback is only consulted
// when it is supplied. Any stage at or beyond the final stage — or outside
// [1,TotalStages] — never advances: the controller cannot signal movement
// past the last defined stage.
func ShouldAdvance(a types.QualityAssessment, currentStage int, messageCount *int, topicsRequired int) bool {
	if currentStage < 1 || currentStage >= TotalStages {
		return false
	}

	coverage := coverageOf(a, topicsRequired)
	if coverage >= coverageToAdvance {
		return true
	}
	if messageCount != nil && *messageCount >= fallbackMinMessages && coverage >= fallbackCoverage {
		return true
	}
	return false
}

// IsComplete is defined as ShouldAdvance at the final stage. Because the
// terminal-stage rule unconditionally returns false there, this path can
// never report completion; completion is signaled through an explicit
// mark-complete action instead (see services.OnboardingService.MarkComplete).
// Kept as-is deliberately — do not special-case the final stage here.
func IsComplete(a types.QualityAssessment, currentStage int, topicsRequired int) bool {
	if currentStage != TotalStages {
		return false
	}
	return ShouldAdvance(a, currentStage, nil, topicsRequired)
}

// coverageOf prefers recomputing coverage from topicsCovered against the
// stage's requirement; it falls back to the collaborator-supplied ratio when
// the requirement is unknown.
func coverageOf(a types.QualityAssessment, topicsRequired int) float64 {
	if topicsRequired > 0 {
		return float64(len(a.TopicsCovered)) / float64(topicsRequired)
	}
	return a.Coverage
}
