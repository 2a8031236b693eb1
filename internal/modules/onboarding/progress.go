package onboarding

import "math"

const (
	// Each stage owns an equal slice of the bar; with 7 stages that is 14
	// points per stage, which tops out at 98 before the cap.
	pointsPerStage = 14
	// progressCap reserves the final stretch of the bar: completion is a
	// separately-triggered event, so an in-flight conversation never shows
	// more than 95%.
	progressCap = 95
)

// Percent maps (stage, within-stage coverage, completion) to a 0-100 display
// percentage. Completed sessions always report 100. Otherwise the value has
// a strictly higher baseline per stage, grows monotonically with coverage
// inside a stage, and is capped at progressCap.
func Percent(stage int, coverage float64, completed bool) int {
	if completed {
		return 100
	}
	if stage < 1 {
		stage = 1
	}
	if stage > TotalStages {
		stage = TotalStages
	}
	coverage = clamp01(coverage)

	p := int(math.Round(float64(stage-1)*pointsPerStage + coverage*pointsPerStage))
	if p > progressCap {
		return progressCap
	}
	if p < 0 {
		return 0
	}
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
