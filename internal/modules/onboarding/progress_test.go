package onboarding

import "testing"

func TestPercent(t *testing.T) {
	cases := []struct {
		name      string
		stage     int
		coverage  float64
		completed bool
		want      int
	}{
		{name: "completed_is_always_100", stage: 3, coverage: 0.2, completed: true, want: 100},
		{name: "stage_one_no_coverage", stage: 1, coverage: 0, want: 0},
		{name: "stage_one_full_coverage", stage: 1, coverage: 1, want: 14},
		{name: "stage_four_half_coverage", stage: 4, coverage: 0.5, want: 49},
		{name: "stage_seven_full_coverage_capped", stage: 7, coverage: 1, want: 95},
		{name: "stage_seven_no_coverage", stage: 7, coverage: 0, want: 84},
		{name: "coverage_above_one_clamped", stage: 2, coverage: 1.5, want: 28},
		{name: "negative_coverage_clamped", stage: 2, coverage: -0.5, want: 14},
		{name: "stage_below_range_clamped", stage: 0, coverage: 0.5, want: 7},
		{name: "stage_above_range_clamped", stage: 9, coverage: 0, want: 84},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Percent(tc.stage, tc.coverage, tc.completed); got != tc.want {
				t.Fatalf("Percent(%d,%v,%v)=%d, want %d", tc.stage, tc.coverage, tc.completed, got, tc.want)
			}
		})
	}
}

func TestPercentMonotoneAcrossStages(t *testing.T) {
	// An uncompleted session never moves backwards when the stage advances.
	prev := -1
	for stage := 1; stage <= TotalStages; stage++ {
		got := Percent(stage, 0, false)
		if got < prev {
			t.Fatalf("Percent(stage=%d)=%d dropped below previous %d", stage, got, prev)
		}
		prev = got
	}
}

func TestPercentNeverExceedsCapUncompleted(t *testing.T) {
	for stage := 1; stage <= TotalStages; stage++ {
		for _, cov := range []float64{0, 0.25, 0.5, 0.75, 1} {
			if got := Percent(stage, cov, false); got > 95 {
				t.Fatalf("Percent(%d,%v,false)=%d exceeds 95", stage, cov, got)
			}
		}
	}
}
