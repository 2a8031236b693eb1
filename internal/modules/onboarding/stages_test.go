package onboarding

import "testing"

func TestStageCatalogShape(t *testing.T) {
	stages := Catalog()
	if len(stages) != TotalStages {
		t.Fatalf("catalog has %d stages, want %d", len(stages), TotalStages)
	}
	for i, s := range stages {
		if s.StageNumber != i+1 {
			t.Fatalf("stage at index %d carries number %d", i, s.StageNumber)
		}
		if s.Name == "" || s.Description == "" {
			t.Fatalf("stage %d missing name or description", s.StageNumber)
		}
		if n := len(s.DataToCollect); n < 4 || n > 5 {
			t.Fatalf("stage %d collects %d topics, want 4-5", s.StageNumber, n)
		}
		if len(s.DataToCollect) != len(s.DataTopics) {
			t.Fatalf("stage %d: DataToCollect and DataTopics diverge", s.StageNumber)
		}
		if n := len(s.KeyQuestions); n < 3 || n > 4 {
			t.Fatalf("stage %d has %d key questions, want 3-4", s.StageNumber, n)
		}
		if s.ProgressThreshold < 0.5 || s.ProgressThreshold > 1.0 {
			t.Fatalf("stage %d threshold %v outside [0.5,1.0]", s.StageNumber, s.ProgressThreshold)
		}
	}
}

func TestFinalStageIsStrictest(t *testing.T) {
	stages := Catalog()
	last := stages[TotalStages-1].ProgressThreshold
	for _, s := range stages[:TotalStages-1] {
		if s.ProgressThreshold >= last {
			t.Fatalf("stage %d threshold %v >= final stage %v", s.StageNumber, s.ProgressThreshold, last)
		}
	}
}

func TestStageByNumber(t *testing.T) {
	cases := []struct {
		name   string
		n      int
		wantOK bool
	}{
		{name: "first", n: 1, wantOK: true},
		{name: "last", n: TotalStages, wantOK: true},
		{name: "zero", n: 0, wantOK: false},
		{name: "past_end", n: TotalStages + 1, wantOK: false},
		{name: "negative", n: -3, wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, ok := StageByNumber(tc.n)
			if ok != tc.wantOK {
				t.Fatalf("StageByNumber(%d) ok=%v, want %v", tc.n, ok, tc.wantOK)
			}
			if ok && s.StageNumber != tc.n {
				t.Fatalf("StageByNumber(%d) returned stage %d", tc.n, s.StageNumber)
			}
		})
	}
}

func TestTopicsRequired(t *testing.T) {
	if got := TopicsRequired(1); got != 4 {
		t.Fatalf("TopicsRequired(1)=%d, want 4", got)
	}
	if got := TopicsRequired(TotalStages); got != 5 {
		t.Fatalf("TopicsRequired(%d)=%d, want 5", TotalStages, got)
	}
	if got := TopicsRequired(0); got != 0 {
		t.Fatalf("TopicsRequired(0)=%d, want 0", got)
	}
}

func TestCatalogCopyIsIndependent(t *testing.T) {
	a := Catalog()
	a[0].Name = "tampered"
	b := Catalog()
	if b[0].Name == "tampered" {
		t.Fatal("Catalog() exposes shared mutable state")
	}
}
