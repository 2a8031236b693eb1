package onboarding

import (
	"fmt"
)

// The onboarding conversation walks a fixed catalog of 7 stages. The catalog
// is immutable and validated once at package load; a broken catalog is a
// programming error, not a runtime condition.

const TotalStages = 7

type DataTopic struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type StageConfig struct {
	StageNumber       int
	Name              string
	Description       string
	KeyQuestions      []string
	DataToCollect     []string
	DataTopics        []DataTopic
	ProgressThreshold float64
}

var stageCatalog = mustCatalog([]StageConfig{
	{
		StageNumber: 1,
		Name:        "Welcome & Introduction",
		Description: "Getting to know you and your business idea",
		KeyQuestions: []string{
			"What business idea are you most excited about?",
			"What inspired this idea?",
			"What stage is your business currently in?",
		},
		DataTopics: []DataTopic{
			{Key: "business_concept", Label: "Business concept"},
			{Key: "inspiration", Label: "Inspiration"},
			{Key: "current_stage", Label: "Current stage"},
			{Key: "motivation", Label: "Founder motivation"},
		},
		ProgressThreshold: 0.80,
	},
	{
		StageNumber: 2,
		Name:        "Customer Discovery",
		Description: "Understanding your target customers",
		KeyQuestions: []string{
			"Who do you think would be most interested in this solution?",
			"What specific group of people have this problem most acutely?",
			"How do these customers currently solve this problem?",
		},
		DataTopics: []DataTopic{
			{Key: "target_customers", Label: "Target customers"},
			{Key: "customer_segments", Label: "Customer segments"},
			{Key: "current_solutions", Label: "Current solutions"},
			{Key: "customer_channels", Label: "Customer channels"},
		},
		ProgressThreshold: 0.75,
	},
	{
		StageNumber: 3,
		Name:        "Problem Definition",
		Description: "Defining the core problem you're solving",
		KeyQuestions: []string{
			"What specific problem does your solution address?",
			"How painful is this problem for your customers?",
			"How often do they encounter this problem?",
			"What does the problem cost them today?",
		},
		DataTopics: []DataTopic{
			{Key: "problem_description", Label: "Problem description"},
			{Key: "pain_level", Label: "Pain level"},
			{Key: "frequency", Label: "Frequency"},
			{Key: "cost_of_problem", Label: "Cost of the problem"},
		},
		ProgressThreshold: 0.80,
	},
	{
		StageNumber: 4,
		Name:        "Solution Validation",
		Description: "Exploring your proposed solution",
		KeyQuestions: []string{
			"How does your solution solve this problem?",
			"What makes your approach unique?",
			"What's your key differentiator?",
		},
		DataTopics: []DataTopic{
			{Key: "solution_description", Label: "Solution description"},
			{Key: "unique_value_prop", Label: "Unique value proposition"},
			{Key: "differentiation", Label: "Differentiation"},
			{Key: "feasibility_risks", Label: "Feasibility risks"},
		},
		ProgressThreshold: 0.75,
	},
	{
		StageNumber: 5,
		Name:        "Competitive Analysis",
		Description: "Understanding the competitive landscape",
		KeyQuestions: []string{
			"Who else is solving this problem?",
			"What alternatives do customers have?",
			"What would make customers switch to your solution?",
		},
		DataTopics: []DataTopic{
			{Key: "competitors", Label: "Competitors"},
			{Key: "alternatives", Label: "Alternatives"},
			{Key: "switching_barriers", Label: "Switching barriers"},
			{Key: "market_positioning", Label: "Market positioning"},
		},
		ProgressThreshold: 0.70,
	},
	{
		StageNumber: 6,
		Name:        "Resources & Constraints",
		Description: "Assessing your available resources",
		KeyQuestions: []string{
			"What's your budget for getting started?",
			"What skills and resources do you have available?",
			"What are your main constraints?",
		},
		DataTopics: []DataTopic{
			{Key: "budget_range", Label: "Budget range"},
			{Key: "available_resources", Label: "Available resources"},
			{Key: "constraints", Label: "Constraints"},
			{Key: "team_skills", Label: "Team skills"},
		},
		ProgressThreshold: 0.75,
	},
	{
		StageNumber: 7,
		Name:        "Goals & Next Steps",
		Description: "Setting strategic goals and priorities",
		KeyQuestions: []string{
			"What do you want to achieve in the next 3 months?",
			"How will you measure success?",
			"What's your biggest priority right now?",
			"What's the riskiest assumption you still need to test?",
		},
		DataTopics: []DataTopic{
			{Key: "short_term_goals", Label: "Short-term goals"},
			{Key: "success_metrics", Label: "Success metrics"},
			{Key: "priorities", Label: "Priorities"},
			{Key: "biggest_risk", Label: "Biggest risk"},
			{Key: "support_needed", Label: "Support needed"},
		},
		ProgressThreshold: 0.85,
	},
})

func mustCatalog(stages []StageConfig) []StageConfig {
	for i := range stages {
		s := &stages[i]
		s.DataToCollect = make([]string, 0, len(s.DataTopics))
		for _, t := range s.DataTopics {
			s.DataToCollect = append(s.DataToCollect, t.Key)
		}
	}
	if err := validateCatalog(stages); err != nil {
		panic(err)
	}
	return stages
}

func validateCatalog(stages []StageConfig) error {
	if len(stages) != TotalStages {
		return fmt.Errorf("stage catalog: want %d stages, have %d", TotalStages, len(stages))
	}
	maxThreshold := 0.0
	maxStage := 0
	for i, s := range stages {
		if s.StageNumber != i+1 {
			return fmt.Errorf("stage catalog: stage numbers must be contiguous 1..%d, got %d at index %d", TotalStages, s.StageNumber, i)
		}
		if len(s.DataToCollect) < 4 || len(s.DataToCollect) > 5 {
			return fmt.Errorf("stage %d: want 4-5 data topics, have %d", s.StageNumber, len(s.DataToCollect))
		}
		if len(s.KeyQuestions) < 3 || len(s.KeyQuestions) > 4 {
			return fmt.Errorf("stage %d: want 3-4 key questions, have %d", s.StageNumber, len(s.KeyQuestions))
		}
		if s.ProgressThreshold < 0.5 || s.ProgressThreshold > 1.0 {
			return fmt.Errorf("stage %d: progress threshold %.2f outside [0.5,1.0]", s.StageNumber, s.ProgressThreshold)
		}
		if s.ProgressThreshold > maxThreshold {
			maxThreshold = s.ProgressThreshold
			maxStage = s.StageNumber
		}
	}
	if maxStage != TotalStages {
		return fmt.Errorf("stage catalog: stage %d must carry the highest progress threshold, stage %d does", TotalStages, maxStage)
	}
	return nil
}

// StageByNumber returns the catalog entry for n. The returned config shares
// no mutable state with the catalog beyond the slices, which callers treat
// as read-only.
func StageByNumber(n int) (StageConfig, bool) {
	if n < 1 || n > TotalStages {
		return StageConfig{}, false
	}
	return stageCatalog[n-1], true
}

// TopicsRequired is the number of data topics a stage expects covered.
func TopicsRequired(n int) int {
	s, ok := StageByNumber(n)
	if !ok {
		return 0
	}
	return len(s.DataToCollect)
}

// Catalog returns the full stage catalog in order.
func Catalog() []StageConfig {
	out := make([]StageConfig, len(stageCatalog))
	copy(out, stageCatalog)
	return out
}
