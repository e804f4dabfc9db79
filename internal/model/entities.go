package model

type GlucoseReading struct {
	ID    int64   `json:"id,omitempty"`
	Date  Day     `json:"date"`
	Value float64 `json:"value"`
}

type NutritionEntry struct {
	ID       int64   `json:"id,omitempty"`
	Date     Day     `json:"date"`
	Name     string  `json:"name"`
	Servings float64 `json:"servings"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Calories float64 `json:"calories"`
}

// Macros returns the entry's stored (already scaled) nutrient amounts.
func (n NutritionEntry) Macros() Macros {
	return Macros{Carbs: n.Carbs, Protein: n.Protein, Fat: n.Fat, Fiber: n.Fiber, Calories: n.Calories}
}

// NewNutritionEntry scales per-serving amounts by servings. The result is
// stored denormalized; later edits to the source food do not affect it.
func NewNutritionEntry(date Day, name string, servings float64, perServing Macros) NutritionEntry {
	m := perServing.Scale(servings)
	return NutritionEntry{
		Date:     date,
		Name:     name,
		Servings: servings,
		Carbs:    m.Carbs,
		Protein:  m.Protein,
		Fat:      m.Fat,
		Fiber:    m.Fiber,
		Calories: m.Calories,
	}
}

// CaloriesPerMinute is the fallback burn rate when an activity has no
// recorded calories.
const CaloriesPerMinute = 5

type ActivityEntry struct {
	ID       int64    `json:"id,omitempty"`
	Date     Day      `json:"date"`
	Type     string   `json:"type"`
	Minutes  float64  `json:"minutes"`
	Calories *float64 `json:"calories"`
}

// BurnedCalories returns the recorded calories, or minutes x 5 when none
// were recorded.
func (a ActivityEntry) BurnedCalories() float64 {
	if a.Calories != nil && *a.Calories > 0 {
		return *a.Calories
	}
	return a.Minutes * CaloriesPerMinute
}

type WeightEntry struct {
	ID     int64   `json:"id,omitempty"`
	Date   Day     `json:"date"`
	Weight float64 `json:"weight"`
}

type RiskAssessment struct {
	Probability float64 `json:"probability"`
	RiskLevel   int     `json:"risk_level"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type Streak struct {
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	LastActivityDate string `json:"last_activity_date,omitempty"`
}

type GoalInsight struct {
	Category string `json:"category"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// GoalAnalysis is the AI assessment of recent progress against goals.
type GoalAnalysis struct {
	OverallStatus   string        `json:"overall_status"`
	Summary         string        `json:"summary"`
	Insights        []GoalInsight `json:"insights"`
	Recommendations []string      `json:"recommendations"`
}
