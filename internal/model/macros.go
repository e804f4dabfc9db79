package model

import "math"

// Macros is a bundle of nutrient amounts: grams for carbs, protein, fat and
// fiber, kcal for calories.
type Macros struct {
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Calories float64 `json:"calories"`
}

func (m Macros) Scale(f float64) Macros {
	return Macros{
		Carbs:    m.Carbs * f,
		Protein:  m.Protein * f,
		Fat:      m.Fat * f,
		Fiber:    m.Fiber * f,
		Calories: m.Calories * f,
	}
}

func (m Macros) Add(o Macros) Macros {
	return Macros{
		Carbs:    m.Carbs + o.Carbs,
		Protein:  m.Protein + o.Protein,
		Fat:      m.Fat + o.Fat,
		Fiber:    m.Fiber + o.Fiber,
		Calories: m.Calories + o.Calories,
	}
}

// Round1 rounds every amount to one decimal place.
func (m Macros) Round1() Macros {
	r := func(v float64) float64 { return math.Round(v*10) / 10 }
	return Macros{Carbs: r(m.Carbs), Protein: r(m.Protein), Fat: r(m.Fat), Fiber: r(m.Fiber), Calories: r(m.Calories)}
}
