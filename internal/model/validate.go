package model

import "fmt"

// ValidationError is a user-facing input problem. Its message is shown to the
// user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (r GlucoseReading) Validate() error {
	if !r.Date.Valid() || r.Value < 20 || r.Value > 600 {
		return invalid("Please enter a valid date and glucose value (20-600 mg/dL)")
	}
	return nil
}

func (n NutritionEntry) Validate() error {
	if !n.Date.Valid() {
		return invalid("Please select a valid date")
	}
	if n.Name == "" {
		return invalid("Please select a food")
	}
	if n.Servings <= 0 {
		return invalid("Please enter a valid number of servings")
	}
	return nil
}

func (a ActivityEntry) Validate() error {
	if !a.Date.Valid() || !IsActivityType(a.Type) || a.Minutes <= 0 {
		return invalid("Please fill in date, activity type, and minutes")
	}
	if a.Calories != nil && *a.Calories < 0 {
		return invalid("Calories cannot be negative")
	}
	return nil
}

func (w WeightEntry) Validate() error {
	if !w.Date.Valid() || w.Weight < 50 || w.Weight > 500 {
		return invalid("Please enter a valid weight (50-500 lbs)")
	}
	return nil
}

// RiskInput is the set of health metrics submitted for a risk prediction.
type RiskInput struct {
	Gender    int
	Age       float64
	Ethnicity int
	WeightKg  float64
	HeightCm  float64
	WaistCm   *float64
	HipCm     *float64
}

func (in RiskInput) Validate() error {
	if in.Gender == 0 || in.Age <= 0 || in.Ethnicity == 0 || in.WeightKg <= 0 || in.HeightCm <= 0 {
		return invalid("Please fill in all required fields")
	}
	return nil
}

// BMI is computed before the prediction call and rounded to one decimal.
func (in RiskInput) BMI() float64 {
	return RoundTo(BMI(in.WeightKg, in.HeightCm), 1)
}
