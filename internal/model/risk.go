package model

import "math"

type RiskBand int

const (
	RiskLow RiskBand = iota
	RiskModerate
	RiskHigh
)

// BandFor maps a 1-10 risk level to its band: up to 3 is low, 4-6 moderate,
// 7 and above high.
func BandFor(level int) RiskBand {
	switch {
	case level <= 3:
		return RiskLow
	case level <= 6:
		return RiskModerate
	default:
		return RiskHigh
	}
}

func (b RiskBand) Color() string {
	switch b {
	case RiskLow:
		return "#48bb78"
	case RiskModerate:
		return "#ed8936"
	default:
		return "#f56565"
	}
}

func (b RiskBand) String() string {
	switch b {
	case RiskLow:
		return "Low Risk"
	case RiskModerate:
		return "Moderate Risk"
	default:
		return "High Risk"
	}
}

// Word is the lower-case band name used in prose.
func (b RiskBand) Word() string {
	switch b {
	case RiskLow:
		return "low"
	case RiskModerate:
		return "moderate"
	default:
		return "high"
	}
}

func (b RiskBand) Icon() string {
	switch b {
	case RiskLow:
		return "✅"
	case RiskModerate:
		return "⚠️"
	default:
		return "🚨"
	}
}

// Advice is the interpretation shown with a risk result.
type Advice struct {
	Heading         string
	Outlook         string
	Recommendations []string
	Note            string
}

func (b RiskBand) Advice() Advice {
	switch b {
	case RiskLow:
		return Advice{
			Heading: "Maintain Your Health:",
			Outlook: "your current health metrics indicate good metabolic health.",
			Recommendations: []string{
				"Keep up your healthy lifestyle habits",
				"Continue regular physical activity (150+ min/week)",
				"Maintain a balanced diet",
				"Get screened every 3 years if over 45",
				"Monitor your weight and stay active",
			},
		}
	case RiskModerate:
		return Advice{
			Heading: "Take Preventive Action:",
			Outlook: "lifestyle changes can significantly reduce your risk.",
			Recommendations: []string{
				"Schedule a doctor's appointment for diabetes screening (fasting glucose or A1C test)",
				"Aim for 5-10% weight loss if overweight",
				"Exercise at least 150 minutes per week (brisk walking, cycling, swimming)",
				"Reduce refined carbs and sugary drinks",
				"Increase fiber intake (vegetables, whole grains, legumes)",
				"Get screened annually",
			},
			Note: "Good news: Studies show that lifestyle changes can reduce diabetes risk by up to 58%!",
		}
	default:
		return Advice{
			Heading: "Urgent Action Needed:",
			Outlook: "immediate medical consultation is recommended.",
			Recommendations: []string{
				"See your doctor immediately for comprehensive diabetes screening",
				"Ask about preventive medications (like metformin) if appropriate",
				"Join a diabetes prevention program (DPP)",
				"Work with a dietitian for personalized meal planning",
				"Start daily physical activity (even 10-15 min walks help)",
				"Lose 7-10% of body weight (most effective prevention)",
				"Get screened every 6 months",
			},
			Note: "Important: Early intervention is crucial. Don't wait, schedule your doctor's appointment today.",
		}
	}
}

// BMI computes body-mass index from kilograms and centimetres.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	if m <= 0 {
		return 0
	}
	return weightKg / (m * m)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
