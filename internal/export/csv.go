package export

import (
	"encoding/csv"
	"io"

	"github.com/kidandcat/diametrics/internal/model"
)

// WriteCSV writes every category as its own titled section, followed by the
// current goals.
func WriteCSV(w io.Writer, d Document) error {
	cw := csv.NewWriter(w)
	num := model.Num

	rows := [][]string{
		{"Diabetes Management Data Export - " + d.Username},
		{"Generated: " + string(d.Generated)},
		nil,
		{"GLUCOSE READINGS"},
		{"Date", "Value (mg/dL)"},
	}
	for _, g := range d.Glucose {
		rows = append(rows, []string{string(g.Date), num(g.Value)})
	}

	rows = append(rows, nil, []string{"NUTRITION LOG"},
		[]string{"Date", "Food", "Servings", "Carbs (g)", "Protein (g)", "Fat (g)", "Fiber (g)", "Calories"})
	for _, n := range d.Nutrition {
		rows = append(rows, []string{
			string(n.Date), n.Name, num(n.Servings),
			num(n.Carbs), num(n.Protein), num(n.Fat), num(n.Fiber), num(n.Calories),
		})
	}

	rows = append(rows, nil, []string{"ACTIVITY LOG"}, []string{"Date", "Type", "Minutes", "Calories"})
	for _, a := range d.Activity {
		rows = append(rows, []string{string(a.Date), a.Type, num(a.Minutes), burned(a)})
	}

	rows = append(rows, nil, []string{"WEIGHT LOG"}, []string{"Date", "Weight (lbs)"})
	for _, wt := range d.Weight {
		rows = append(rows, []string{string(wt.Date), num(wt.Weight)})
	}

	if d.Goals != nil {
		rows = append(rows, nil, []string{"CURRENT GOALS"})
		for _, l := range d.GoalLines() {
			rows = append(rows, []string{l.Name, l.Value})
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
