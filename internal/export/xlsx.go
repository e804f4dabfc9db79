package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

type sheet struct {
	name   string
	header []string
	widths []float64
	rows   [][]any
}

func (d Document) sheets() []sheet {
	glucose := sheet{name: "Glucose", header: []string{"Date", "Value (mg/dL)"}, widths: []float64{14, 16}}
	for _, g := range d.Glucose {
		glucose.rows = append(glucose.rows, []any{string(g.Date), g.Value})
	}

	nutrition := sheet{
		name:   "Nutrition",
		header: []string{"Date", "Food", "Servings", "Carbs (g)", "Protein (g)", "Fat (g)", "Fiber (g)", "Calories"},
		widths: []float64{14, 30, 10, 12, 12, 10, 10, 12},
	}
	for _, n := range d.Nutrition {
		nutrition.rows = append(nutrition.rows, []any{string(n.Date), n.Name, n.Servings, n.Carbs, n.Protein, n.Fat, n.Fiber, n.Calories})
	}

	activity := sheet{name: "Activity", header: []string{"Date", "Type", "Minutes", "Calories"}, widths: []float64{14, 20, 10, 12}}
	for _, a := range d.Activity {
		var cal any = burned(a)
		if a.Calories != nil && *a.Calories != 0 {
			cal = *a.Calories
		}
		activity.rows = append(activity.rows, []any{string(a.Date), a.Type, a.Minutes, cal})
	}

	weight := sheet{name: "Weight", header: []string{"Date", "Weight (lbs)"}, widths: []float64{14, 14}}
	for _, w := range d.Weight {
		weight.rows = append(weight.rows, []any{string(w.Date), w.Weight})
	}

	goals := sheet{name: "Goals", header: []string{"Goal", "Target"}, widths: []float64{20, 20}}
	for _, l := range d.GoalLines() {
		goals.rows = append(goals.rows, []any{l.Name, l.Value})
	}

	return []sheet{glucose, nutrition, activity, weight, goals}
}

// WriteXLSX writes a workbook with one sheet per category plus the goals.
func WriteXLSX(w io.Writer, d Document) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range d.sheets() {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	for col, h := range s.header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(s.name, cell, h); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(s.name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if col < len(s.widths) {
			if err := f.SetColWidth(s.name, name, name, s.widths[col]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}
	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", s.name, i+2, err)
		}
	}
	return nil
}
