// Package export renders a user's logged data as CSV, a printable HTML
// report or an XLSX workbook. Every encoder works from the same Document.
package export

import (
	"fmt"

	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/state"
)

// ReportRows is how many of the most recent entries per category the
// printable report shows.
const ReportRows = 30

type Document struct {
	Username  string
	Generated model.Day
	Glucose   []model.GlucoseReading
	Nutrition []model.NutritionEntry
	Activity  []model.ActivityEntry
	Weight    []model.WeightEntry
	// Goals is nil when the user never saved any.
	Goals *model.Goals
}

func NewDocument(username string, generated model.Day, d state.Data) Document {
	doc := Document{
		Username:  username,
		Generated: generated,
		Glucose:   append([]model.GlucoseReading(nil), d.Glucose...),
		Nutrition: append([]model.NutritionEntry(nil), d.Nutrition...),
		Activity:  append([]model.ActivityEntry(nil), d.Activity...),
		Weight:    append([]model.WeightEntry(nil), d.Weight...),
	}
	if d.Goals != nil {
		g := *d.Goals
		doc.Goals = &g
	}
	return doc
}

// Recent keeps only the last n entries of each category.
func (d Document) Recent(n int) Document {
	out := d
	out.Glucose = tail(d.Glucose, n)
	out.Nutrition = tail(d.Nutrition, n)
	out.Activity = tail(d.Activity, n)
	out.Weight = tail(d.Weight, n)
	return out
}

func tail[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// GoalLines lists the set goals, or nothing when there are none.
func (d Document) GoalLines() []model.GoalLine {
	if d.Goals == nil {
		return nil
	}
	return d.Goals.Lines()
}

// Filename is the download name for the given extension.
func (d Document) Filename(ext string) string {
	return fmt.Sprintf("diabetes-data-%s-%s.%s", d.Username, d.Generated, ext)
}

// burned is an activity's recorded calories, or "N/A" when none were recorded.
func burned(e model.ActivityEntry) string {
	if e.Calories == nil || *e.Calories == 0 {
		return "N/A"
	}
	return model.Num(*e.Calories)
}
