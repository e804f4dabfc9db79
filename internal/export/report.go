package export

import (
	"embed"
	"html/template"
	"io"
	"math"

	"github.com/kidandcat/diametrics/internal/model"
)

//go:embed templates/report.html
var reportFS embed.FS

var reportTmpl = template.Must(template.New("report.html").Funcs(template.FuncMap{
	"num":    model.Num,
	"round":  math.Round,
	"burned": burned,
}).ParseFS(reportFS, "templates/report.html"))

// WriteReport writes the printable HTML report of the most recent
// ReportRows entries per category.
func WriteReport(w io.Writer, d Document) error {
	return reportTmpl.Execute(w, d.Recent(ReportRows))
}
