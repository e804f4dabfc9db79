// Package view renders the dashboard. BuildPage derives a page model from a
// state snapshot; Renderer mounts its charts and executes the templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/charts"
	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/observability"
	"github.com/kidandcat/diametrics/internal/state"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcMap = template.FuncMap{
	"markdown": func(content string) template.HTML {
		var buf strings.Builder
		if err := goldmark.Convert([]byte(content), &buf); err != nil {
			return template.HTML("<p>Error rendering markdown</p>")
		}
		return template.HTML(buf.String())
	},
	"title": func(s string) string {
		if len(s) == 0 {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"eq": func(a, b any) bool {
		return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
	},
	"dict": func(values ...any) map[string]any {
		d := make(map[string]any)
		for i := 0; i < len(values)-1; i += 2 {
			d[fmt.Sprintf("%v", values[i])] = values[i+1]
		}
		return d
	},
	"num": model.Num,
	"comma": func(v float64) string {
		return humanize.Comma(int64(math.Round(v)))
	},
	"signed": func(v float64) string {
		if v > 0 {
			return "+" + model.Num(v)
		}
		return model.Num(v)
	},
	"ago": func(s string) string {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			if d, err := model.ParseDay(s); err == nil {
				return d.Format("Jan 2, 2006")
			}
			return s
		}
		return humanize.Time(t)
	},
	"statusColor": model.StatusColor,
}

// AuthPage is the data of the login and signup pages.
type AuthPage struct {
	Signup   bool
	Error    string
	Username string
}

type Renderer struct {
	tmpl   *template.Template
	logger *zap.Logger
}

func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	t, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: t, logger: logger}, nil
}

// Render writes the dashboard for snap. Every chart of the previous pass is
// torn down before the page's widgets are mounted, so a canvas never holds
// more than one chart.
func (r *Renderer) Render(w io.Writer, snap state.Snapshot, widgets *charts.Registry, now time.Time) error {
	start := time.Now()
	defer observability.ObserveRender(string(snap.Tab), start)

	page := BuildPage(snap, now)
	mounted, err := widgets.Pass(page.Widgets)
	if err != nil {
		return err
	}
	page.Widgets = mounted
	r.logger.Debug("render dashboard",
		zap.String("user", snap.Username),
		zap.String("tab", string(snap.Tab)),
		zap.Int("widgets", len(page.Widgets)),
		zap.Int("destroyed", widgets.Destroyed()),
	)

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "dashboard.html", page); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) RenderAuth(w io.Writer, data AuthPage) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "login.html", data); err != nil {
		return fmt.Errorf("render login: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the stylesheet and the chart script.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
