// Package report renders a budget summary into the HTML email body.
package report

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"budgetmail/internal/core"
	"budgetmail/web"
)

// Renderer executes the budget email template against a render context.
type Renderer struct {
	tmpl *template.Template
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"money": FormatMoney,
		// date accepts both time.Time fields and the optional *time.Time
		// next-payment dates.
		"date": func(v any) string {
			switch t := v.(type) {
			case time.Time:
				return t.Format(core.DateLayout)
			case *time.Time:
				if t != nil {
					return t.Format(core.DateLayout)
				}
			}
			return ""
		},
		"longdate": func(t time.Time) string {
			return t.Format("Monday, January 2")
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v)
		},
	}
}

// New builds a renderer from the embedded default template.
func New() (*Renderer, error) {
	tmpl, err := template.New(web.DefaultTemplateName).
		Funcs(funcMap()).
		ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse embedded templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// NewFromFile builds a renderer from a template file on disk, used by the
// preview server so edits to the file take effect on reload.
func NewFromFile(path string) (*Renderer, error) {
	tmpl, err := template.New(filepath.Base(path)).Funcs(funcMap()).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", path, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the HTML body for the summary as of the given moment.
func (r *Renderer) Render(s core.Summary, now time.Time) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, BuildContext(s, now)); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return sb.String(), nil
}

// FormatMoney renders a decimal as a dollar amount with the sign outside the
// currency symbol, e.g. -$12.50.
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
