// Package renderer turns portfolio snapshots into markdown: the report
// command's output and the README auto section.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// RenderReport renders a portfolio report to a markdown string.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_summary":  "templates/report_summary.md",
		"report_holdings": "templates/report_holdings.md",
		"report_trades":   "templates/report_trades.md",
	}
	return renderTemplate("report", "templates/report.md", partials, r)
}

// RenderPortfolio renders the raw ledger state (cash, holdings, history
// tail) without touching the network.
func RenderPortfolio(p *PortfolioView) string {
	return renderTemplate("portfolio", "templates/portfolio.md", nil, p)
}

// renderTemplate is a generic utility to render a main template that depends
// on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
