package reports

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in task text is dropped by goldmark since WithUnsafe is not set.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 48rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #0078D4; color: #fff; }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`))

type page struct {
	Title   string
	Content template.HTML
}

// FormatHTML renders the Markdown report as a standalone HTML page.
func FormatHTML(report *MonthReport) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(FormatMarkdown(report)), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var out bytes.Buffer
	err := pageTemplate.Execute(&out, page{
		Title:   "Tasks for " + report.Title,
		Content: template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return out.Bytes(), nil
}

// Format renders report in the named format: markdown (or md), json or html.
func Format(report *MonthReport, format string) ([]byte, error) {
	switch format {
	case "", "markdown", "md":
		return []byte(FormatMarkdown(report)), nil
	case "json":
		return FormatJSON(report)
	case "html":
		return FormatHTML(report)
	default:
		return nil, fmt.Errorf("unknown format %q: use markdown, json or html", format)
	}
}
