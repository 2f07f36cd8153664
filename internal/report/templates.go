package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"formwizard/api/internal/wizard"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplate *template.Template

func init() {
	content, err := templateFS.ReadFile("templates/report.html")
	if err != nil {
		// Fall back to the built-in template if the embed is missing.
		reportTemplate = template.Must(template.New("report").Parse(fallbackTemplate))
		return
	}
	reportTemplate = template.Must(template.New("report").Parse(string(content)))
}

// TemplateData feeds the HTML report template.
type TemplateData struct {
	Version  string
	Date     string
	Sections []TemplateSection
}

// TemplateSection is one section block in the HTML report.
type TemplateSection struct {
	Name  string
	Items []TemplateItem
}

// TemplateItem is one prompt/answer pair.
type TemplateItem struct {
	Prompt string
	Answer string
}

// HTML renders the report as a standalone HTML page.
func (a *Assembler) HTML(final wizard.FinalResponse) (*Result, error) {
	data := TemplateData{Version: final.Version, Date: final.Date}
	for _, section := range a.orderedSections(final.Responses) {
		ts := TemplateSection{Name: section.name}
		for _, item := range section.items {
			ts.Items = append(ts.Items, TemplateItem{Prompt: item.prompt, Answer: item.answer})
		}
		data.Sections = append(data.Sections, ts)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report template: %w", err)
	}
	return &Result{
		Data:     buf.Bytes(),
		Filename: reportFilename(final.Date) + ".html",
		MimeType: "text/html; charset=utf-8",
	}, nil
}

const fallbackTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Submission Report</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 800px; margin: 2rem auto; }
    h1 { border-bottom: 2px solid #333; padding-bottom: 0.5rem; }
    .meta { color: #666; font-size: 0.9em; margin-bottom: 2rem; }
    .section { border: 1px solid #ddd; padding: 1rem; margin: 1rem 0; }
    .prompt { font-weight: 600; color: #555; }
  </style>
</head>
<body>
  <h1>Submission Report</h1>
  <div class="meta">Version: {{.Version}} &middot; Date: {{.Date}}</div>
  {{range .Sections}}
  <div class="section">
    <h2>{{.Name}}</h2>
    {{range .Items}}
    <p class="prompt">{{.Prompt}}</p>
    <p>{{.Answer}}</p>
    {{end}}
  </div>
  {{end}}
</body>
</html>`
