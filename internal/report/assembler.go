// Package report assembles the final response document into human-readable
// forms: markdown for the downloadable report, HTML for viewing, and PDF via
// headless Chrome.
package report

import (
	"fmt"
	"sort"
	"strings"

	"formwizard/api/internal/schema"
	"formwizard/api/internal/wizard"
)

// Result is a rendered report ready for download.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

// Assembler renders final response documents against a schema. Lookups that
// cannot be resolved (sections or question ids the schema does not know) fall
// back to the raw id; rendering never fails on imported data.
type Assembler struct {
	schema schema.Schema
}

// NewAssembler creates an assembler for the loaded schema.
func NewAssembler(s schema.Schema) *Assembler {
	return &Assembler{schema: s}
}

// Markdown renders the submission report: a version/date header, one heading
// per section and prompt/answer pairs separated by rules.
func (a *Assembler) Markdown(final wizard.FinalResponse) *Result {
	var b strings.Builder
	b.WriteString("# Submission Report\n\n")
	fmt.Fprintf(&b, "**Version:** %s\n\n", final.Version)
	fmt.Fprintf(&b, "**Date:** %s\n\n", final.Date)
	b.WriteString("---\n\n")

	for _, section := range a.orderedSections(final.Responses) {
		fmt.Fprintf(&b, "## %s\n\n", section.name)
		for _, item := range section.items {
			fmt.Fprintf(&b, "**%s**\n\n", item.prompt)
			fmt.Fprintf(&b, "%s\n\n", item.answer)
		}
		b.WriteString("---\n\n")
	}

	return &Result{
		Data:     []byte(b.String()),
		Filename: reportFilename(final.Date) + ".md",
		MimeType: "text/markdown",
	}
}

type renderedItem struct {
	prompt string
	answer string
}

type renderedSection struct {
	name  string
	items []renderedItem
}

// orderedSections normalizes the document to schema order: schema-declared
// sections first (those present in the response map), then sections only the
// imported data knows, sorted by name for determinism. Question order within
// a section follows the same rule.
func (a *Assembler) orderedSections(responses schema.Responses) []renderedSection {
	var sections []renderedSection

	for _, declared := range a.schema.Sections {
		answers, ok := responses[declared.Name]
		if !ok {
			continue
		}
		sections = append(sections, a.renderSection(declared.Name, declared.Questions, answers))
	}

	var unknown []string
	for name := range responses {
		if a.schema.SectionIndex(name) == -1 {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		sections = append(sections, a.renderSection(name, nil, responses[name]))
	}

	return sections
}

func (a *Assembler) renderSection(name string, declared []schema.Question, answers map[string]schema.Value) renderedSection {
	section := renderedSection{name: name}
	rendered := map[string]bool{}

	for _, q := range declared {
		value, ok := answers[q.ID]
		if !ok {
			continue
		}
		rendered[q.ID] = true
		section.items = append(section.items, renderedItem{prompt: q.Prompt, answer: formatValue(value)})
	}

	var stray []string
	for id := range answers {
		if !rendered[id] {
			stray = append(stray, id)
		}
	}
	sort.Strings(stray)
	for _, id := range stray {
		// Raw-id fallback for answers the schema cannot resolve.
		section.items = append(section.items, renderedItem{prompt: id, answer: formatValue(answers[id])})
	}

	return section
}

// formatValue renders an answer for display: booleans as Yes/No, blanks as
// "Not answered".
func formatValue(v schema.Value) string {
	switch v.Kind {
	case schema.KindBool:
		if v.Bool {
			return "Yes"
		}
		return "No"
	case schema.KindString:
		if v.Str == "" {
			return "Not answered"
		}
		return v.Str
	default:
		return "Not answered"
	}
}

// reportFilename builds "submission_report_<date>" with unsafe runes removed.
func reportFilename(date string) string {
	var b strings.Builder
	b.WriteString("submission_report_")
	for _, r := range date {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == ',':
			if !strings.HasSuffix(b.String(), "-") {
				b.WriteRune('-')
			}
		case r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
