package report

import (
	"strings"
	"testing"

	"formwizard/api/internal/schema"
	"formwizard/api/internal/wizard"
)

func testSchema() schema.Schema {
	return schema.New([]schema.Section{
		{Name: "Basics", Questions: []schema.Question{
			{ID: "name", Prompt: "Your name?", Type: schema.TypeText},
			{ID: "remote", Prompt: "Do you work remotely?", Type: schema.TypeBoolean},
		}},
		{Name: "Preferences", Questions: []schema.Question{
			{ID: "region", Prompt: "Preferred region", Type: schema.TypeOptions},
		}},
	})
}

func testFinal(responses schema.Responses) wizard.FinalResponse {
	return wizard.FinalResponse{Version: "v1.0", Date: "March 14, 2026", Responses: responses}
}

func TestMarkdownReport(t *testing.T) {
	a := NewAssembler(testSchema())
	final := testFinal(schema.Responses{
		"Basics": {
			"name":   schema.String("Alice"),
			"remote": schema.Boolean(true),
		},
		"Preferences": {
			"region": schema.String(""),
		},
	})

	result := a.Markdown(final)
	md := string(result.Data)

	for _, want := range []string{
		"# Submission Report",
		"**Version:** v1.0",
		"**Date:** March 14, 2026",
		"## Basics",
		"**Your name?**\n\nAlice",
		"**Do you work remotely?**\n\nYes",
		"## Preferences",
		"**Preferred region**\n\nNot answered",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	if result.Filename != "submission_report_March-14-2026.md" {
		t.Errorf("unexpected filename %q", result.Filename)
	}
	if result.MimeType != "text/markdown" {
		t.Errorf("unexpected mime type %q", result.MimeType)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value schema.Value
		want  string
	}{
		{"true", schema.Boolean(true), "Yes"},
		{"false", schema.Boolean(false), "No"},
		{"text", schema.String("hello"), "hello"},
		{"empty string", schema.String(""), "Not answered"},
		{"zero value", schema.Value{}, "Not answered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.value); got != tt.want {
				t.Errorf("formatValue(%+v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestSectionsNormalizedToSchemaOrder(t *testing.T) {
	a := NewAssembler(testSchema())
	// Imported data lists Preferences before Basics; the report follows the
	// schema's declared order regardless.
	final := testFinal(schema.Responses{
		"Preferences": {"region": schema.String("eu")},
		"Basics":      {"name": schema.String("Alice")},
	})

	md := string(a.Markdown(final).Data)
	basics := strings.Index(md, "## Basics")
	prefs := strings.Index(md, "## Preferences")
	if basics == -1 || prefs == -1 || basics > prefs {
		t.Errorf("sections out of schema order:\n%s", md)
	}
}

func TestUnresolvableLookupsFallBackToRawIDs(t *testing.T) {
	a := NewAssembler(testSchema())
	final := testFinal(schema.Responses{
		"Basics": {
			"name":  schema.String("Alice"),
			"ghost": schema.String("imported stray"),
		},
		"Legacy Section": {
			"old_q": schema.Boolean(false),
		},
	})

	md := string(a.Markdown(final).Data)

	if !strings.Contains(md, "**ghost**") {
		t.Error("stray question id should render with its raw id")
	}
	if !strings.Contains(md, "## Legacy Section") {
		t.Error("unknown imported section should still render")
	}
	if !strings.Contains(md, "**old_q**\n\nNo") {
		t.Error("answers in unknown sections should render with raw ids")
	}
	// Unknown sections come after schema-declared ones.
	if strings.Index(md, "## Legacy Section") < strings.Index(md, "## Basics") {
		t.Error("unknown sections must be appended after schema order")
	}
}

func TestHTMLReport(t *testing.T) {
	a := NewAssembler(testSchema())
	final := testFinal(schema.Responses{
		"Basics": {"name": schema.String("<Alice & Bob>")},
	})

	result, err := a.HTML(final)
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	html := string(result.Data)

	if !strings.Contains(html, "Version: v1.0") {
		t.Error("HTML missing version header")
	}
	if !strings.Contains(html, "<h2>Basics</h2>") {
		t.Error("HTML missing section heading")
	}
	if strings.Contains(html, "<Alice & Bob>") {
		t.Error("answer text must be HTML-escaped")
	}
	if result.MimeType != "text/html; charset=utf-8" {
		t.Errorf("unexpected mime type %q", result.MimeType)
	}
}

func TestPercentEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc-123_.~", "abc-123_.~"},
		{"a b", "a%20b"},
		{"<p>&</p>", "%3Cp%3E%26%3C%2Fp%3E"},
	}
	for _, tt := range tests {
		if got := percentEncode(tt.in); got != tt.want {
			t.Errorf("percentEncode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReportFilename(t *testing.T) {
	if got := reportFilename("March 14, 2026"); got != "submission_report_March-14-2026" {
		t.Errorf("unexpected filename stem %q", got)
	}
}
