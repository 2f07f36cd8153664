package validate

import (
	"strings"
	"testing"

	"formwizard/api/internal/schema"
)

func TestQuestionRequired(t *testing.T) {
	required := schema.Question{ID: "name", Prompt: "Your name?", Type: schema.TypeText, Required: true}

	tests := []struct {
		name    string
		value   schema.Value
		wantErr bool
	}{
		{"absent", schema.Value{}, true},
		{"empty string", schema.String(""), true},
		{"non-empty string", schema.String("Alice"), false},
		{"boolean false still answers", schema.Boolean(false), false},
		{"boolean true", schema.Boolean(true), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Question(required, tt.value)
			if tt.wantErr && err == nil {
				t.Error("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %+v", err)
			}
			if tt.wantErr && err != nil {
				if err.QuestionID != "name" || err.Message != "This field is required" {
					t.Errorf("unexpected error contents: %+v", err)
				}
			}
		})
	}
}

func TestQuestionTextLength(t *testing.T) {
	q := schema.Question{ID: "summary", Type: schema.TypeText}

	if err := Question(q, schema.String(strings.Repeat("a", MaxTextLength))); err != nil {
		t.Errorf("value at the cap should pass, got %+v", err)
	}
	err := Question(q, schema.String(strings.Repeat("a", MaxTextLength+1)))
	if err == nil {
		t.Fatal("expected a length error")
	}
	if err.Message != "Text must be less than 500 characters" {
		t.Errorf("unexpected message: %q", err.Message)
	}

	// The cap counts runes, not bytes.
	if err := Question(q, schema.String(strings.Repeat("é", MaxTextLength))); err != nil {
		t.Errorf("multibyte value at the cap should pass, got %+v", err)
	}

	// Long-form answers are not capped.
	long := schema.Question{ID: "bio", Type: schema.TypeLongText}
	if err := Question(long, schema.String(strings.Repeat("a", MaxTextLength*2))); err != nil {
		t.Errorf("longtext should not be capped, got %+v", err)
	}
}

func TestRequiredWinsOverLength(t *testing.T) {
	q := schema.Question{ID: "name", Type: schema.TypeText, Required: true}
	err := Question(q, schema.Value{})
	if err == nil || err.Message != "This field is required" {
		t.Errorf("required rule should fire first, got %+v", err)
	}
}

func TestSection(t *testing.T) {
	questions := []schema.Question{
		{ID: "a", Type: schema.TypeText, Required: true},
		{ID: "b", Type: schema.TypeBoolean},
		{ID: "c", Type: schema.TypeText, Required: true},
	}
	answers := map[string]schema.Value{
		"b": schema.Boolean(false),
	}

	errs := Section(questions, answers)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
	if errs[0].QuestionID != "a" || errs[1].QuestionID != "c" {
		t.Errorf("errors out of question order: %+v", errs)
	}

	if errs := Section(questions, map[string]schema.Value{
		"a": schema.String("x"),
		"c": schema.String("y"),
	}); len(errs) != 0 {
		t.Errorf("expected no errors, got %+v", errs)
	}
}
