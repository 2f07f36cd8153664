package search

import (
	"testing"

	"formwizard/api/internal/schema"
)

func testRecords() []Record {
	return Records(schema.New([]schema.Section{
		{Name: "Basics", Questions: []schema.Question{
			{ID: "name", Prompt: "Your name?", Type: schema.TypeText},
			{ID: "remote", Prompt: "Do you work remotely?", Type: schema.TypeBoolean},
		}},
		{Name: "Team Setup", Questions: []schema.Question{
			{ID: "oncall", Prompt: "Who is on call for your team?", Type: schema.TypeText},
		}},
	}))
}

func TestRecordsFlattening(t *testing.T) {
	records := testRecords()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].ID != "q-0-0" || records[2].ID != "q-1-0" {
		t.Errorf("unexpected ids: %q, %q", records[0].ID, records[2].ID)
	}
	if records[2].Section != "Team Setup" || records[2].SectionIndex != 1 {
		t.Errorf("unexpected record: %+v", records[2])
	}
}

func TestMemorySearch(t *testing.T) {
	mem := NewMemory(testRecords())

	tests := []struct {
		name      string
		query     string
		wantCount int
		wantFirst string
	}{
		{"prompt match", "remotely", 1, "remote"},
		{"case insensitive", "REMOTELY", 1, "remote"},
		{"section name match", "team", 1, "oncall"},
		{"question id match", "oncall", 1, "oncall"},
		{"multiple hits in schema order", "your", 2, "name"},
		{"no hits", "kubernetes", 0, ""},
		{"blank query", "   ", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, total, err := mem.Search(Query{Text: tt.query})
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if total != tt.wantCount || len(results) != tt.wantCount {
				t.Fatalf("expected %d hits, got %d (total %d)", tt.wantCount, len(results), total)
			}
			if tt.wantCount > 0 && results[0].QuestionID != tt.wantFirst {
				t.Errorf("expected first hit %q, got %q", tt.wantFirst, results[0].QuestionID)
			}
		})
	}
}

func TestMemorySearchLimit(t *testing.T) {
	mem := NewMemory(testRecords())
	results, total, err := mem.Search(Query{Text: "o", Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("limit not applied, got %d results", len(results))
	}
	if total < len(results) {
		t.Errorf("total %d cannot be below returned %d", total, len(results))
	}
}

func TestServiceFallsBackWithoutMeili(t *testing.T) {
	svc := NewService(nil, testRecords())

	resp := svc.Search(Query{Text: "remotely"})
	if resp.Total != 1 || len(resp.Results) != 1 {
		t.Fatalf("expected one hit via fallback, got %+v", resp)
	}
	if resp.Query != "remotely" {
		t.Errorf("query echo lost: %q", resp.Query)
	}

	empty := svc.Search(Query{Text: "zzz"})
	if empty.Results == nil {
		t.Error("results must be non-nil for JSON encoding")
	}
}
