// Package search finds questions across sections, Meilisearch-backed with an
// in-memory fallback when the index is unavailable.
package search

import (
	"fmt"

	"formwizard/api/internal/schema"
)

// Record is the data indexed for one question.
type Record struct {
	ID           string `json:"id"`
	Section      string `json:"section"`
	SectionIndex int    `json:"sectionIndex"`
	QuestionID   string `json:"questionId"`
	Prompt       string `json:"prompt"`
	Type         string `json:"type"`
}

// Result is a single search hit.
type Result struct {
	Section      string `json:"section"`
	SectionIndex int    `json:"sectionIndex"`
	QuestionID   string `json:"questionId"`
	Prompt       string `json:"prompt"`
	Type         string `json:"type"`
}

// Query describes a search request.
type Query struct {
	Text  string
	Limit int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// Searcher can execute a question search.
type Searcher interface {
	Search(q Query) ([]Result, int, error)
	Healthy() bool
}

// Records flattens a schema into indexable question records. IDs are
// position-based because Meilisearch document ids only allow alphanumerics,
// hyphens and underscores, while section names are free text.
func Records(s schema.Schema) []Record {
	var records []Record
	for si, section := range s.Sections {
		for qi, q := range section.Questions {
			records = append(records, Record{
				ID:           fmt.Sprintf("q-%d-%d", si, qi),
				Section:      section.Name,
				SectionIndex: si,
				QuestionID:   q.ID,
				Prompt:       q.Prompt,
				Type:         string(q.Type),
			})
		}
	}
	return records
}
