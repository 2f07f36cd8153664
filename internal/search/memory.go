package search

import "strings"

// Memory is the fallback searcher: a case-insensitive substring scan over
// the question records, in schema order.
type Memory struct {
	records []Record
}

// NewMemory builds the fallback index.
func NewMemory(records []Record) *Memory {
	return &Memory{records: records}
}

// Healthy always reports true; the fallback has no external dependency.
func (m *Memory) Healthy() bool {
	return true
}

// Search scans prompts, section names and question ids.
func (m *Memory) Search(q Query) ([]Result, int, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	if needle == "" {
		return nil, 0, nil
	}

	limit := q.Limit
	if limit == 0 {
		limit = 20
	}

	var results []Result
	total := 0
	for _, record := range m.records {
		if !strings.Contains(strings.ToLower(record.Prompt), needle) &&
			!strings.Contains(strings.ToLower(record.Section), needle) &&
			!strings.Contains(strings.ToLower(record.QuestionID), needle) {
			continue
		}
		total++
		if len(results) < limit {
			results = append(results, Result{
				Section:      record.Section,
				SectionIndex: record.SectionIndex,
				QuestionID:   record.QuestionID,
				Prompt:       record.Prompt,
				Type:         record.Type,
			})
		}
	}
	return results, total, nil
}
