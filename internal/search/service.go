package search

import "log"

// Service is the facade that tries Meilisearch first and falls back to the
// in-memory scan. meili may be nil when Meilisearch is not configured.
type Service struct {
	meili *Meili
	mem   *Memory
}

// NewService creates a search service over the schema's question records.
func NewService(meili *Meili, records []Record) *Service {
	s := &Service{meili: meili, mem: NewMemory(records)}
	if meili != nil && meili.Healthy() {
		if err := meili.IndexRecords(records); err != nil {
			log.Printf("search: indexing questions: %v", err)
		}
	}
	return s
}

// Search tries Meilisearch if healthy, otherwise the in-memory fallback.
func (s *Service) Search(q Query) Response {
	if s.meili != nil && s.meili.Healthy() {
		results, total, err := s.meili.Search(q)
		if err == nil {
			return Response{Results: nonNil(results), Total: total, Query: q.Text}
		}
		log.Printf("search: meilisearch error, falling back to in-memory scan: %v", err)
	}

	results, total, err := s.mem.Search(q)
	if err != nil {
		log.Printf("search: fallback error: %v", err)
		return Response{Results: []Result{}, Total: 0, Query: q.Text}
	}
	return Response{Results: nonNil(results), Total: total, Query: q.Text}
}

func nonNil(results []Result) []Result {
	if results == nil {
		return []Result{}
	}
	return results
}
