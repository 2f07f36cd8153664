package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrSchemaUnavailable wraps every load failure: unreachable source, bad
// status, or a document that does not parse into sections of questions.
// Fatal at startup; there is no retry.
var ErrSchemaUnavailable = errors.New("schema unavailable")

// Loader fetches and parses the questionnaire schema document. The source is
// either an http(s) URL or a local file path.
type Loader struct {
	source string
	client *http.Client
}

// NewLoader creates a loader for the given source.
func NewLoader(source string) *Loader {
	return &Loader{
		source: source,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Load fetches the schema document and parses it. Section order follows the
// key order of the JSON object, which defines the navigation sequence.
func (l *Loader) Load(ctx context.Context) (Schema, error) {
	data, err := l.fetch(ctx)
	if err != nil {
		return Schema{}, fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
	}
	sections, err := parseDocument(data)
	if err != nil {
		return Schema{}, fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
	}
	return New(sections), nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: status %d", l.source, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(l.source)
}

// parseDocument decodes {"Section Name": [questions...], ...} while keeping
// the key order of the top-level object. encoding/json maps would lose it, so
// the object is walked token by token.
func parseDocument(data []byte) ([]Section, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))

	tok, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parse schema: expected top-level object, got %v", tok)
	}

	var sections []Section
	seen := map[string]bool{}
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("parse schema: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parse schema: expected section name, got %v", tok)
		}
		if seen[name] {
			return nil, fmt.Errorf("parse schema: duplicate section %q", name)
		}
		seen[name] = true

		var questions []Question
		if err := decoder.Decode(&questions); err != nil {
			return nil, fmt.Errorf("parse schema: section %q: %w", name, err)
		}
		for _, q := range questions {
			if q.ID == "" {
				return nil, fmt.Errorf("parse schema: section %q has a question without an id", name)
			}
		}
		sections = append(sections, Section{Name: name, Questions: questions})
	}

	if len(sections) == 0 {
		return nil, errors.New("parse schema: document has no sections")
	}
	return sections, nil
}
