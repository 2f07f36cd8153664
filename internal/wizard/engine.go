// Package wizard implements the questionnaire state engine: the response map,
// the section cursor and the operations the UI drives. The engine is the sole
// writer of the persisted snapshot.
package wizard

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"formwizard/api/internal/schema"
	"formwizard/api/internal/snapshot"
)

// DefaultVersion tags final response documents.
const DefaultVersion = "v1.0"

// FinalResponse is the point-in-time submission snapshot: version tag, a
// locale-formatted date and a deep copy of the response map. Derived on
// demand, never held as mutable state.
type FinalResponse struct {
	Version   string           `json:"version"`
	Date      string           `json:"date"`
	Responses schema.Responses `json:"responses"`
}

// SectionProgress reports completion for one section.
type SectionProgress struct {
	Name     string `json:"name"`
	Answered int    `json:"answered"`
	Total    int    `json:"total"`
	Complete bool   `json:"complete"`
}

// Progress aggregates answered counts across the questionnaire.
type Progress struct {
	Sections []SectionProgress `json:"sections"`
	Answered int               `json:"answered"`
	Total    int               `json:"total"`
}

// State is a consistent snapshot of the engine for the UI.
type State struct {
	Cursor       int              `json:"cursor"`
	SectionCount int              `json:"sectionCount"`
	Section      schema.Section   `json:"section"`
	Responses    schema.Responses `json:"responses"`
	Progress     Progress         `json:"progress"`
	Submitted    bool             `json:"submitted"`
}

// Engine owns the response map and navigation cursor for the session. All
// operations serialize on one mutex: persistence snapshots the entire map, so
// writers must not interleave even though the expected caller is a single UI.
type Engine struct {
	mu        sync.Mutex
	schema    schema.Schema
	responses schema.Responses
	cursor    int
	submitted bool
	version   string
	store     snapshot.Store
	now       func() time.Time
}

// NewEngine creates an engine persisting through store. version tags final
// response documents; empty means DefaultVersion.
func NewEngine(store snapshot.Store, version string) *Engine {
	if version == "" {
		version = DefaultVersion
	}
	return &Engine{
		version: version,
		store:   store,
		now:     time.Now,
	}
}

// Initialize sets the schema, builds the fully keyed empty response map and
// overlays a previously persisted snapshot if one exists (wholesale replace,
// not a merge). The cursor resets to the first section. A store read failure
// is logged and treated as no saved progress.
func (e *Engine) Initialize(ctx context.Context, s schema.Schema) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.schema = s
	e.responses = schema.EmptyResponses(s)
	e.cursor = 0
	e.submitted = false

	restored, ok, err := e.store.Load(ctx)
	if err != nil {
		log.Printf("wizard: restoring snapshot failed, starting fresh: %v", err)
		return
	}
	if ok {
		e.responses = restored
	}
}

// SetAnswer records a value and synchronously persists the entire response
// map. The section sub-map is created defensively if the snapshot restored a
// map missing it. The in-memory write sticks even when persistence fails; the
// durable copy catches up on the next save.
func (e *Engine) SetAnswer(ctx context.Context, sectionName, questionID string, value schema.Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	answers, ok := e.responses[sectionName]
	if !ok {
		answers = map[string]schema.Value{}
		e.responses[sectionName] = answers
	}
	answers[questionID] = value

	return e.persistLocked(ctx)
}

// Advance moves to the next section, staying put at the last one.
func (e *Engine) Advance() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor = e.clamp(e.cursor + 1)
	return e.cursor
}

// Retreat moves to the previous section, staying put at the first one.
func (e *Engine) Retreat() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor = e.clamp(e.cursor - 1)
	return e.cursor
}

// JumpTo sets the cursor directly. Out-of-range indices are clamped to the
// nearest bound rather than rejected; see clamp.
func (e *Engine) JumpTo(index int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor = e.clamp(index)
	return e.cursor
}

// clamp is the navigation bounds policy: any index outside
// [0, sectionCount-1] silently becomes the nearest valid bound. Navigation
// never errors.
func (e *Engine) clamp(index int) int {
	last := e.schema.Len() - 1
	if last < 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index > last {
		return last
	}
	return index
}

// SaveProgress persists the current response map. Same effect as the
// automatic persist in SetAnswer, exposed for a manual save affordance.
func (e *Engine) SaveProgress(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.persistLocked(ctx)
}

// ClearProgress replaces the response map with a fresh keyed-but-empty one
// and persists it. The cursor is left where it was: progress is cleared,
// position in the wizard is retained.
func (e *Engine) ClearProgress(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses = schema.EmptyResponses(e.schema)
	e.submitted = false
	return e.persistLocked(ctx)
}

// ImportResponses wholesale-replaces the response map with caller-supplied
// data and persists it. The data is trusted as-is; structural validation is
// the import document parser's job, and schema-shape checking is deliberately
// not done here.
func (e *Engine) ImportResponses(ctx context.Context, responses schema.Responses) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses = responses.Clone()
	return e.persistLocked(ctx)
}

// Submit persists the current state, marks the session submitted and returns
// the final response document.
func (e *Engine) Submit(ctx context.Context) (FinalResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.persistLocked(ctx); err != nil {
		return FinalResponse{}, err
	}
	e.submitted = true
	return e.finalLocked(), nil
}

// FinalResponse assembles the submission document from current state without
// mutating anything.
func (e *Engine) FinalResponse() FinalResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finalLocked()
}

// Responses returns a deep copy of the current response map.
func (e *Engine) Responses() schema.Responses {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.responses.Clone()
}

// Cursor returns the current section index.
func (e *Engine) Cursor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// State returns a consistent snapshot for rendering.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := State{
		Cursor:       e.cursor,
		SectionCount: e.schema.Len(),
		Responses:    e.responses.Clone(),
		Progress:     e.progressLocked(),
		Submitted:    e.submitted,
	}
	if e.cursor < e.schema.Len() {
		state.Section = e.schema.Sections[e.cursor]
	}
	return state
}

// Progress reports answered counts per section and overall. Only questions
// the schema declares are counted; empty-string answers do not count.
func (e *Engine) Progress() Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progressLocked()
}

func (e *Engine) progressLocked() Progress {
	progress := Progress{Sections: make([]SectionProgress, 0, e.schema.Len())}
	for _, section := range e.schema.Sections {
		answers := e.responses[section.Name]
		sp := SectionProgress{Name: section.Name, Total: len(section.Questions)}
		for _, q := range section.Questions {
			if answers[q.ID].Answered() {
				sp.Answered++
			}
		}
		sp.Complete = sp.Total > 0 && sp.Answered == sp.Total
		progress.Sections = append(progress.Sections, sp)
		progress.Answered += sp.Answered
		progress.Total += sp.Total
	}
	return progress
}

func (e *Engine) finalLocked() FinalResponse {
	return FinalResponse{
		Version:   e.version,
		Date:      e.now().Format("January 2, 2006"),
		Responses: e.responses.Clone(),
	}
}

func (e *Engine) persistLocked(ctx context.Context) error {
	if err := e.store.Save(ctx, e.responses); err != nil {
		return fmt.Errorf("persist responses: %w", err)
	}
	return nil
}
