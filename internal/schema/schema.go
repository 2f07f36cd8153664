// Package schema defines the questionnaire schema document and the typed
// answer values recorded against it. A schema is loaded once per session and
// never mutated afterwards.
package schema

// QuestionType selects the input widget and the value kind a question accepts.
// The names match the wire format of the schema document.
type QuestionType string

const (
	TypeText     QuestionType = "text"     // single-line text
	TypeLongText QuestionType = "longtext" // multi-line text
	TypeBoolean  QuestionType = "boolean"  // yes/no switch
	TypeOptions  QuestionType = "options"  // single choice from Options
)

// Question is one prompt within a section. Immutable once loaded.
type Question struct {
	ID       string       `json:"id"`
	Prompt   string       `json:"question"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options,omitempty"`
	Required bool         `json:"required,omitempty"`
}

// Section is a named, ordered group of questions. The name doubles as the
// storage key for recorded answers.
type Section struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Schema is the ordered list of sections with a name index for lookups.
type Schema struct {
	Sections []Section
	byName   map[string]int
}

// New builds a Schema from ordered sections.
func New(sections []Section) Schema {
	byName := make(map[string]int, len(sections))
	for i, section := range sections {
		byName[section.Name] = i
	}
	return Schema{Sections: sections, byName: byName}
}

// Len returns the number of sections.
func (s Schema) Len() int {
	return len(s.Sections)
}

// Section looks up a section by name.
func (s Schema) Section(name string) (Section, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Section{}, false
	}
	return s.Sections[i], true
}

// SectionIndex returns the position of a section in navigation order, or -1.
func (s Schema) SectionIndex(name string) int {
	i, ok := s.byName[name]
	if !ok {
		return -1
	}
	return i
}

// Question resolves a question by section name and question id.
func (s Schema) Question(sectionName, questionID string) (Question, bool) {
	section, ok := s.Section(sectionName)
	if !ok {
		return Question{}, false
	}
	for _, q := range section.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return Question{}, false
}

// Responses maps section name to question id to the recorded answer.
// Absence of a key means unanswered.
type Responses map[string]map[string]Value

// EmptyResponses builds the initial response map: every schema section keyed
// to an empty answer map.
func EmptyResponses(s Schema) Responses {
	responses := make(Responses, len(s.Sections))
	for _, section := range s.Sections {
		responses[section.Name] = map[string]Value{}
	}
	return responses
}

// Clone deep-copies the response map.
func (r Responses) Clone() Responses {
	if r == nil {
		return nil
	}
	out := make(Responses, len(r))
	for name, answers := range r {
		copied := make(map[string]Value, len(answers))
		for id, value := range answers {
			copied[id] = value
		}
		out[name] = copied
	}
	return out
}
