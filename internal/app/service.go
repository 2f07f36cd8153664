// Package app composes the questionnaire engine, report assembler and search
// behind the HTTP surface the wizard UI drives.
package app

import (
	"context"
	"net/http"

	"formwizard/api/internal/config"
	"formwizard/api/internal/progress"
	"formwizard/api/internal/report"
	"formwizard/api/internal/schema"
	"formwizard/api/internal/search"
	"formwizard/api/internal/snapshot"
	"formwizard/api/internal/validate"
	"formwizard/api/internal/wizard"
)

// Service owns the session: one schema, one engine, one snapshot store.
type Service struct {
	cfg       config.Config
	schema    schema.Schema
	engine    *wizard.Engine
	store     snapshot.Store
	assembler *report.Assembler
	search    *search.Service
}

// New wires the service. The engine must already be initialized with sch.
func New(cfg config.Config, sch schema.Schema, engine *wizard.Engine, store snapshot.Store, searchService *search.Service) *Service {
	return &Service{
		cfg:       cfg,
		schema:    sch,
		engine:    engine,
		store:     store,
		assembler: report.NewAssembler(sch),
		search:    searchService,
	}
}

// StateView is the wizard state plus advisory validation for the current
// section. Validation never blocks anything; the UI renders it inline.
type StateView struct {
	wizard.State
	Validation []validate.Error `json:"validation"`
}

// SetAnswerInput is the body of POST /api/wizard/answers.
type SetAnswerInput struct {
	Section    string       `json:"section"`
	QuestionID string       `json:"questionId"`
	Value      schema.Value `json:"value"`
}

// Ping checks the snapshot store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Schema returns the loaded schema sections in navigation order.
func (s *Service) Schema() []schema.Section {
	return s.schema.Sections
}

// State snapshots the engine for rendering.
func (s *Service) State() StateView {
	state := s.engine.State()
	view := StateView{State: state}
	if section, ok := s.schema.Section(state.Section.Name); ok {
		view.Validation = validate.Section(section.Questions, state.Responses[section.Name])
	}
	return view
}

// SetAnswer records one answer and persists the whole map. Unknown sections
// and question ids are recorded as-is (imported data may carry them); known
// questions get advisory validation in the returned state.
func (s *Service) SetAnswer(ctx context.Context, input SetAnswerInput) (StateView, error) {
	if input.Section == "" {
		return StateView{}, domainError(http.StatusBadRequest, "INVALID_INPUT", "section is required", nil)
	}
	if input.QuestionID == "" {
		return StateView{}, domainError(http.StatusBadRequest, "INVALID_INPUT", "questionId is required", nil)
	}
	if input.Value.IsZero() {
		return StateView{}, domainError(http.StatusBadRequest, "INVALID_INPUT", "value must be a string or a boolean", nil)
	}

	if err := s.engine.SetAnswer(ctx, input.Section, input.QuestionID, input.Value); err != nil {
		return StateView{}, err
	}
	return s.State(), nil
}

// Next advances the cursor (clamped at the last section).
func (s *Service) Next() StateView {
	s.engine.Advance()
	return s.State()
}

// Prev retreats the cursor (clamped at the first section).
func (s *Service) Prev() StateView {
	s.engine.Retreat()
	return s.State()
}

// GoTo jumps to a section index; out-of-range values clamp silently.
func (s *Service) GoTo(index int) StateView {
	s.engine.JumpTo(index)
	return s.State()
}

// SaveProgress persists the current map and returns the downloadable
// progress document.
func (s *Service) SaveProgress(ctx context.Context) ([]byte, error) {
	if err := s.engine.SaveProgress(ctx); err != nil {
		return nil, err
	}
	return progress.ExportResponses(s.engine.Responses())
}

// ExportProgress returns the progress document without persisting.
func (s *Service) ExportProgress() ([]byte, error) {
	return progress.ExportResponses(s.engine.Responses())
}

// Import replaces the response map with an uploaded progress document. A
// document that fails structural parsing leaves existing state untouched.
func (s *Service) Import(ctx context.Context, data []byte) (StateView, error) {
	responses, err := progress.ImportResponses(data)
	if err != nil {
		return StateView{}, err
	}
	if err := s.engine.ImportResponses(ctx, responses); err != nil {
		return StateView{}, err
	}
	return s.State(), nil
}

// Clear wipes all progress. Destructive, so the caller must confirm
// explicitly; the cursor stays where it was.
func (s *Service) Clear(ctx context.Context, confirm bool) (StateView, error) {
	if !confirm {
		return StateView{}, domainError(http.StatusBadRequest, "CONFIRM_REQUIRED",
			"clearing all progress requires confirm=true", nil)
	}
	if err := s.engine.ClearProgress(ctx); err != nil {
		return StateView{}, err
	}
	return s.State(), nil
}

// Submit persists, marks the session submitted and returns the final
// response document with its downloadable form.
func (s *Service) Submit(ctx context.Context) (wizard.FinalResponse, []byte, error) {
	final, err := s.engine.Submit(ctx)
	if err != nil {
		return wizard.FinalResponse{}, nil, err
	}
	doc, err := progress.ExportFinal(final)
	if err != nil {
		return wizard.FinalResponse{}, nil, err
	}
	return final, doc, nil
}

// Report assembles the current responses into the requested format.
func (s *Service) Report(format string) (*report.Result, error) {
	final := s.engine.FinalResponse()
	switch format {
	case "", "json":
		data, err := progress.ExportFinal(final)
		if err != nil {
			return nil, err
		}
		return &report.Result{Data: data, Filename: "final_response.json", MimeType: "application/json"}, nil
	case "markdown":
		return s.assembler.Markdown(final), nil
	case "html":
		return s.assembler.HTML(final)
	case "pdf":
		return s.assembler.PDF(final)
	default:
		return nil, domainError(http.StatusBadRequest, "INVALID_FORMAT",
			"format must be json, markdown, html or pdf", nil)
	}
}

// SearchQuestions looks questions up across sections.
func (s *Service) SearchQuestions(q search.Query) search.Response {
	return s.search.Search(q)
}
