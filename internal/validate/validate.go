// Package validate holds the pure answer validation rules. Validation is
// advisory: failures are surfaced inline but never block navigation or
// persistence.
package validate

import (
	"unicode/utf8"

	"formwizard/api/internal/schema"
)

// MaxTextLength caps single-line text answers.
const MaxTextLength = 500

// Error describes one failing question.
type Error struct {
	QuestionID string `json:"questionId"`
	Message    string `json:"message"`
}

// Question checks a candidate value against a question definition. Rules are
// evaluated in order and the first match wins; nil means well-formed.
func Question(q schema.Question, value schema.Value) *Error {
	if q.Required && !value.Answered() {
		return &Error{QuestionID: q.ID, Message: "This field is required"}
	}
	if q.Type == schema.TypeText && value.Kind == schema.KindString &&
		utf8.RuneCountInString(value.Str) > MaxTextLength {
		return &Error{QuestionID: q.ID, Message: "Text must be less than 500 characters"}
	}
	return nil
}

// Section validates every question against the recorded answers, returning
// one entry per failing question in question order.
func Section(questions []schema.Question, answers map[string]schema.Value) []Error {
	var errs []Error
	for _, q := range questions {
		if err := Question(q, answers[q.ID]); err != nil {
			errs = append(errs, *err)
		}
	}
	return errs
}
