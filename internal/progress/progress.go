// Package progress converts response state to and from portable JSON
// documents: the save/load-progress file and the submission export.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"

	"formwizard/api/internal/schema"
	"formwizard/api/internal/wizard"
)

// ErrMalformedImport reports an import blob that does not parse into the
// section→question→answer shape. The caller surfaces it to the user and
// abandons the operation; existing state is never touched on failure.
var ErrMalformedImport = errors.New("malformed import document")

// ExportResponses renders the raw response map as an indented,
// human-inspectable JSON document for download.
func ExportResponses(responses schema.Responses) ([]byte, error) {
	data, err := json.MarshalIndent(responses, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export responses: %w", err)
	}
	return data, nil
}

// ExportFinal renders the final response document for the submission
// download.
func ExportFinal(final wizard.FinalResponse) ([]byte, error) {
	data, err := json.MarshalIndent(final, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export final response: %w", err)
	}
	return data, nil
}

// ImportResponses parses an uploaded progress document. Structural
// validation lives here: the top level must be an object of objects and
// every leaf a string, a boolean or null (null means unanswered). Anything
// else is ErrMalformedImport.
func ImportResponses(data []byte) (schema.Responses, error) {
	var responses schema.Responses
	if err := json.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	if responses == nil {
		return nil, fmt.Errorf("%w: document is null", ErrMalformedImport)
	}
	return responses, nil
}
