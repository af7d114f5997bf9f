// Package schemas bundles the JSON Schema documents that describe the
// service's static data files and CLI inputs.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names.
const (
	KnowledgeBase  = "knowledge_base.schema.json"
	Mentorship     = "mentorship.schema.json"
	QuizSubmission = "quiz_submission.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw bytes of the named schema.
func Read(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	return data, nil
}

// Names lists every bundled schema.
func Names() []string {
	return []string{KnowledgeBase, Mentorship, QuizSubmission}
}
