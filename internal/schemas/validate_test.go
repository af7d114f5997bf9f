package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bundled "github.com/jonathan/directionwise/schemas"
)

const personSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "Ada", "age": 36}`))
}

func TestValidateJSONString_MissingField(t *testing.T) {
	err := ValidateJSONString(personSchema, `{"age": 3}`)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "(root)", verr.Errors[0].Field)
}

func TestValidateJSONString_WrongType(t *testing.T) {
	err := ValidateJSONString(personSchema, `{"name": "Ada", "age": "old"}`)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "age", verr.Errors[0].Field)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(personSchema, `{not json`)
	var lerr *SchemaLoadError
	require.ErrorAs(t, err, &lerr)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))
	var lerr *SchemaLoadError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidate_QuizSubmission(t *testing.T) {
	ok := `{"answers": [{"category": "work_style", "selected_option": "Leadership role"}]}`
	assert.NoError(t, Validate(bundled.QuizSubmission, []byte(ok)))

	bad := `{"answers": [{"category": "work_style"}]}`
	assert.Error(t, Validate(bundled.QuizSubmission, []byte(bad)))
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"answers": []}`), 0o644))
	assert.NoError(t, ValidateFile(bundled.QuizSubmission, path))

	err := ValidateFile(bundled.QuizSubmission, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
