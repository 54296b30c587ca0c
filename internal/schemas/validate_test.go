package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalRuleset = `{
	"version": "test-1",
	"patterns": [
		{"name": "hebrew", "keywords": ["hebrew"], "impacts": [{"competency_id": "biblical_languages", "weight": 5}]}
	],
	"activity_types": {
		"general_experience": [{"competency_id": "interpersonal_skills", "weight": 1}]
	},
	"description_boosts": []
}`

func TestRulesetSchema_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(RulesetSchema), &v))
	assert.Equal(t, "object", v["type"])
}

func TestValidateRuleset_Valid(t *testing.T) {
	assert.NoError(t, ValidateRuleset([]byte(minimalRuleset)))
}

func TestValidateRuleset_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{
			name:     "missing version",
			document: `{"patterns": [], "activity_types": {"general_experience": []}, "description_boosts": []}`,
		},
		{
			name: "weight out of range",
			document: `{
				"version": "x",
				"patterns": [{"name": "p", "keywords": ["a"], "impacts": [{"competency_id": "biblical_languages", "weight": 9}]}],
				"activity_types": {"general_experience": [{"competency_id": "interpersonal_skills", "weight": 1}]},
				"description_boosts": []
			}`,
		},
		{
			name: "unknown competency",
			document: `{
				"version": "x",
				"patterns": [{"name": "p", "keywords": ["a"], "impacts": [{"competency_id": "juggling", "weight": 2}]}],
				"activity_types": {"general_experience": [{"competency_id": "interpersonal_skills", "weight": 1}]},
				"description_boosts": []
			}`,
		},
		{
			name: "missing fallback activity type",
			document: `{
				"version": "x",
				"patterns": [{"name": "p", "keywords": ["a"], "impacts": [{"competency_id": "biblical_languages", "weight": 2}]}],
				"activity_types": {"translation": [{"competency_id": "translation_theory", "weight": 3}]},
				"description_boosts": []
			}`,
		},
		{
			name: "empty keyword",
			document: `{
				"version": "x",
				"patterns": [{"name": "p", "keywords": [""], "impacts": [{"competency_id": "biblical_languages", "weight": 2}]}],
				"activity_types": {"general_experience": [{"competency_id": "interpersonal_skills", "weight": 1}]},
				"description_boosts": []
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRuleset([]byte(tt.document))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type, got %T", err)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateRuleset_MalformedJSON(t *testing.T) {
	err := ValidateRuleset([]byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateJSONString_Valid(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`
	assert.NoError(t, ValidateJSONString(schema, `{"name": "test"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	err := ValidateJSONString(schema, `{"name": 42}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "version", Message: "is required"},
			{Field: "patterns.0.impacts.0.weight", Message: "must be less than or equal to 5"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. version: is required")
	assert.Contains(t, msg, "2. patterns.0.impacts.0.weight")
}

func TestSchemaLoadError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &SchemaLoadError{Path: "x.json", Message: "bad", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "x.json")
}
