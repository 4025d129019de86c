package validation

import (
	"testing"
)

func TestSchemaValidator_Validate(t *testing.T) {
	sv, err := NewSchemaValidator()
	if err != nil {
		t.Fatalf("NewSchemaValidator() error = %v", err)
	}

	tests := []struct {
		name      string
		schema    string
		body      string
		expectErr bool
		field     string
	}{
		{"Create with title", SchemaTaskCreate, `{"title":"Write docs"}`, false, ""},
		{"Create with all fields", SchemaTaskCreate, `{"title":"Write docs","description":"d","column":"review"}`, false, ""},
		{"Create missing title", SchemaTaskCreate, `{"description":"d"}`, true, "title"},
		{"Create with unknown column", SchemaTaskCreate, `{"title":"a","column":"todo"}`, true, "column"},
		{"Create with wrong title type", SchemaTaskCreate, `{"title":42}`, true, "title"},
		{"Create with unknown field", SchemaTaskCreate, `{"title":"a","priority":1}`, true, "body"},
		{"Create with non-object", SchemaTaskCreate, `["a"]`, true, "body"},
		{"Malformed JSON", SchemaTaskCreate, `{"title":`, true, "body"},
		{"Empty patch", SchemaTaskPatch, `{}`, false, ""},
		{"Patch echoing id", SchemaTaskPatch, `{"id":"t1","column":"done"}`, false, ""},
		{"Patch with unknown column", SchemaTaskPatch, `{"column":"later"}`, true, "column"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sv.Validate(tt.schema, []byte(tt.body))
			if (err != nil) != tt.expectErr {
				t.Fatalf("Validate(%s) error = %v, expectErr %v", tt.body, err, tt.expectErr)
			}
			if !tt.expectErr {
				return
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if len(ve.GetFieldErrors(tt.field)) == 0 {
				t.Errorf("expected an error for field %q, got %v", tt.field, ve)
			}
		})
	}
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	sv, err := NewSchemaValidator()
	if err != nil {
		t.Fatalf("NewSchemaValidator() error = %v", err)
	}
	if err := sv.Validate("nope.json", []byte(`{}`)); err == nil || IsValidationError(err) {
		t.Errorf("expected a non-validation error for an unknown schema, got %v", err)
	}
}
