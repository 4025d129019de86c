package validation

import (
	"bytes"
	"embed"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names for request bodies accepted by the task server.
const (
	SchemaTaskCreate = "task_create.json"
	SchemaTaskPatch  = "task_patch.json"
)

const schemaBaseURL = "https://kanban-board.local/schemas/"

// SchemaValidator checks raw JSON request bodies against the embedded schemas.
type SchemaValidator struct {
	schemas map[string]*jsonschema.Schema
}

// NewSchemaValidator compiles every embedded schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	names := []string{SchemaTaskCreate, SchemaTaskPatch}
	for _, name := range names {
		data, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(schemaBaseURL+name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
		}
	}

	sv := &SchemaValidator{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		schema, err := compiler.Compile(schemaBaseURL + name)
		if err != nil {
			return nil, fmt.Errorf("invalid schema %s: %w", name, err)
		}
		sv.schemas[name] = schema
	}
	return sv, nil
}

// Validate decodes body and validates it against the named schema.
// Every failure is reported as a *ValidationError.
func (sv *SchemaValidator) Validate(name string, body []byte) error {
	schema, ok := sv.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema: %s", name)
	}

	ve := NewValidationError()

	var doc interface{}
	if err := sonic.Unmarshal(body, &doc); err != nil {
		ve.AddError("body", ErrorTypeSchema, "request body must be valid JSON", nil)
		return ve
	}

	if err := schema.Validate(doc); err != nil {
		schemaErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return err
		}
		collectSchemaErrors(ve, schemaErr)
	}
	return ve.OrNil()
}

func collectSchemaErrors(ve *ValidationError, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		ve.AddError(schemaField(err), ErrorTypeSchema, err.Message, nil)
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(ve, cause)
	}
}

// schemaField names the offending field. Missing required properties are
// reported against the object that lacks them, so the property name is
// recovered from the message instead.
func schemaField(err *jsonschema.ValidationError) string {
	field := jsonPointerToField(err.InstanceLocation)
	if field == "" && strings.HasPrefix(err.Message, "missing properties:") {
		name := strings.TrimPrefix(err.Message, "missing properties:")
		name = strings.Trim(strings.TrimSpace(name), "'")
		if i := strings.Index(name, "'"); i >= 0 {
			name = name[:i]
		}
		return name
	}
	if field == "" {
		return "body"
	}
	return field
}

func jsonPointerToField(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}
