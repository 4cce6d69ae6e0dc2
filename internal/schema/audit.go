// Package schema validates the structured payloads that cross the audit
// boundary. Audit rows are append-only and never rewritten, so a malformed
// meta document would be permanent; shapes are checked before the insert.
package schema

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const uuidPattern = `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`

// One schema per audit action that carries a meta document. Actions absent
// from this table accept any object.
var auditMetaSources = map[string]string{
	"assign_reviewer": `{
		"type": "object",
		"properties": {
			"reviewerId": {"type": "string", "pattern": "` + uuidPattern + `"}
		},
		"required": ["reviewerId"],
		"additionalProperties": false
	}`,
	"approve_review": `{
		"type": "object",
		"properties": {
			"note": {"type": "string", "maxLength": 2000}
		},
		"additionalProperties": false
	}`,
	"reject_review": `{
		"type": "object",
		"properties": {
			"note": {"type": "string", "maxLength": 2000}
		},
		"additionalProperties": false
	}`,
	"add_member": `{
		"type": "object",
		"properties": {
			"role": {"type": "string", "enum": ["viewer", "editor", "reviewer", "admin"]}
		},
		"required": ["role"],
		"additionalProperties": false
	}`,
	"change_role": `{
		"type": "object",
		"properties": {
			"role": {"type": "string", "enum": ["viewer", "editor", "reviewer", "admin"]}
		},
		"required": ["role"],
		"additionalProperties": false
	}`,
}

var auditMetaSchemas = compileAuditMetaSchemas()

func compileAuditMetaSchemas() map[string]*jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	schemas := make(map[string]*jsonschema.Schema, len(auditMetaSources))

	for action, src := range auditMetaSources {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
		if err != nil {
			panic(fmt.Sprintf("schema: bad source for %s: %v", action, err))
		}
		name := action + ".json"
		if err := compiler.AddResource(name, doc); err != nil {
			panic(fmt.Sprintf("schema: add resource %s: %v", action, err))
		}
		compiled, err := compiler.Compile(name)
		if err != nil {
			panic(fmt.Sprintf("schema: compile %s: %v", action, err))
		}
		schemas[action] = compiled
	}

	return schemas
}

// ValidateAuditMeta checks a meta document against the schema registered for
// the action. Actions with no registered schema pass.
func ValidateAuditMeta(action string, meta []byte) error {
	sch, ok := auditMetaSchemas[action]
	if !ok {
		return nil
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(meta))
	if err != nil {
		return fmt.Errorf("meta is not valid JSON: %w", err)
	}

	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("meta does not match the %s shape: %w", action, err)
	}
	return nil
}
