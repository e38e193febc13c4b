package game

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// clientSchemas holds one compiled envelope schema per client message type.
// Compilation happens at init; a malformed embedded schema is a build
// defect, not a runtime condition.
var clientSchemas = mustCompileSchemas()

func mustCompileSchemas() map[string]*jsonschema.Schema {
	types := []string{TypeMove, TypeHint, TypePlaceFloorMarker, TypePlaceWallMarker}
	out := make(map[string]*jsonschema.Schema, len(types))
	for _, msgType := range types {
		name := fmt.Sprintf("schemas/%s.schema.json", msgType)
		raw, err := schemaFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("missing embedded schema %s: %v", name, err))
		}
		schema, err := jsonschema.CompileString(name, string(raw))
		if err != nil {
			panic(fmt.Sprintf("compile %s: %v", name, err))
		}
		out[msgType] = schema
	}
	return out
}

// ValidateClientMessage checks a raw client frame against the schema for its
// declared type. Unknown types pass here; dispatch rejects them separately.
// The server only runs this in dev mode, where catching a malformed client
// early beats the validation cost.
func ValidateClientMessage(msgType string, raw []byte) error {
	schema, ok := clientSchemas[msgType]
	if !ok {
		return nil
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}
