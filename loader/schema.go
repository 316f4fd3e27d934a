package loader

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// schemaJSON is the embedded JSON Schema for toolchain settings files.
var schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/gmeeker/conan-darwin-toolchain/schemas/settings/v1",
  "title": "darwin-toolchain settings",
  "description": "Schema for darwin-toolchain settings YAML files.",
  "type": "object",
  "required": ["os", "arch"],
  "additionalProperties": false,
  "properties": {
    "os": { "type": "string", "enum": ["Macos", "iOS", "watchOS", "tvOS", "Windows", "Linux", "Android", "FreeBSD"] },
    "os_build": { "type": "string" },
    "arch": { "type": "string", "pattern": "^[A-Za-z0-9_.]+$" },
    "build_type": { "type": "string", "enum": ["Debug", "Release"] },
    "compiler": { "type": "string" },
    "os_version": { "type": "string" },
    "sdk": { "type": "string" },
    "sdk_version": { "type": "string", "pattern": "^[0-9]+(\\.[0-9]+)*$" },
    "fat_arch": { "type": "string", "pattern": "^[A-Za-z0-9_.]+(;[A-Za-z0-9_.]+)*$" },
    "options": { "$ref": "#/$defs/options" }
  },
  "$defs": {
    "options": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "enable_bitcode": { "type": "boolean" },
        "enable_arc": { "type": "boolean" },
        "enable_visibility": { "type": "boolean" },
        "xcode": { "type": "boolean" }
      }
    }
  }
}`

var compiledSchema *jsonschema.Schema

func init() {
	var schemaDoc interface{}
	if err := json.Unmarshal([]byte(schemaJSON), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to decode schema JSON: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add schema resource: %v", err))
	}
	var err error
	compiledSchema, err = c.Compile("schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile schema: %v", err))
	}
}

// SchemaJSON returns the settings JSON Schema text.
func SchemaJSON() string {
	return schemaJSON
}

// ValidateSchema validates raw YAML bytes against the settings JSON Schema.
// The schema only checks shape; combinations of settings are checked by the
// validate package.
func ValidateSchema(yamlData []byte) error {
	var raw interface{}
	if err := yaml.Unmarshal(yamlData, &raw); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("validation failed: empty document")
	}

	if err := compiledSchema.Validate(convertYAMLToJSON(raw)); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// convertYAMLToJSON converts YAML-parsed values to JSON-compatible types.
// Numbers become float64 so that a bare `os_version: 12` is reported as a
// type error rather than crashing the validator.
func convertYAMLToJSON(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, val := range v {
			result[k] = convertYAMLToJSON(val)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, val := range v {
			result[i] = convertYAMLToJSON(val)
		}
		return result
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return v
	}
}
