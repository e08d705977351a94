package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const profileSchemaURL = "mem://profile.schema.json"

const profileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "containers_scale": {"type": "integer", "minimum": 50, "maximum": 200},
    "scale_items_inside_containers": {"type": "boolean"},
    "use_grid_containers": {"type": "boolean"},
    "grid_rows": {"type": "integer", "minimum": 1, "maximum": 32},
    "grid_columns": {"type": "integer", "minimum": 1, "maximum": 64},
    "skip_empty_corpse": {"type": "boolean"},
    "override_container_location": {"type": "boolean"},
    "override_container_location_setting": {"type": "integer", "enum": [0, 1, 2]},
    "override_container_location_position": {"$ref": "#/definitions/point"},
    "game_window_position": {"$ref": "#/definitions/point"},
    "game_window_size": {"$ref": "#/definitions/point"}
  },
  "definitions": {
    "point": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "x": {"type": "integer"},
        "y": {"type": "integer"}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString(profileSchemaURL, profileSchema)
	})
	return compiledSchema, schemaErr
}

// ValidateProfile checks raw YAML against the profile schema.
func ValidateProfile(raw []byte) error {
	s, err := loadSchema()
	if err != nil {
		return fmt.Errorf("profile schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if doc == nil {
		// empty file, all defaults
		return nil
	}

	// round-trip through JSON so the validator only sees JSON value types
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return err
	}

	if err := s.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("invalid profile: %s", ve.Error())
		}
		return err
	}
	return nil
}
