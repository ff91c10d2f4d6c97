package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed ui_element-v1.schema.json
var schemaDoc []byte

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Compiled returns the compiled UI Element Schema v1.0.
func Compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("ui_element-v1.schema.json", bytes.NewReader(schemaDoc)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("ui_element-v1.schema.json")
	})
	return compiled, compileErr
}

// ValidateDocument checks a serialized record against the embedded JSON
// Schema. Used to audit documents already on disk.
func ValidateDocument(data []byte) error {
	s, err := Compiled()
	if err != nil {
		return err
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	if err := s.Validate(instance); err != nil {
		return fmt.Errorf("schema conformance: %w", err)
	}
	return nil
}
