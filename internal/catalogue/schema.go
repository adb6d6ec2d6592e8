package catalogue

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed catalogue.schema.json
var documentSchema []byte

const documentSchemaURL = "schema://catalogue.json"

// schemaCache caches compiled JSON schemas by URL.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateSchema checks a generic JSON value against the document schema.
func validateSchema(doc any) error {
	compiled, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", documentSchemaURL, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema returns the cached document schema or compiles and caches it.
func getCompiledSchema() (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(documentSchemaURL); ok {
		return cached.(*jsonschema.Schema), nil
	}

	var def any
	if err := json.Unmarshal(documentSchema, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(documentSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(documentSchemaURL, compiled)
	return compiled, nil
}
