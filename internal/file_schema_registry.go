package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/indexkit/indexkit"
)

// fileSchemaRegistry is a SchemaRegistry implementation that loads index
// schema definitions from *.schema.json files in a directory. Every file is
// validated against a meta-schema before it is accepted, so a malformed
// definition fails at start-up instead of at indexing time.
type fileSchemaRegistry struct {
	mu      sync.RWMutex
	dir     string
	schemas map[string]*indexkit.IndexSchema
}

// schemaFileSuffix is the naming convention for schema definition files,
// e.g. "products.schema.json".
const schemaFileSuffix = ".schema.json"

// metaSchemaJSON constrains schema definition files: a name, an optional
// version and unique key, and per-field specs with one of the built-in field
// types.
const metaSchemaJSON = `{
	"type": "object",
	"required": ["name", "fields"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"version": {"type": "integer", "minimum": 0},
		"unique_key": {"type": "string"},
		"fields": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["name", "type"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"type": {"type": "string", "enum": ["text", "string", "integer", "float", "time", "boolean"]},
					"stored": {"type": "boolean"},
					"multi_valued": {"type": "boolean"}
				}
			}
		}
	}
}`

var (
	metaSchemaOnce     sync.Once
	metaSchemaResolved *jsonschema.Resolved
	metaSchemaErr      error
)

func resolvedMetaSchema() (*jsonschema.Resolved, error) {
	metaSchemaOnce.Do(func() {
		var schema jsonschema.Schema
		if err := json.Unmarshal([]byte(metaSchemaJSON), &schema); err != nil {
			metaSchemaErr = fmt.Errorf("failed to unmarshal into jsonschema.Schema: %w", err)
			return
		}
		metaSchemaResolved, metaSchemaErr = schema.Resolve(&jsonschema.ResolveOptions{})
	})
	return metaSchemaResolved, metaSchemaErr
}

// NewFileSchemaRegistry creates a schema registry that scans dir for
// *.schema.json files and loads every definition found.
func NewFileSchemaRegistry(dir string) (indexkit.SchemaRegistry, error) {
	registry := &fileSchemaRegistry{
		dir:     dir,
		schemas: make(map[string]*indexkit.IndexSchema),
	}

	if err := registry.loadSchemasFromDir(); err != nil {
		return nil, err
	}

	return registry, nil
}

// loadSchemasFromDir reads every schema definition file in the directory,
// validates it, and registers it by name.
func (r *fileSchemaRegistry) loadSchemasFromDir() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("failed to read schema directory %s: %w", r.dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), schemaFileSuffix) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	if len(files) == 0 {
		return fmt.Errorf("no schema files found in directory: %s", r.dir)
	}

	for _, name := range files {
		schema, err := loadSchemaFile(filepath.Join(r.dir, name))
		if err != nil {
			return fmt.Errorf("load schema file %s: %w", name, err)
		}
		if _, exists := r.schemas[schema.Name]; exists {
			return indexkit.NewSchemaError(indexkit.ErrCodeSchemaInvalid,
				fmt.Sprintf("duplicate schema name %q in file %s", schema.Name, name))
		}
		r.schemas[schema.Name] = schema
	}

	return nil
}

// loadSchemaFile parses one definition file into an IndexSchema, validating
// the raw JSON against the meta-schema first.
func loadSchemaFile(path string) (*indexkit.IndexSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON data: %w", err)
	}

	resolved, err := resolvedMetaSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve meta-schema: %w", err)
	}
	if err := resolved.Validate(raw); err != nil {
		return nil, indexkit.NewSchemaError(indexkit.ErrCodeSchemaInvalid,
			fmt.Sprintf("schema validation failed: %v", err))
	}

	var schema indexkit.IndexSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	// The meta-schema already constrains field types; re-checking through
	// HandlerFor keeps the two sources of truth from drifting.
	for key, spec := range schema.Fields {
		if spec.Name == "" {
			spec.Name = key
		}
		if _, err := indexkit.HandlerFor(spec.Type); err != nil {
			return nil, err
		}
	}

	return &schema, nil
}

// GetSchemaByName retrieves a schema by its name.
func (r *fileSchemaRegistry) GetSchemaByName(name string) (*indexkit.IndexSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.schemas[name]
	if !ok {
		return nil, indexkit.NewNotFoundError(indexkit.ErrCodeSchemaNotFound,
			fmt.Sprintf("schema not found: %s", name))
	}
	return schema, nil
}

// ListSchemas returns all registered schema names, sorted.
func (r *fileSchemaRegistry) ListSchemas() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
