package indexkit

// FieldSpec declares one logical field of an index schema.
type FieldSpec struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Stored      bool      `json:"stored,omitempty"`
	MultiValued bool      `json:"multi_valued,omitempty"`
}

// IndexedName returns the physical field name this spec occupies in the
// index.
func (f *FieldSpec) IndexedName() (string, error) {
	handler, err := HandlerFor(f.Type)
	if err != nil {
		return "", err
	}
	return handler.IndexedName(f.Name), nil
}

// IndexSchema is a declared set of fields for one document class. Fields not
// declared here are still indexable: they resolve dynamically by value kind.
type IndexSchema struct {
	Name      string                `json:"name"`
	Version   int                   `json:"version"`
	UniqueKey string                `json:"unique_key,omitempty"`
	Fields    map[string]*FieldSpec `json:"fields"`
}

// SchemaRegistry provides schema lookup operations.
// Implementations can load schemas from files or other sources.
type SchemaRegistry interface {
	// GetSchemaByName retrieves a schema by its name
	GetSchemaByName(name string) (*IndexSchema, error)
	// ListSchemas returns a list of all registered schema names
	ListSchemas() []string
}
