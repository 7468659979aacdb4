package internal

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/indexkit/indexkit"
)

// DocumentBuilder converts logical records into physical index documents and
// back. On the write path, declared fields use the handler of their declared
// type and undeclared fields resolve dynamically by value kind; on the read
// path the handler is always known from the field's type, never inferred from
// the value.
type DocumentBuilder struct {
	registry *indexkit.TypeRegistry
	schemas  indexkit.SchemaRegistry
}

// NewDocumentBuilder creates a DocumentBuilder backed by the provided schema
// registry and type registry.
func NewDocumentBuilder(schemas indexkit.SchemaRegistry, registry *indexkit.TypeRegistry) *DocumentBuilder {
	return &DocumentBuilder{
		registry: registry,
		schemas:  schemas,
	}
}

// Build encodes record into its physical document. Values that encode to
// absent are omitted; slice values fan out into multi-valued fields.
func (b *DocumentBuilder) Build(record *indexkit.DataRecord) (*indexkit.IndexDocument, error) {
	schema, err := b.schemas.GetSchemaByName(record.Schema)
	if err != nil {
		return nil, err
	}

	doc := &indexkit.IndexDocument{
		ID:     record.DocID.String(),
		Schema: record.Schema,
		Fields: make(map[string][]string),
	}

	for name, value := range record.Fields {
		handler, err := b.handlerForField(schema, name, value)
		if err != nil {
			return nil, err
		}

		physical := handler.IndexedName(name)
		for _, element := range fanOut(value) {
			if wire, ok := handler.ToIndexed(element); ok {
				doc.Fields[physical] = append(doc.Fields[physical], wire)
			}
		}
	}

	return doc, nil
}

// Decode reconstructs the logical record from a physical document. Declared
// fields cast with their declared handler; dynamic fields cast with the
// handler implied by their name suffix. Full-text fields are write-only and
// are skipped.
func (b *DocumentBuilder) Decode(doc *indexkit.IndexDocument) (*indexkit.DataRecord, error) {
	schema, err := b.schemas.GetSchemaByName(doc.Schema)
	if err != nil {
		return nil, err
	}

	docID, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, indexkit.NewDecodeError(indexkit.ErrCodeStorageFailure,
			fmt.Sprintf("parse document id %q", doc.ID), err)
	}

	record := &indexkit.DataRecord{
		Schema: doc.Schema,
		DocID:  docID,
		Fields: make(map[string]any),
	}

	declared := make(map[string]*indexkit.FieldSpec, len(schema.Fields))
	for _, spec := range schema.Fields {
		physical, err := spec.IndexedName()
		if err != nil {
			return nil, err
		}
		declared[physical] = spec
	}

	for physical, wires := range doc.Fields {
		var (
			base        string
			fieldType   indexkit.FieldType
			multiValued bool
		)
		if spec, ok := declared[physical]; ok {
			base, fieldType, multiValued = spec.Name, spec.Type, spec.MultiValued
		} else {
			var ok bool
			base, fieldType, ok = indexkit.SplitIndexedName(physical)
			if !ok {
				return nil, indexkit.NewDecodeError(indexkit.ErrCodeUnknownFieldType,
					fmt.Sprintf("field %q carries no recognized type suffix", physical), nil)
			}
			multiValued = len(wires) > 1
		}

		if fieldType == indexkit.FieldTypeText {
			continue
		}

		handler, err := indexkit.HandlerFor(fieldType)
		if err != nil {
			return nil, err
		}

		values, err := castAll(handler, wires)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			continue
		}

		if multiValued {
			record.Fields[base] = values
		} else {
			record.Fields[base] = values[0]
		}
	}

	return record, nil
}

func (b *DocumentBuilder) handlerForField(schema *indexkit.IndexSchema, name string, value any) (indexkit.Handler, error) {
	if spec, ok := schema.Fields[name]; ok {
		return indexkit.HandlerFor(spec.Type)
	}

	// Dynamic field: resolve by value kind. For slices the element kind
	// decides, so every element lands in the same storage slot.
	elements := fanOut(value)
	if len(elements) == 0 {
		return indexkit.String, nil
	}
	return b.registry.Resolve(elements[0]), nil
}

func castAll(handler indexkit.Handler, wires []string) ([]any, error) {
	values := make([]any, 0, len(wires))
	for _, wire := range wires {
		value, err := handler.Cast(wire)
		if err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		values = append(values, value)
	}
	return values, nil
}

// fanOut flattens a value into the elements to encode individually.
func fanOut(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		elements := make([]any, len(v))
		for i, s := range v {
			elements[i] = s
		}
		return elements
	case []int:
		elements := make([]any, len(v))
		for i, n := range v {
			elements[i] = n
		}
		return elements
	case []float64:
		elements := make([]any, len(v))
		for i, f := range v {
			elements[i] = f
		}
		return elements
	default:
		return []any{value}
	}
}
