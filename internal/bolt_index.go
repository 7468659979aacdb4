package internal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/indexkit/indexkit"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	bucketDocs  = []byte("docs")
	bucketTerms = []byte("terms")
)

// boltIndex is an IndexStore backed by a local bbolt file. Documents are
// stored in their physical form under "docs"; "terms" holds one nested
// bucket per (schema, physical field, wire value) whose keys are the doc IDs
// carrying that value. Queries therefore reduce to a posting-bucket scan.
type boltIndex struct {
	db      *bbolt.DB
	builder *DocumentBuilder
	schemas indexkit.SchemaRegistry
}

// NewBoltIndex opens (or creates) a bbolt-backed index at path.
func NewBoltIndex(path string, schemas indexkit.SchemaRegistry, registry *indexkit.TypeRegistry) (indexkit.IndexStore, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, indexkit.NewStorageError(indexkit.ErrCodeStorageFailure,
			fmt.Sprintf("failed to open index file %s", path), err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketDocs, bucketTerms} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, indexkit.NewStorageError(indexkit.ErrCodeStorageFailure, "failed to create index buckets", err)
	}

	return &boltIndex{
		db:      db,
		builder: NewDocumentBuilder(schemas, registry),
		schemas: schemas,
	}, nil
}

func (s *boltIndex) Close() error {
	return s.db.Close()
}

// Add encodes record through the type registry and stores it together with
// its term postings. Records without a DocID are assigned one.
func (s *boltIndex) Add(ctx context.Context, record *indexkit.DataRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if record.DocID == uuid.Nil {
		record.DocID = uuid.Must(uuid.NewV7())
	}

	doc, err := s.builder.Build(record)
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return indexkit.NewStorageError(indexkit.ErrCodeStorageFailure, "failed to marshal document", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		docKey := []byte(doc.ID)

		// Replace semantics: drop the previous version's postings first.
		if previous := tx.Bucket(bucketDocs).Get(docKey); previous != nil {
			var old indexkit.IndexDocument
			if err := json.Unmarshal(previous, &old); err != nil {
				return err
			}
			if err := removePostings(tx, &old); err != nil {
				return err
			}
		}

		if err := tx.Bucket(bucketDocs).Put(docKey, data); err != nil {
			return err
		}

		for field, wires := range doc.Fields {
			for _, wire := range wires {
				posting, err := tx.Bucket(bucketTerms).CreateBucketIfNotExists(termKey(doc.Schema, field, wire))
				if err != nil {
					return err
				}
				if err := posting.Put(docKey, nil); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return indexkit.NewStorageError(indexkit.ErrCodeStorageFailure, "failed to store document", err)
	}

	zap.S().Debugw("indexed document",
		"schema", record.Schema,
		"doc_id", record.DocID,
		"fields", len(doc.Fields))
	return nil
}

// Get loads one record by its doc ID.
func (s *boltIndex) Get(ctx context.Context, docID uuid.UUID) (*indexkit.DataRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc *indexkit.IndexDocument
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(docID.String()))
		if data == nil {
			return indexkit.NewNotFoundError(indexkit.ErrCodeDocNotFound,
				fmt.Sprintf("document not found: %s", docID))
		}
		doc = &indexkit.IndexDocument{}
		return json.Unmarshal(data, doc)
	})
	if err != nil {
		return nil, err
	}

	return s.builder.Decode(doc)
}

// Delete removes a record and its term postings.
func (s *boltIndex) Delete(ctx context.Context, docID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		docKey := []byte(docID.String())
		data := tx.Bucket(bucketDocs).Get(docKey)
		if data == nil {
			return indexkit.NewNotFoundError(indexkit.ErrCodeDocNotFound,
				fmt.Sprintf("document not found: %s", docID))
		}

		var doc indexkit.IndexDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		if err := removePostings(tx, &doc); err != nil {
			return err
		}
		return tx.Bucket(bucketDocs).Delete(docKey)
	})
}

// Query finds the records of schemaName whose field equals value. The needle
// is encoded with the handler the write path used for that field, so the
// comparison happens in wire form.
func (s *boltIndex) Query(ctx context.Context, schemaName, field string, value any) ([]*indexkit.DataRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	schema, err := s.schemas.GetSchemaByName(schemaName)
	if err != nil {
		return nil, err
	}

	var handler indexkit.Handler
	if spec, ok := schema.Fields[field]; ok {
		handler, err = indexkit.HandlerFor(spec.Type)
		if err != nil {
			return nil, err
		}
	} else {
		handler = s.builder.registry.Resolve(value)
	}

	wire, ok := handler.ToIndexed(value)
	if !ok {
		return nil, indexkit.NewValidationError(indexkit.ErrCodeStorageFailure,
			fmt.Sprintf("query value for field %q encodes to absent", field)).WithField(field)
	}

	physical := handler.IndexedName(field)

	var records []*indexkit.DataRecord
	err = s.db.View(func(tx *bbolt.Tx) error {
		posting := tx.Bucket(bucketTerms).Bucket(termKey(schemaName, physical, wire))
		if posting == nil {
			return nil
		}
		return posting.ForEach(func(docKey, _ []byte) error {
			data := tx.Bucket(bucketDocs).Get(docKey)
			if data == nil {
				// Posting left behind by a partial delete; skip it.
				return nil
			}
			var doc indexkit.IndexDocument
			if err := json.Unmarshal(data, &doc); err != nil {
				return err
			}
			record, err := s.builder.Decode(&doc)
			if err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	zap.S().Debugw("term query",
		"schema", schemaName,
		"field", physical,
		"value", wire,
		"hits", len(records))
	return records, nil
}

func removePostings(tx *bbolt.Tx, doc *indexkit.IndexDocument) error {
	docKey := []byte(doc.ID)
	for field, wires := range doc.Fields {
		for _, wire := range wires {
			posting := tx.Bucket(bucketTerms).Bucket(termKey(doc.Schema, field, wire))
			if posting == nil {
				continue
			}
			if err := posting.Delete(docKey); err != nil {
				return err
			}
		}
	}
	return nil
}

// termKey builds the nested bucket name for one (schema, field, value) term.
// The components are joined with NUL, which cannot appear in schema or field
// names.
func termKey(schema, field, wire string) []byte {
	key := make([]byte, 0, len(schema)+len(field)+len(wire)+2)
	key = append(key, schema...)
	key = append(key, 0)
	key = append(key, field...)
	key = append(key, 0)
	key = append(key, wire...)
	return key
}
