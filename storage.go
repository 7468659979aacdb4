package indexkit

import (
	"context"

	"github.com/google/uuid"
)

// IndexStore is the persistence boundary consumed by indexing clients.
type IndexStore interface {
	// Document operations
	Add(ctx context.Context, record *DataRecord) error
	Get(ctx context.Context, docID uuid.UUID) (*DataRecord, error)
	Delete(ctx context.Context, docID uuid.UUID) error

	// Query returns the records of schemaName whose field matches value
	// exactly. The needle is encoded with the same handler used at write
	// time, so typed lookups compare wire form to wire form.
	Query(ctx context.Context, schemaName, field string, value any) ([]*DataRecord, error)

	// Close releases the underlying storage.
	Close() error
}
