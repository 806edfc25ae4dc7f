// Package docstore is the document-database boundary. A Store hands out named
// collections; each collection supports the three single-document calls the
// repositories need: insert, find by id, and find-and-set by id.
package docstore

import (
	"context"
	"errors"

	"github.com/evcraddock/realstate-api/internal/objectid"
)

// ErrNoDocument is returned when no document matches the requested id.
var ErrNoDocument = errors.New("docstore: no document")

// Collection is a named group of flat documents keyed by objectid.ID.
//
// Documents are Go structs whose field names are given by matching `json`
// and `bson` tags. Stored records carry the identifier as `json:"id"` and
// `bson:"_id"`.
type Collection interface {
	// InsertOne stores doc and returns the identifier assigned to it.
	// doc must not carry an identifier of its own.
	InsertOne(ctx context.Context, doc interface{}) (objectid.ID, error)

	// FindByID decodes the document with the given id into out.
	FindByID(ctx context.Context, id objectid.ID, out interface{}) error

	// FindByIDAndSet sets the given top-level fields on the document with
	// the given id and decodes the updated document into out.
	FindByIDAndSet(ctx context.Context, id objectid.ID, fields map[string]interface{}, out interface{}) error
}

// Store owns the database connection.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
