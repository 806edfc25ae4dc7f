// Package objectid provides the identifier type used for every stored document.
//
// An ID is the 12-byte value native to MongoDB, written as 24 lowercase hex
// characters in JSON and carried as a BSON ObjectId in the database.
package objectid

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/evcraddock/realstate-api/internal/apperr"
)

// ID identifies a stored document. The zero value means "not assigned".
type ID [12]byte

// Nil is the zero ID.
var Nil ID

// New generates a fresh, unique ID.
func New() ID {
	return ID(primitive.NewObjectID())
}

// Parse validates s as a 24-character hex identifier.
func Parse(s string) (ID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return Nil, fmt.Errorf("%q: %w", s, apperr.ErrInvalidIdentifier)
	}
	return ID(oid), nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests and constants.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// FromObjectID wraps a driver ObjectID.
func FromObjectID(oid primitive.ObjectID) ID {
	return ID(oid)
}

// ObjectID returns the driver representation.
func (id ID) ObjectID() primitive.ObjectID {
	return primitive.ObjectID(id)
}

// Hex returns the 24-character hex form.
func (id ID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id ID) String() string {
	return id.Hex()
}

// IsZero reports whether the ID is unassigned.
func (id ID) IsZero() bool {
	return id == Nil
}

// MarshalJSON writes the ID as a hex string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON accepts a hex string.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("identifier must be a string: %w", apperr.ErrInvalidIdentifier)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalText lets an ID be used as a JSON object key.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText parses a hex string.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalBSONValue stores the ID as a native ObjectId.
func (id ID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

// UnmarshalBSONValue reads a native ObjectId or its hex string form.
func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeObjectID:
		var oid primitive.ObjectID
		if err := raw.Unmarshal(&oid); err != nil {
			return err
		}
		*id = ID(oid)
		return nil
	case bson.TypeString:
		var s string
		if err := raw.Unmarshal(&s); err != nil {
			return err
		}
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	default:
		return fmt.Errorf("bson type %s: %w", t, apperr.ErrInvalidIdentifier)
	}
}
