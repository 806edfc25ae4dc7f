// Package trace stores property sale records.
package trace

import (
	"context"
	"errors"
	"fmt"

	"github.com/evcraddock/realstate-api/internal/apperr"
	"github.com/evcraddock/realstate-api/internal/docstore"
	"github.com/evcraddock/realstate-api/internal/objectid"
	"github.com/evcraddock/realstate-api/internal/validate"
)

// Collection is the document collection that holds sale records.
const Collection = "Property_traces"

// PropertyTrace records one sale of a property.
type PropertyTrace struct {
	ID         objectid.ID `json:"id" bson:"_id"`
	DateSale   string      `json:"date_sale" bson:"date_sale"`
	Name       string      `json:"name" bson:"name"`
	Value      float64     `json:"value" bson:"value"`
	Tax        float64     `json:"tax" bson:"tax"`
	IDProperty objectid.ID `json:"id_property" bson:"id_property"`
}

// Create is the input for a new sale record. DateSale is a YYYY-MM-DD date.
// The property is not checked for existence.
type Create struct {
	DateSale   string      `json:"date_sale" bson:"date_sale" validate:"required,datetime=2006-01-02"`
	Name       string      `json:"name" bson:"name" validate:"required"`
	Value      float64     `json:"value" bson:"value" validate:"gte=0"`
	Tax        float64     `json:"tax" bson:"tax" validate:"gte=0"`
	IDProperty objectid.ID `json:"id_property" bson:"id_property" validate:"objectid"`
}

// Update is a partial update of a sale record. Only non-nil fields are written.
type Update struct {
	DateSale   *string      `json:"date_sale,omitempty" validate:"omitnil,datetime=2006-01-02"`
	Name       *string      `json:"name,omitempty" validate:"omitnil,min=1"`
	Value      *float64     `json:"value,omitempty" validate:"omitnil,gte=0"`
	Tax        *float64     `json:"tax,omitempty" validate:"omitnil,gte=0"`
	IDProperty *objectid.ID `json:"id_property,omitempty" validate:"omitnil,objectid"`
}

func (u Update) fields() map[string]interface{} {
	f := make(map[string]interface{})
	if u.DateSale != nil {
		f["date_sale"] = *u.DateSale
	}
	if u.Name != nil {
		f["name"] = *u.Name
	}
	if u.Value != nil {
		f["value"] = *u.Value
	}
	if u.Tax != nil {
		f["tax"] = *u.Tax
	}
	if u.IDProperty != nil {
		f["id_property"] = *u.IDProperty
	}
	return f
}

// Repository provides data access for sale records.
type Repository struct {
	coll docstore.Collection
}

// NewRepository creates a trace repository on store's trace collection.
func NewRepository(store docstore.Store) *Repository {
	return &Repository{coll: store.Collection(Collection)}
}

// Create validates in and stores it.
func (r *Repository) Create(ctx context.Context, in Create) (*PropertyTrace, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	id, err := r.coll.InsertOne(ctx, in)
	if err != nil {
		return nil, apperr.Persistence("inserting property trace", err)
	}

	return &PropertyTrace{
		ID:         id,
		DateSale:   in.DateSale,
		Name:       in.Name,
		Value:      in.Value,
		Tax:        in.Tax,
		IDProperty: in.IDProperty,
	}, nil
}

// Get returns the sale record with the given id. The boolean is false when
// no record matches.
func (r *Repository) Get(ctx context.Context, id string) (*PropertyTrace, bool, error) {
	oid, err := objectid.Parse(id)
	if err != nil {
		return nil, false, fmt.Errorf("trace id %w", err)
	}

	var pt PropertyTrace
	err = r.coll.FindByID(ctx, oid, &pt)
	if errors.Is(err, docstore.ErrNoDocument) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperr.Persistence("querying property trace", err)
	}
	return &pt, true, nil
}

// Update sets the fields present in u and returns the full updated record.
func (r *Repository) Update(ctx context.Context, id string, u Update) (*PropertyTrace, error) {
	oid, err := objectid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("trace id %w", err)
	}
	if err := validate.Struct(u); err != nil {
		return nil, err
	}

	fields := u.fields()
	if len(fields) == 0 {
		pt, found, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, apperr.NotFound("property trace", id)
		}
		return pt, nil
	}

	var pt PropertyTrace
	err = r.coll.FindByIDAndSet(ctx, oid, fields, &pt)
	if errors.Is(err, docstore.ErrNoDocument) {
		return nil, apperr.NotFound("property trace", id)
	}
	if err != nil {
		return nil, apperr.Persistence("updating property trace", err)
	}
	return &pt, nil
}
