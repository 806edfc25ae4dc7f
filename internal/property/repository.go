package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/evcraddock/realstate-api/internal/apperr"
	"github.com/evcraddock/realstate-api/internal/docstore"
	"github.com/evcraddock/realstate-api/internal/objectid"
	"github.com/evcraddock/realstate-api/internal/validate"
)

// Repository provides data access for properties.
type Repository struct {
	coll docstore.Collection
}

// NewRepository creates a property repository on store's properties collection.
func NewRepository(store docstore.Store) *Repository {
	return &Repository{coll: store.Collection(Collection)}
}

// Create validates in, stores it and returns the stored property.
func (r *Repository) Create(ctx context.Context, in Create) (*Property, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	id, err := r.coll.InsertOne(ctx, in)
	if err != nil {
		return nil, apperr.Persistence("inserting property", err)
	}

	return &Property{
		ID:           id,
		Name:         in.Name,
		Address:      in.Address,
		Price:        in.Price,
		CodeInternal: in.CodeInternal,
		Year:         in.Year,
		IDOwner:      in.IDOwner,
	}, nil
}

// Get returns the property with the given id. The boolean is false when no
// property matches; that case is not an error.
func (r *Repository) Get(ctx context.Context, id string) (*Property, bool, error) {
	oid, err := objectid.Parse(id)
	if err != nil {
		return nil, false, fmt.Errorf("property id %w", err)
	}

	var p Property
	err = r.coll.FindByID(ctx, oid, &p)
	if errors.Is(err, docstore.ErrNoDocument) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperr.Persistence("querying property", err)
	}

	return &p, true, nil
}

// Update sets the fields present in u and returns the full updated property.
func (r *Repository) Update(ctx context.Context, id string, u Update) (*Property, error) {
	oid, err := objectid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("property id %w", err)
	}
	if err := validate.Struct(u); err != nil {
		return nil, err
	}

	fields := u.fields()
	if len(fields) == 0 {
		p, found, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, apperr.NotFound("property", id)
		}
		return p, nil
	}

	var p Property
	err = r.coll.FindByIDAndSet(ctx, oid, fields, &p)
	if errors.Is(err, docstore.ErrNoDocument) {
		return nil, apperr.NotFound("property", id)
	}
	if err != nil {
		return nil, apperr.Persistence("updating property", err)
	}

	return &p, nil
}
