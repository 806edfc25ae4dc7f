// Package owner stores property owners.
package owner

import (
	"context"
	"errors"
	"fmt"

	"github.com/evcraddock/realstate-api/internal/apperr"
	"github.com/evcraddock/realstate-api/internal/docstore"
	"github.com/evcraddock/realstate-api/internal/objectid"
	"github.com/evcraddock/realstate-api/internal/validate"
)

// Collection is the document collection that holds owners.
const Collection = "Owners"

// Owner is a stored property owner.
type Owner struct {
	ID       objectid.ID `json:"id" bson:"_id"`
	Name     string      `json:"name" bson:"name"`
	Address  string      `json:"address" bson:"address"`
	Photo    *string     `json:"photo,omitempty" bson:"photo,omitempty"`
	Birthday string      `json:"birthday" bson:"birthday"`
}

// Create is the input for a new owner. Birthday is a YYYY-MM-DD date.
type Create struct {
	Name     string  `json:"name" bson:"name" validate:"required"`
	Address  string  `json:"address" bson:"address" validate:"required"`
	Photo    *string `json:"photo,omitempty" bson:"photo,omitempty"`
	Birthday string  `json:"birthday" bson:"birthday" validate:"required,datetime=2006-01-02"`
}

// Update is a partial update of an owner. Only non-nil fields are written.
type Update struct {
	Name     *string `json:"name,omitempty" validate:"omitnil,min=1"`
	Address  *string `json:"address,omitempty" validate:"omitnil,min=1"`
	Photo    *string `json:"photo,omitempty"`
	Birthday *string `json:"birthday,omitempty" validate:"omitnil,datetime=2006-01-02"`
}

func (u Update) fields() map[string]interface{} {
	f := make(map[string]interface{})
	if u.Name != nil {
		f["name"] = *u.Name
	}
	if u.Address != nil {
		f["address"] = *u.Address
	}
	if u.Photo != nil {
		f["photo"] = *u.Photo
	}
	if u.Birthday != nil {
		f["birthday"] = *u.Birthday
	}
	return f
}

// Repository provides data access for owners.
type Repository struct {
	coll docstore.Collection
}

// NewRepository creates an owner repository on store's owners collection.
func NewRepository(store docstore.Store) *Repository {
	return &Repository{coll: store.Collection(Collection)}
}

// Create validates in and stores it.
func (r *Repository) Create(ctx context.Context, in Create) (*Owner, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	id, err := r.coll.InsertOne(ctx, in)
	if err != nil {
		return nil, apperr.Persistence("inserting owner", err)
	}

	return &Owner{
		ID:       id,
		Name:     in.Name,
		Address:  in.Address,
		Photo:    in.Photo,
		Birthday: in.Birthday,
	}, nil
}

// Get returns the owner with the given id. The boolean is false when no
// owner matches.
func (r *Repository) Get(ctx context.Context, id string) (*Owner, bool, error) {
	oid, err := objectid.Parse(id)
	if err != nil {
		return nil, false, fmt.Errorf("owner id %w", err)
	}

	var o Owner
	err = r.coll.FindByID(ctx, oid, &o)
	if errors.Is(err, docstore.ErrNoDocument) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperr.Persistence("querying owner", err)
	}
	return &o, true, nil
}

// Update sets the fields present in u and returns the full updated owner.
func (r *Repository) Update(ctx context.Context, id string, u Update) (*Owner, error) {
	oid, err := objectid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("owner id %w", err)
	}
	if err := validate.Struct(u); err != nil {
		return nil, err
	}

	fields := u.fields()
	if len(fields) == 0 {
		o, found, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, apperr.NotFound("owner", id)
		}
		return o, nil
	}

	var o Owner
	err = r.coll.FindByIDAndSet(ctx, oid, fields, &o)
	if errors.Is(err, docstore.ErrNoDocument) {
		return nil, apperr.NotFound("owner", id)
	}
	if err != nil {
		return nil, apperr.Persistence("updating owner", err)
	}
	return &o, nil
}
