// Package image stores the records that link uploaded image files to properties.
package image

import (
	"context"
	"errors"
	"fmt"

	"github.com/evcraddock/realstate-api/internal/apperr"
	"github.com/evcraddock/realstate-api/internal/docstore"
	"github.com/evcraddock/realstate-api/internal/objectid"
	"github.com/evcraddock/realstate-api/internal/validate"
)

// Collection is the document collection that holds image records.
const Collection = "Property_images"

// PropertyImage links a stored file to a property.
type PropertyImage struct {
	ID         objectid.ID `json:"id" bson:"_id"`
	IDProperty objectid.ID `json:"id_property" bson:"id_property"`
	File       string      `json:"file" bson:"file"`
	Enable     bool        `json:"enable" bson:"enable"`
}

type newImage struct {
	IDProperty objectid.ID `json:"id_property" bson:"id_property"`
	File       string      `json:"file" bson:"file"`
	Enable     bool        `json:"enable" bson:"enable"`
}

// Update is a partial update of an image record. Only non-nil fields are
// written.
type Update struct {
	IDProperty *objectid.ID `json:"id_property,omitempty" validate:"omitnil,objectid"`
	File       *string      `json:"file,omitempty" validate:"omitnil,min=1"`
	Enable     *bool        `json:"enable,omitempty"`
}

func (u Update) fields() map[string]interface{} {
	f := make(map[string]interface{})
	if u.IDProperty != nil {
		f["id_property"] = *u.IDProperty
	}
	if u.File != nil {
		f["file"] = *u.File
	}
	if u.Enable != nil {
		f["enable"] = *u.Enable
	}
	return f
}

// Repository provides data access for image records.
type Repository struct {
	coll docstore.Collection
}

// NewRepository creates an image repository on store's image collection.
func NewRepository(store docstore.Store) *Repository {
	return &Repository{coll: store.Collection(Collection)}
}

// AddImage records file as an image of propertyID. It does not check that
// the property exists.
func (r *Repository) AddImage(ctx context.Context, propertyID, file string, enabled bool) (*PropertyImage, error) {
	pid, err := objectid.Parse(propertyID)
	if err != nil {
		return nil, fmt.Errorf("property id %w", err)
	}
	if file == "" {
		return nil, apperr.Invalid("file", "field required")
	}

	doc := newImage{IDProperty: pid, File: file, Enable: enabled}
	id, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, apperr.Persistence("inserting property image", err)
	}

	return &PropertyImage{ID: id, IDProperty: pid, File: file, Enable: enabled}, nil
}

// Get returns the image record with the given id. The boolean is false when
// no record matches.
func (r *Repository) Get(ctx context.Context, id string) (*PropertyImage, bool, error) {
	oid, err := objectid.Parse(id)
	if err != nil {
		return nil, false, fmt.Errorf("image id %w", err)
	}

	var img PropertyImage
	err = r.coll.FindByID(ctx, oid, &img)
	if errors.Is(err, docstore.ErrNoDocument) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperr.Persistence("querying property image", err)
	}
	return &img, true, nil
}

// Update sets the fields present in u and returns the full updated record.
// Disabling an image leaves its file in place.
func (r *Repository) Update(ctx context.Context, id string, u Update) (*PropertyImage, error) {
	oid, err := objectid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("image id %w", err)
	}
	if err := validate.Struct(u); err != nil {
		return nil, err
	}

	fields := u.fields()
	if len(fields) == 0 {
		img, found, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, apperr.NotFound("property image", id)
		}
		return img, nil
	}

	var img PropertyImage
	err = r.coll.FindByIDAndSet(ctx, oid, fields, &img)
	if errors.Is(err, docstore.ErrNoDocument) {
		return nil, apperr.NotFound("property image", id)
	}
	if err != nil {
		return nil, apperr.Persistence("updating property image", err)
	}
	return &img, nil
}
