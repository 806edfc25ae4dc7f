// Package property provides the property domain model, data access and the
// service that orchestrates price changes and image uploads.
package property

import "github.com/evcraddock/realstate-api/internal/objectid"

// Collection is the document collection that holds properties.
const Collection = "Properties"

// Property is a stored real-estate listing.
type Property struct {
	ID           objectid.ID `json:"id" bson:"_id"`
	Name         string      `json:"name" bson:"name"`
	Address      string      `json:"address" bson:"address"`
	Price        float64     `json:"price" bson:"price"`
	CodeInternal string      `json:"code_internal" bson:"code_internal"`
	Year         int         `json:"year" bson:"year"`
	IDOwner      string      `json:"id_owner" bson:"id_owner"`
}

// Create is the input for a new property. IDOwner is a free-text owner
// reference and is not checked against the owners collection.
type Create struct {
	Name         string  `json:"name" bson:"name" validate:"required"`
	Address      string  `json:"address" bson:"address" validate:"required"`
	Price        float64 `json:"price" bson:"price" validate:"gte=0"`
	CodeInternal string  `json:"code_internal" bson:"code_internal" validate:"required"`
	Year         int     `json:"year" bson:"year" validate:"gte=0"`
	IDOwner      string  `json:"id_owner" bson:"id_owner" validate:"required"`
}

// Update is a partial update. Only non-nil fields are written.
type Update struct {
	Name         *string  `json:"name,omitempty" validate:"omitnil,min=1"`
	Address      *string  `json:"address,omitempty" validate:"omitnil,min=1"`
	Price        *float64 `json:"price,omitempty" validate:"omitnil,gte=0"`
	CodeInternal *string  `json:"code_internal,omitempty" validate:"omitnil,min=1"`
	Year         *int     `json:"year,omitempty" validate:"omitnil,gte=0"`
	IDOwner      *string  `json:"id_owner,omitempty" validate:"omitnil,min=1"`
}

// fields returns the document fields set by u.
func (u Update) fields() map[string]interface{} {
	f := make(map[string]interface{})
	if u.Name != nil {
		f["name"] = *u.Name
	}
	if u.Address != nil {
		f["address"] = *u.Address
	}
	if u.Price != nil {
		f["price"] = *u.Price
	}
	if u.CodeInternal != nil {
		f["code_internal"] = *u.CodeInternal
	}
	if u.Year != nil {
		f["year"] = *u.Year
	}
	if u.IDOwner != nil {
		f["id_owner"] = *u.IDOwner
	}
	return f
}
