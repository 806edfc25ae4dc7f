package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/evcraddock/realstate-api/internal/objectid"
)

type record struct {
	ID    objectid.ID `json:"id" bson:"_id"`
	Name  string      `json:"name" bson:"name"`
	Price float64     `json:"price" bson:"price"`
	Year  int         `json:"year" bson:"year"`
}

type newRecord struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
	Year  int     `json:"year" bson:"year"`
}

// exerciseCollection runs the same behavior checks against any backend.
func exerciseCollection(t *testing.T, s Store) {
	ctx := context.Background()
	coll := s.Collection("Properties")

	t.Run("insert and find", func(t *testing.T) {
		id, err := coll.InsertOne(ctx, newRecord{Name: "Casa", Price: 1000, Year: 2000})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if id.IsZero() {
			t.Fatal("expected an assigned id")
		}

		var got record
		if err := coll.FindByID(ctx, id, &got); err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.ID != id {
			t.Errorf("ID = %s, want %s", got.ID, id)
		}
		if got.Name != "Casa" || got.Price != 1000 || got.Year != 2000 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("distinct ids", func(t *testing.T) {
		a, err := coll.InsertOne(ctx, newRecord{Name: "A"})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		b, err := coll.InsertOne(ctx, newRecord{Name: "A"})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if a == b {
			t.Errorf("expected distinct ids, got %s twice", a)
		}
	})

	t.Run("find missing", func(t *testing.T) {
		var got record
		err := coll.FindByID(ctx, objectid.New(), &got)
		if !errors.Is(err, ErrNoDocument) {
			t.Errorf("err = %v, want ErrNoDocument", err)
		}
	})

	t.Run("collections are separate", func(t *testing.T) {
		id, err := coll.InsertOne(ctx, newRecord{Name: "B"})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		var got record
		err = s.Collection("Owners").FindByID(ctx, id, &got)
		if !errors.Is(err, ErrNoDocument) {
			t.Errorf("err = %v, want ErrNoDocument", err)
		}
	})

	t.Run("set returns updated document", func(t *testing.T) {
		id, err := coll.InsertOne(ctx, newRecord{Name: "C", Price: 1000, Year: 2000})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}

		var got record
		if err := coll.FindByIDAndSet(ctx, id, map[string]interface{}{"price": 2500.5}, &got); err != nil {
			t.Fatalf("set: %v", err)
		}
		if got.Price != 2500.5 {
			t.Errorf("Price = %v, want 2500.5", got.Price)
		}
		if got.Name != "C" || got.Year != 2000 || got.ID != id {
			t.Errorf("other fields changed: %+v", got)
		}

		var reread record
		if err := coll.FindByID(ctx, id, &reread); err != nil {
			t.Fatalf("find: %v", err)
		}
		if reread != got {
			t.Errorf("reread = %+v, want %+v", reread, got)
		}
	})

	t.Run("set missing", func(t *testing.T) {
		var got record
		err := coll.FindByIDAndSet(ctx, objectid.New(), map[string]interface{}{"price": 1.0}, &got)
		if !errors.Is(err, ErrNoDocument) {
			t.Errorf("err = %v, want ErrNoDocument", err)
		}
	})
}
