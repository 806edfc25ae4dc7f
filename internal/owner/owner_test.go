package owner

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/evcraddock/realstate-api/internal/apperr"
	"github.com/evcraddock/realstate-api/internal/docstore"
	"github.com/evcraddock/realstate-api/internal/objectid"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	store, err := docstore.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return NewRepository(store)
}

func TestCreateAndGet(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	photo := "app/images/joe.jpg"

	tests := []struct {
		name string
		in   Create
	}{
		{"with photo", Create{Name: "Joe Doe", Address: "Calle 2 #3-4", Photo: &photo, Birthday: "1980-02-29"}},
		{"without photo", Create{Name: "Ann Roe", Address: "Calle 5 #6-7", Birthday: "1975-12-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := repo.Create(ctx, tt.in)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if o.ID.IsZero() {
				t.Error("expected non-zero ID")
			}

			got, found, err := repo.Get(ctx, o.ID.Hex())
			if err != nil || !found {
				t.Fatalf("get: found=%v err=%v", found, err)
			}
			if got.Name != tt.in.Name || got.Address != tt.in.Address || got.Birthday != tt.in.Birthday {
				t.Errorf("got %+v, want %+v", got, tt.in)
			}
			if (got.Photo == nil) != (tt.in.Photo == nil) {
				t.Errorf("photo = %v, want %v", got.Photo, tt.in.Photo)
			}
			if got.Photo != nil && *got.Photo != *tt.in.Photo {
				t.Errorf("photo = %q, want %q", *got.Photo, *tt.in.Photo)
			}
		})
	}
}

func TestCreateValidation(t *testing.T) {
	repo := testRepo(t)

	tests := []struct {
		name      string
		in        Create
		wantField string
	}{
		{"missing name", Create{Address: "x", Birthday: "1980-01-01"}, "name"},
		{"missing address", Create{Name: "x", Birthday: "1980-01-01"}, "address"},
		{"missing birthday", Create{Name: "x", Address: "y"}, "birthday"},
		{"bad birthday", Create{Name: "x", Address: "y", Birthday: "01/01/1980"}, "birthday"},
		{"impossible date", Create{Name: "x", Address: "y", Birthday: "1981-02-29"}, "birthday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(context.Background(), tt.in)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			fields := apperr.Fields(err)
			if len(fields) != 1 || fields[0].Field != tt.wantField {
				t.Errorf("fields = %+v, want %q", fields, tt.wantField)
			}
		})
	}
}

func TestGetMissingAndInvalid(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	_, found, err := repo.Get(ctx, objectid.New().Hex())
	if err != nil || found {
		t.Errorf("found=%v err=%v, want not found", found, err)
	}

	if _, _, err := repo.Get(ctx, "JOED1"); !errors.Is(err, apperr.ErrInvalidIdentifier) {
		t.Errorf("err = %v, want ErrInvalidIdentifier", err)
	}
}

func strPtr(s string) *string { return &s }

func TestUpdatePartial(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		update Update
		check  func(t *testing.T, before, after *Owner)
	}{
		{
			name:   "address only",
			update: Update{Address: strPtr("Calle 9 #9-9")},
			check: func(t *testing.T, before, after *Owner) {
				if after.Address != "Calle 9 #9-9" {
					t.Errorf("address = %q", after.Address)
				}
				if after.Name != before.Name || after.Birthday != before.Birthday {
					t.Errorf("untouched fields changed: %+v", after)
				}
			},
		},
		{
			name:   "adds photo",
			update: Update{Photo: strPtr("app/images/joe.jpg")},
			check: func(t *testing.T, before, after *Owner) {
				if after.Photo == nil || *after.Photo != "app/images/joe.jpg" {
					t.Errorf("photo = %v", after.Photo)
				}
				if after.Address != before.Address {
					t.Errorf("address = %q, want %q", after.Address, before.Address)
				}
			},
		},
		{
			name:   "empty update returns current record",
			update: Update{},
			check: func(t *testing.T, before, after *Owner) {
				if after.ID != before.ID || after.Name != before.Name {
					t.Errorf("got %+v, want %+v", after, before)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := repo.Create(ctx, Create{Name: "Joe Doe", Address: "Calle 2 #3-4", Birthday: "1980-02-29"})
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			after, err := repo.Update(ctx, before.ID.Hex(), tt.update)
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if after.ID != before.ID {
				t.Errorf("id = %s, want %s", after.ID, before.ID)
			}
			tt.check(t, before, after)

			stored, found, err := repo.Get(ctx, before.ID.Hex())
			if err != nil || !found {
				t.Fatalf("get: found=%v err=%v", found, err)
			}
			if stored.Address != after.Address {
				t.Errorf("stored address = %q, returned %q", stored.Address, after.Address)
			}
		})
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	missing := objectid.New().Hex()

	tests := []struct {
		name   string
		update Update
	}{
		{"with fields", Update{Name: strPtr("x")}},
		{"empty", Update{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Update(ctx, missing, tt.update); !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("err = %v, want ErrNotFound", err)
			}
		})
	}

	if _, err := repo.Update(ctx, "JOED1", Update{Name: strPtr("x")}); !errors.Is(err, apperr.ErrInvalidIdentifier) {
		t.Errorf("err = %v, want ErrInvalidIdentifier", err)
	}
}

func TestUpdateValidation(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	o, err := repo.Create(ctx, Create{Name: "Joe Doe", Address: "Calle 2 #3-4", Birthday: "1980-02-29"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		name      string
		update    Update
		wantField string
	}{
		{"empty name", Update{Name: strPtr("")}, "name"},
		{"bad birthday", Update{Birthday: strPtr("29/02/1980")}, "birthday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Update(ctx, o.ID.Hex(), tt.update)
			fields := apperr.Fields(err)
			if len(fields) != 1 || fields[0].Field != tt.wantField {
				t.Errorf("err = %v, want validation error on %q", err, tt.wantField)
			}
		})
	}

	got, _, err := repo.Get(ctx, o.ID.Hex())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Joe Doe" || got.Birthday != "1980-02-29" {
		t.Errorf("rejected update was written: %+v", got)
	}
}
