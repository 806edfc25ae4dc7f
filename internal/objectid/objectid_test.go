package objectid

import (
	"encoding/json"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/evcraddock/realstate-api/internal/apperr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid lowercase", input: "65a1f0c2e4b0a1b2c3d4e5f6"},
		{name: "valid uppercase", input: "65A1F0C2E4B0A1B2C3D4E5F6"},
		{name: "empty", input: "", wantErr: true},
		{name: "too short", input: "65a1f0c2e4b0", wantErr: true},
		{name: "too long", input: "65a1f0c2e4b0a1b2c3d4e5f600", wantErr: true},
		{name: "not hex", input: "zzzzzzzzzzzzzzzzzzzzzzzz", wantErr: true},
		{name: "free text owner code", input: "JOED1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrInvalidIdentifier) {
					t.Fatalf("err = %v, want ErrInvalidIdentifier", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if id.IsZero() {
			t.Fatal("expected non-zero ID")
		}
		if seen[id] {
			t.Fatalf("duplicate ID %s", id)
		}
		seen[id] = true
	}
}

func TestRoundTrip(t *testing.T) {
	oid := primitive.NewObjectID()
	id := FromObjectID(oid)
	if id.ObjectID() != oid {
		t.Errorf("ObjectID() = %s, want %s", id.ObjectID().Hex(), oid.Hex())
	}
	if id.Hex() != oid.Hex() {
		t.Errorf("Hex() = %q, want %q", id.Hex(), oid.Hex())
	}

	parsed, err := Parse(id.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != id {
		t.Errorf("parsed = %s, want %s", parsed, id)
	}
}

func TestJSON(t *testing.T) {
	id := MustParse("65a1f0c2e4b0a1b2c3d4e5f6")

	data, err := json.Marshal(struct {
		ID ID `json:"id"`
	}{ID: id})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"id":"65a1f0c2e4b0a1b2c3d4e5f6"}` {
		t.Errorf("json = %s", data)
	}

	var out struct {
		ID ID `json:"id"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ID != id {
		t.Errorf("id = %s, want %s", out.ID, id)
	}

	if err := json.Unmarshal([]byte(`{"id":"nope"}`), &out); !errors.Is(err, apperr.ErrInvalidIdentifier) {
		t.Errorf("err = %v, want ErrInvalidIdentifier", err)
	}
	if err := json.Unmarshal([]byte(`{"id":42}`), &out); !errors.Is(err, apperr.ErrInvalidIdentifier) {
		t.Errorf("err = %v, want ErrInvalidIdentifier", err)
	}
}

func TestMapKey(t *testing.T) {
	a := MustParse("65a1f0c2e4b0a1b2c3d4e5f6")
	b := MustParse("65a1f0c2e4b0a1b2c3d4e5f6")

	m := map[ID]string{a: "first"}
	if m[b] != "first" {
		t.Error("expected equal IDs to address the same map entry")
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"65a1f0c2e4b0a1b2c3d4e5f6":"first"}` {
		t.Errorf("json = %s", data)
	}
}

func TestBSON(t *testing.T) {
	id := New()
	doc := struct {
		ID ID `bson:"_id"`
	}{ID: id}

	data, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	raw := bson.Raw(data).Lookup("_id")
	if raw.Type != bson.TypeObjectID {
		t.Fatalf("bson type = %s, want ObjectID", raw.Type)
	}
	if raw.ObjectID() != id.ObjectID() {
		t.Errorf("stored = %s, want %s", raw.ObjectID().Hex(), id)
	}

	var out struct {
		ID ID `bson:"_id"`
	}
	if err := bson.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ID != id {
		t.Errorf("id = %s, want %s", out.ID, id)
	}
}
