package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestNewBookmarkValidate(t *testing.T) {
	full := NewBookmark{Title: "t", URL: "http://x.com", Rating: 5, Description: "d"}

	tests := []struct {
		name      string
		mutate    func(*NewBookmark)
		wantField string
	}{
		{name: "complete", mutate: func(*NewBookmark) {}},
		{name: "missing title", mutate: func(n *NewBookmark) { n.Title = "" }, wantField: "title"},
		{name: "missing url", mutate: func(n *NewBookmark) { n.URL = "" }, wantField: "url"},
		{name: "missing rating", mutate: func(n *NewBookmark) { n.Rating = 0 }, wantField: "rating"},
		{name: "description optional", mutate: func(n *NewBookmark) { n.Description = "" }},
		{
			name:      "first missing wins",
			mutate:    func(n *NewBookmark) { n.URL = ""; n.Rating = 0 },
			wantField: "url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nb := full
			tt.mutate(&nb)
			err := nb.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			ve, ok := IsValidation(err)
			if !ok {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
			want := "Missing '" + tt.wantField + "' in request body"
			if ve.Message != want {
				t.Errorf("Message = %q, want %q", ve.Message, want)
			}
		})
	}
}

func TestRatingUnmarshal(t *testing.T) {
	tests := []struct {
		input   string
		want    Rating
		wantErr bool
	}{
		{input: `3`, want: 3},
		{input: `4.5`, want: 4.5},
		{input: `"5"`, want: 5},
		{input: `""`, want: 0},
		{input: `null`, want: 0},
		{input: `"five"`, wantErr: true},
		{input: `true`, wantErr: true},
		{input: `"Inf"`, wantErr: true},
		{input: `"-Infinity"`, wantErr: true},
		{input: `"NaN"`, wantErr: true},
		{input: `1e400`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var r Rating
			err := json.Unmarshal([]byte(tt.input), &r)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if r != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, r, tt.want)
			}
		})
	}
}

func TestBookmarkPatchFields(t *testing.T) {
	var p BookmarkPatch
	if err := json.Unmarshal([]byte(`{"irrelevantField":"foo"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Empty() {
		t.Errorf("patch with only unknown fields should be empty")
	}

	if err := json.Unmarshal([]byte(`{"title":"","rating":0,"url":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Empty() {
		t.Errorf("patch with only falsy fields should be empty, got %d fields", p.Fields())
	}

	p = BookmarkPatch{}
	if err := json.Unmarshal([]byte(`{"title":"X","description":"d"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := p.Fields(); got != 2 {
		t.Errorf("Fields() = %d, want 2", got)
	}

	n := p.Normalize()
	if n.URL != nil || n.Rating != nil {
		t.Errorf("Normalize() kept unsupplied fields: %+v", n)
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	inner := errors.New("disk I/O error")
	err := error(&StorageError{Op: "insert", Err: inner})

	if !errors.Is(err, inner) {
		t.Errorf("StorageError should unwrap to its cause")
	}
	if _, ok := IsValidation(err); ok {
		t.Errorf("StorageError must not be a validation error")
	}
}

func TestNewBookmarkValidateNonFiniteRating(t *testing.T) {
	for _, r := range []Rating{Rating(math.Inf(1)), Rating(math.Inf(-1)), Rating(math.NaN())} {
		nb := NewBookmark{Title: "t", URL: "u", Rating: r}
		ve, ok := IsValidation(nb.Validate())
		if !ok {
			t.Fatalf("Validate() with rating %v should be a validation error", r)
		}
		if ve.Field != "rating" {
			t.Errorf("field = %q, want rating", ve.Field)
		}
	}
}
