package seed

import (
	"errors"
	"testing"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

func TestMap(t *testing.T) {
	file := File{Bookmarks: []Entry{
		{Title: "Google", URL: "https://www.google.com/", Rating: 5, Description: "cool search engine"},
		{Title: "Wikipedia", URL: "https://www.wikipedia.org/", Rating: 5},
	}}

	got, err := Map(file)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Map() returned %d bookmarks, want 2", len(got))
	}
	if got[0].Rating != domain.Rating(5) || got[0].Title != "Google" {
		t.Errorf("Map()[0] = %+v", got[0])
	}
}

func TestMapRejectsInvalidEntry(t *testing.T) {
	file := File{Bookmarks: []Entry{
		{Title: "Google", URL: "https://www.google.com/", Rating: 5},
		{Title: "No URL", Rating: 2},
	}}

	_, err := Map(file)
	if err == nil {
		t.Fatal("Map() should reject an entry without url")
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "url" {
		t.Errorf("Map() error = %v, want missing url validation error", err)
	}
}

func TestMapEmptyFile(t *testing.T) {
	if _, err := Map(File{}); err == nil {
		t.Error("Map() with empty file should return error")
	}
}
