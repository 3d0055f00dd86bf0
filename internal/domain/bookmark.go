package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bookmark is one persisted row of the bookmarks table.
type Bookmark struct {
	// ID is assigned by the storage engine on insert and never changes.
	ID int64

	// Title is free text supplied by the client. Sanitized on output.
	Title string

	// URL is opaque: only its presence is checked.
	URL string

	// Rating is stored and returned as-is, no range is enforced.
	Rating Rating

	// Description is optional free text. Sanitized on output.
	Description string
}

// Rating is the opaque scalar score of a bookmark.
// Clients may send it as a JSON number or as a numeric string; it is
// always rendered back as a JSON number.
type Rating float64

func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*r = 0
			return nil
		}
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("rating must be numeric, got %s", data)
	}
	// ParseFloat accepts "Inf" and "NaN", neither can be stored or re-encoded.
	if !Rating(f).Finite() {
		return fmt.Errorf("rating must be finite, got %s", data)
	}
	*r = Rating(f)
	return nil
}

// Finite reports whether r is neither NaN nor an infinity.
func (r Rating) Finite() bool {
	f := float64(r)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// NewBookmark holds the fields accepted when creating a bookmark.
type NewBookmark struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Rating      Rating `json:"rating" yaml:"rating"`
	Description string `json:"description" yaml:"description"`
}

// Validate checks the required fields in the fixed order title, url,
// rating and reports only the first one missing.
func (n NewBookmark) Validate() error {
	switch {
	case n.Title == "":
		return MissingField("title")
	case n.URL == "":
		return MissingField("url")
	case n.Rating == 0:
		return MissingField("rating")
	case !n.Rating.Finite():
		return ErrInvalidRating
	}
	return nil
}

// BookmarkPatch is a partial update. Nil fields are left untouched.
type BookmarkPatch struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Rating      *Rating `json:"rating"`
	Description *string `json:"description"`
}

// Normalize drops fields that were sent but are not truthy (empty strings,
// zero rating), so only meaningful values reach the store.
func (p BookmarkPatch) Normalize() BookmarkPatch {
	out := BookmarkPatch{}
	if p.Title != nil && *p.Title != "" {
		out.Title = p.Title
	}
	if p.URL != nil && *p.URL != "" {
		out.URL = p.URL
	}
	if p.Rating != nil && *p.Rating != 0 {
		out.Rating = p.Rating
	}
	if p.Description != nil && *p.Description != "" {
		out.Description = p.Description
	}
	return out
}

// Fields returns how many recognized fields carry a truthy value.
func (p BookmarkPatch) Fields() int {
	n := p.Normalize()
	count := 0
	if n.Title != nil {
		count++
	}
	if n.URL != nil {
		count++
	}
	if n.Rating != nil {
		count++
	}
	if n.Description != nil {
		count++
	}
	return count
}

// Empty reports whether the patch would change nothing.
func (p BookmarkPatch) Empty() bool { return p.Fields() == 0 }
