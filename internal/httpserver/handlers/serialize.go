package handlers

import (
	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/sanitize"
)

type bookmarkResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	URL         string        `json:"url"`
	Rating      domain.Rating `json:"rating"`
	Description string        `json:"description"`
}

// serializeBookmark is the only projection of a bookmark onto the wire.
// Free text fields are sanitized here; url is opaque and left as-is.
func serializeBookmark(b *domain.Bookmark) bookmarkResponse {
	return bookmarkResponse{
		ID:          b.ID,
		Title:       sanitize.Text(b.Title),
		URL:         b.URL,
		Rating:      b.Rating,
		Description: sanitize.Text(b.Description),
	}
}

func serializeBookmarks(bs []*domain.Bookmark) []bookmarkResponse {
	out := make([]bookmarkResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, serializeBookmark(b))
	}
	return out
}
