package seed

import (
	"fmt"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

// Map converts the seed file to insertable bookmarks. Every entry must pass
// the same validation as a POST body; the first invalid entry aborts.
func Map(file File) ([]domain.NewBookmark, error) {
	out := make([]domain.NewBookmark, 0, len(file.Bookmarks))

	for i, e := range file.Bookmarks {
		nb := domain.NewBookmark{
			Title:       e.Title,
			URL:         e.URL,
			Rating:      domain.Rating(e.Rating),
			Description: e.Description,
		}
		if err := nb.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		out = append(out, nb)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no bookmarks found in seed file")
	}

	return out, nil
}
