package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
)

type ctxKey struct{}

// BookmarkCtx loads the bookmark named by the {id} URL parameter and stores
// it in the request context. Unknown or malformed ids short-circuit with 404.
func BookmarkCtx(d deps.Deps) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return Handle(d, func(w http.ResponseWriter, r *http.Request) error {
			id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil || id <= 0 {
				return domain.ErrNotFound
			}

			b, err := d.Store.GetByID(r.Context(), id)
			if err != nil {
				return err
			}
			if b == nil {
				return domain.ErrNotFound
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, b)))
			return nil
		})
	}
}

// bookmarkFrom returns the bookmark loaded by BookmarkCtx.
func bookmarkFrom(ctx context.Context) *domain.Bookmark {
	b, _ := ctx.Value(ctxKey{}).(*domain.Bookmark)
	return b
}
