package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/mw"
)

func init() { Register("bookmarks", registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Route(d.APIPrefix+"/bookmarks", func(r chi.Router) {
		r.Get("/", handlers.ListBookmarks(d))
		r.Post("/", handlers.CreateBookmark(d))

		r.Route("/{id}", func(r chi.Router) {
			r.Use(handlers.BookmarkCtx(d))
			r.Get("/", handlers.GetBookmark(d))
			r.Delete("/", handlers.DeleteBookmark(d))
			r.Patch("/", handlers.UpdateBookmark(d))
		})
	})
}
