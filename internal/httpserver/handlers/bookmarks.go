package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/respond"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

var errInvalidJSON = &domain.ValidationError{Message: "Invalid JSON in request body"}

// decodeBody reads a JSON object into dst. An empty body decodes as {} so
// the field checks report what is missing.
func decodeBody(d deps.Deps, w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, d.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		d.Logger.Debug("rejecting request body", logger.Error(err))
		return errInvalidJSON
	}
	return nil
}

// ListBookmarks responds with every bookmark.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return Handle(d, func(w http.ResponseWriter, r *http.Request) error {
		bookmarks, err := d.Store.ListAll(r.Context())
		if err != nil {
			return err
		}
		respond.JSON(w, http.StatusOK, serializeBookmarks(bookmarks))
		return nil
	})
}

// GetBookmark responds with the bookmark loaded by BookmarkCtx.
func GetBookmark(d deps.Deps) http.HandlerFunc {
	return Handle(d, func(w http.ResponseWriter, r *http.Request) error {
		b := bookmarkFrom(r.Context())
		if b == nil {
			return domain.ErrNotFound
		}
		respond.JSON(w, http.StatusOK, serializeBookmark(b))
		return nil
	})
}

// CreateBookmark validates title, url and rating, inserts the bookmark and
// points Location at it.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return Handle(d, func(w http.ResponseWriter, r *http.Request) error {
		var nb domain.NewBookmark
		if err := decodeBody(d, w, r, &nb); err != nil {
			return err
		}
		if err := nb.Validate(); err != nil {
			return err
		}

		created, err := d.Store.Insert(r.Context(), nb)
		if err != nil {
			return err
		}

		d.Logger.Info("bookmark created", logger.Int64("id", created.ID))

		w.Header().Set("Location", d.APIPrefix+"/bookmarks/"+strconv.FormatInt(created.ID, 10))
		respond.JSON(w, http.StatusCreated, serializeBookmark(created))
		return nil
	})
}

// DeleteBookmark removes the bookmark loaded by BookmarkCtx.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return Handle(d, func(w http.ResponseWriter, r *http.Request) error {
		b := bookmarkFrom(r.Context())
		if b == nil {
			return domain.ErrNotFound
		}

		n, err := d.Store.DeleteByID(r.Context(), b.ID)
		if err != nil {
			return err
		}

		d.Logger.Info("bookmark deleted",
			logger.Int64("id", b.ID),
			logger.Int64("rows", n))

		respond.NoContent(w)
		return nil
	})
}

// UpdateBookmark applies a partial update to the bookmark loaded by
// BookmarkCtx. Unknown body fields are ignored.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return Handle(d, func(w http.ResponseWriter, r *http.Request) error {
		b := bookmarkFrom(r.Context())
		if b == nil {
			return domain.ErrNotFound
		}

		var patch domain.BookmarkPatch
		if err := decodeBody(d, w, r, &patch); err != nil {
			return err
		}
		if patch.Empty() {
			return domain.ErrEmptyPatch
		}

		n, err := d.Store.UpdateByID(r.Context(), b.ID, patch)
		if err != nil {
			return err
		}

		d.Logger.Info("bookmark updated",
			logger.Int64("id", b.ID),
			logger.Int("fields", patch.Fields()),
			logger.Int64("rows", n))

		respond.NoContent(w)
		return nil
	})
}
