package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/respond"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// serverErrorMessage is the only text a production client sees for a 500.
const serverErrorMessage = "server error"

// HandlerFunc is an http handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn so that any returned error goes through RespondError.
func Handle(d deps.Deps, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			RespondError(d, w, r, err)
		}
	}
}

// RespondError is the single place errors become HTTP responses.
func RespondError(d deps.Deps, w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := domain.IsValidation(err); ok {
		respond.Error(w, http.StatusBadRequest, ve.Message)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, domain.NotFoundMessage)
		return
	}

	d.Logger.Error("unhandled request error",
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.String("request_id", middleware.GetReqID(r.Context())),
		logger.Error(err))

	if d.Production {
		respond.Error(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}
	respond.JSON(w, http.StatusInternalServerError, respond.Envelope{
		Error:   respond.ErrorBody{Message: err.Error()},
		Details: fmt.Sprintf("%+v", err),
	})
}
