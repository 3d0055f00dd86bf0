package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/respond"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

const probeTimeout = 2 * time.Second

type componentStatus struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type readyzResponse struct {
	Ready      bool                       `json:"ready"`
	Bookmarks  *int64                     `json:"bookmarks,omitempty"`
	Components map[string]componentStatus `json:"components"`
}

// Readyz runs every configured probe, then counts the stored bookmarks
// through the same store the API uses. Any failure answers 503.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{
			Ready:      true,
			Components: make(map[string]componentStatus, len(d.Probes)),
		}

		check := func(name string, fn func(ctx context.Context) error) {
			ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
			defer cancel()

			if err := fn(ctx); err != nil {
				d.Logger.Warn("readiness probe failed",
					logger.String("probe", name),
					logger.Error(err))
				resp.Ready = false
				resp.Components[name] = componentStatus{OK: false, Error: "unavailable"}
				return
			}
			resp.Components[name] = componentStatus{OK: true}
		}

		for _, p := range d.Probes {
			check(p.Name, p.Check)
		}

		if resp.Ready {
			check("bookmarks", func(ctx context.Context) error {
				n, err := d.Store.Count(ctx)
				if err == nil {
					resp.Bookmarks = &n
				}
				return err
			})
		}

		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Cache-Control", "no-store")
		respond.JSON(w, status, resp)
	}
}
