package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// BookmarkStore is what handlers need from the record store.
type BookmarkStore interface {
	ListAll(ctx context.Context) ([]*domain.Bookmark, error)
	GetByID(ctx context.Context, id int64) (*domain.Bookmark, error)
	Insert(ctx context.Context, nb domain.NewBookmark) (*domain.Bookmark, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	UpdateByID(ctx context.Context, id int64, patch domain.BookmarkPatch) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// Probe is one readiness check (ex: sqlite ping, redis ping).
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	Store        BookmarkStore // record store bound to the connection pool at startup
	Production   bool          // hide error details from clients
	APIPrefix    string        // prefix of the bookmarks routes, used for Location headers
	MaxBodyBytes int64         // request body cap for POST/PATCH
	AllowedHosts []string      // Host headers allowed to access the server
	AllowedCIDRS []string      // IPs allowed to access healthz/readyz endpoints
	TrustProxy   bool          // true if running behind a trusted reverse proxy
	CORSOrigins  []string      // allowed CORS origins, "*" = any
	Probes       []Probe       // readiness checks run by /readyz
}
