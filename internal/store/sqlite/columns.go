package sqlite

const (
	// TableBookmarks is the only table the store touches.
	TableBookmarks = "bookmarks"

	// bookmarkColumns is the projection shared by every SELECT and RETURNING.
	bookmarkColumns = "id, title, url, rating, description"
)

// patchColumns lists the updatable columns in a fixed order so generated
// UPDATE statements are deterministic.
var patchColumns = [...]string{"title", "url", "rating", "description"}
