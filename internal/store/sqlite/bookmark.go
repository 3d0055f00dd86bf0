package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(s scanner) (*domain.Bookmark, error) {
	var (
		b      domain.Bookmark
		rating float64
	)
	if err := s.Scan(&b.ID, &b.Title, &b.URL, &rating, &b.Description); err != nil {
		return nil, err
	}
	b.Rating = domain.Rating(rating)
	return &b, nil
}

func storageErr(op string, err error) error {
	return &domain.StorageError{Op: op, Err: err}
}

// ListAll returns every bookmark in rowid order. An empty table yields an
// empty, non-nil slice.
func (s *Store) ListAll(ctx context.Context) ([]*domain.Bookmark, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT "+bookmarkColumns+" FROM "+TableBookmarks+" ORDER BY id")
	if err != nil {
		return nil, storageErr("list bookmarks", err)
	}
	defer func() { _ = rows.Close() }()

	bookmarks := make([]*domain.Bookmark, 0)
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, storageErr("scan bookmark", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list bookmarks", err)
	}

	return bookmarks, nil
}

// GetByID returns the bookmark with id, or (nil, nil) when there is none.
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Bookmark, error) {
	row := s.q.QueryRowContext(ctx,
		"SELECT "+bookmarkColumns+" FROM "+TableBookmarks+" WHERE id = ?", id)

	b, err := scanBookmark(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get bookmark", err)
	}
	return b, nil
}

// Insert stores a new bookmark and returns it with the id assigned by SQLite.
func (s *Store) Insert(ctx context.Context, nb domain.NewBookmark) (*domain.Bookmark, error) {
	row := s.q.QueryRowContext(ctx,
		"INSERT INTO "+TableBookmarks+" (title, url, rating, description) VALUES (?, ?, ?, ?) RETURNING "+bookmarkColumns,
		nb.Title, nb.URL, float64(nb.Rating), nb.Description)

	b, err := scanBookmark(row)
	if err != nil {
		return nil, storageErr("insert bookmark", err)
	}
	return b, nil
}

// DeleteByID removes the bookmark with id and returns the number of rows
// removed (0 or 1).
func (s *Store) DeleteByID(ctx context.Context, id int64) (int64, error) {
	res, err := s.q.ExecContext(ctx, "DELETE FROM "+TableBookmarks+" WHERE id = ?", id)
	if err != nil {
		return 0, storageErr("delete bookmark", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("delete bookmark", err)
	}
	return n, nil
}

// UpdateByID writes only the fields present in patch and returns the
// number of rows affected. An empty patch touches nothing.
func (s *Store) UpdateByID(ctx context.Context, id int64, patch domain.BookmarkPatch) (int64, error) {
	patch = patch.Normalize()

	values := [len(patchColumns)]any{}
	present := [len(patchColumns)]bool{}
	if patch.Title != nil {
		values[0], present[0] = *patch.Title, true
	}
	if patch.URL != nil {
		values[1], present[1] = *patch.URL, true
	}
	if patch.Rating != nil {
		values[2], present[2] = float64(*patch.Rating), true
	}
	if patch.Description != nil {
		values[3], present[3] = *patch.Description, true
	}

	sets := make([]string, 0, len(patchColumns))
	args := make([]any, 0, len(patchColumns)+1)
	for i, col := range patchColumns {
		if !present[i] {
			continue
		}
		sets = append(sets, col+" = ?")
		args = append(args, values[i])
	}
	if len(sets) == 0 {
		return 0, nil
	}
	args = append(args, id)

	res, err := s.q.ExecContext(ctx,
		"UPDATE "+TableBookmarks+" SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return 0, storageErr("update bookmark", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("update bookmark", err)
	}
	return n, nil
}

// Count returns the number of stored bookmarks.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+TableBookmarks).Scan(&n); err != nil {
		return 0, storageErr("count bookmarks", err)
	}
	return n, nil
}
