package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/store/sqlite"
)

// Seeder fills an empty bookmarks table from a seed file.
type Seeder struct {
	loader *Loader
	db     *sql.DB
	logger logger.Logger
}

// NewSeeder creates a seeder reading seedFile into db.
func NewSeeder(seedFile string, db *sql.DB, log logger.Logger) *Seeder {
	return &Seeder{
		loader: NewLoader(seedFile),
		db:     db,
		logger: log,
	}
}

// Run inserts every seed entry in one transaction when the table is empty.
// It returns the number of bookmarks inserted (0 when data already exists).
func (s *Seeder) Run(ctx context.Context) (int, error) {
	file, err := s.loader.Load()
	if err != nil {
		return 0, err
	}

	entries, err := Map(file)
	if err != nil {
		return 0, fmt.Errorf("invalid seed file: %w", err)
	}

	inserted := 0
	err = sqlite.WithTx(ctx, s.db, func(tx *sqlite.Store) error {
		count, err := tx.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			s.logger.Info("bookmarks table not empty, skipping seed",
				logger.Int64("existing", count))
			return nil
		}

		for _, nb := range entries {
			if _, err := tx.Insert(ctx, nb); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed bookmarks: %w", err)
	}

	if inserted > 0 {
		s.logger.Info("seeded bookmarks", logger.Int("count", inserted))
	}
	return inserted, nil
}
