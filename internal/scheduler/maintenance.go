package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// Execer is the part of *sql.DB the maintenance job needs.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DefaultMaintenanceInterval is used when no interval is configured.
const DefaultMaintenanceInterval = time.Hour

var maintenanceStatements = []string{
	"PRAGMA wal_checkpoint(TRUNCATE)",
	"PRAGMA optimize",
}

// Maintenance periodically checkpoints the SQLite WAL and refreshes
// query planner statistics.
type Maintenance struct {
	db       Execer
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	runs     int
	mu       sync.Mutex
}

// NewMaintenance creates a maintenance job for db.
func NewMaintenance(db Execer, log logger.Logger, interval time.Duration) *Maintenance {
	if interval <= 0 {
		interval = DefaultMaintenanceInterval
	}
	return &Maintenance{
		db:       db,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic maintenance process
func (m *Maintenance) Start(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := m.Run(ctx); err != nil {
					m.logger.Error("database maintenance failed", logger.Error(err))
				}
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the maintenance loop. Safe to call more than once.
func (m *Maintenance) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// Run executes one maintenance pass.
func (m *Maintenance) Run(ctx context.Context) error {
	start := time.Now()
	for _, stmt := range maintenanceStatements {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}

	m.mu.Lock()
	m.runs++
	m.mu.Unlock()

	m.logger.Debug("database maintenance completed",
		logger.Duration("duration", time.Since(start)))
	return nil
}

// Runs returns how many passes completed successfully.
func (m *Maintenance) Runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}
