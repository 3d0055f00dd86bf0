package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/database"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

type recordingExecer struct {
	mu    sync.Mutex
	stmts []string
	err   error
}

func (r *recordingExecer) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.stmts = append(r.stmts, query)
	return nil, nil
}

func (r *recordingExecer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stmts)
}

func TestMaintenanceRunAgainstSQLite(t *testing.T) {
	db, err := database.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	m := NewMaintenance(db, logger.NewNop(), time.Hour)
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if m.Runs() != 1 {
		t.Errorf("expected 1 run, got %d", m.Runs())
	}
}

func TestMaintenanceRunStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	m := NewMaintenance(&recordingExecer{err: boom}, logger.NewNop(), time.Hour)

	err := m.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if m.Runs() != 0 {
		t.Errorf("failed run must not be counted")
	}
}

func TestMaintenanceTicks(t *testing.T) {
	ex := &recordingExecer{}
	m := NewMaintenance(ex, logger.NewNop(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for m.Runs() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	m.Stop()
	m.Stop()

	if m.Runs() < 2 {
		t.Fatalf("expected at least 2 runs, got %d", m.Runs())
	}
	runs := m.Runs()
	if got := ex.count(); got < runs*len(maintenanceStatements) {
		t.Errorf("expected at least %d statements, got %d", runs*len(maintenanceStatements), got)
	}
}

func TestNewMaintenanceDefaultsInterval(t *testing.T) {
	m := NewMaintenance(&recordingExecer{}, logger.NewNop(), 0)
	if m.interval != DefaultMaintenanceInterval {
		t.Errorf("expected default interval, got %v", m.interval)
	}
}
