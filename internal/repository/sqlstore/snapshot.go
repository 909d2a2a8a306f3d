package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
)

// ErrSnapshotUnsupported is returned for stores that manage their own backups.
var ErrSnapshotUnsupported = errors.New("snapshot is only supported for sqlite")

// Snapshot writes a transactionally consistent copy of a sqlite database to
// dest, which must not exist yet.
func Snapshot(ctx context.Context, db *sqlx.DB, dest string) error {
	if db.DriverName() != DriverSQLite {
		return ErrSnapshotUnsupported
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if _, err := db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return fmt.Errorf("vacuum into %s: %w", dest, err)
	}
	return nil
}
