// Package backup ships consistent copies of the embedded database to object
// storage and keeps only the most recent ones.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"recipe-share/internal/repository/sqlstore"
	"recipe-share/internal/storage"
)

const (
	snapshotExt     = ".db"
	timestampLayout = "20060102T150405Z"
)

// Options configures where backups go and how many are kept.
type Options struct {
	Bucket    string
	KeyPrefix string
	Retain    int
	// TempDir holds the local snapshot until it is uploaded; empty means os.TempDir.
	TempDir string
}

// Result describes one completed backup.
type Result struct {
	Key      string
	Location string
	Size     int64
	Pruned   []string
}

type Runner struct {
	db     *sqlx.DB
	store  storage.Service
	opts   Options
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewRunner(db *sqlx.DB, store storage.Service, opts Options, logger logrus.FieldLogger) (*Runner, error) {
	if opts.Bucket == "" {
		return nil, errors.New("backup bucket is required")
	}
	if opts.Retain < 1 {
		return nil, fmt.Errorf("backup retain must be at least 1, got %d", opts.Retain)
	}
	opts.KeyPrefix = strings.Trim(opts.KeyPrefix, "/")

	return &Runner{
		db:     db,
		store:  store,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Run snapshots the database, uploads it and prunes old backups. A failed
// prune does not undo the upload; it is reported alongside the result.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	dir, err := os.MkdirTemp(r.opts.TempDir, "recipes-backup-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	local := filepath.Join(dir, "snapshot"+snapshotExt)
	if err := sqlstore.Snapshot(ctx, r.db, local); err != nil {
		return nil, fmt.Errorf("snapshot database: %w", err)
	}

	fi, err := os.Stat(local)
	if err != nil {
		return nil, fmt.Errorf("stat snapshot: %w", err)
	}

	key := r.objectKey()
	logCtx := r.logger.WithFields(logrus.Fields{"bucket": r.opts.Bucket, "key": key})
	location, err := r.store.UploadFile(ctx, local, storage.UploadOptions{
		Bucket:      r.opts.Bucket,
		Key:         key,
		ContentType: "application/vnd.sqlite3",
		ProgressCallback: func(done, total int64) {
			logCtx.WithFields(logrus.Fields{"done": done, "total": total}).Debug("uploading snapshot")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}
	logCtx.WithField("size", fi.Size()).Info("backup uploaded")

	result := &Result{Key: key, Location: location, Size: fi.Size()}
	pruned, err := r.prune(ctx)
	result.Pruned = pruned
	if err != nil {
		return result, fmt.Errorf("prune backups: %w", err)
	}
	return result, nil
}

// objectKey sorts lexically by creation time; the uuid keeps keys unique
// within one second.
func (r *Runner) objectKey() string {
	name := r.now().UTC().Format(timestampLayout) + "-" + uuid.NewString() + snapshotExt
	if r.opts.KeyPrefix == "" {
		return name
	}
	return path.Join(r.opts.KeyPrefix, name)
}

func (r *Runner) listPrefix() string {
	if r.opts.KeyPrefix == "" {
		return ""
	}
	return r.opts.KeyPrefix + "/"
}

func (r *Runner) prune(ctx context.Context) ([]string, error) {
	objects, err := r.store.ListObjects(ctx, r.opts.Bucket, r.listPrefix())
	if err != nil {
		return nil, err
	}

	prefix := r.listPrefix()
	var keys []string
	for _, obj := range objects {
		rest := strings.TrimPrefix(obj.Key, prefix)
		// only direct children that look like snapshots
		if strings.Contains(rest, "/") || !strings.HasSuffix(rest, snapshotExt) {
			continue
		}
		keys = append(keys, obj.Key)
	}
	if len(keys) <= r.opts.Retain {
		return nil, nil
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	stale := keys[r.opts.Retain:]
	if err := r.store.DeleteObjects(ctx, r.opts.Bucket, stale); err != nil {
		return nil, err
	}
	r.logger.WithField("count", len(stale)).Info("pruned old backups")
	return stale, nil
}
