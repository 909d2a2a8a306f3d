package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_CopiesData(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	seedRecipe(t, db, owner.ID, "Bread")

	dest := filepath.Join(t.TempDir(), "backups", "recipes.db")
	require.NoError(t, Snapshot(context.Background(), db, dest))

	copyDB, err := Open(DriverSQLite, dest)
	require.NoError(t, err)
	defer copyDB.Close()

	var titles []string
	require.NoError(t, copyDB.Select(&titles, `SELECT title FROM recipes`))
	assert.Equal(t, []string{"Bread"}, titles)
}

func TestSnapshot_DestinationMustNotExist(t *testing.T) {
	db := newTestDB(t)
	dest := filepath.Join(t.TempDir(), "recipes.db")

	require.NoError(t, Snapshot(context.Background(), db, dest))
	assert.Error(t, Snapshot(context.Background(), db, dest))
}
