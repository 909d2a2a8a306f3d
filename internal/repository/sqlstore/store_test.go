package sqlstore

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"recipe-share/internal/domain"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func seedUser(t *testing.T, db *sqlx.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, PasswordHash: "hash"}
	_, err := NewUserRepository(db).Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func seedRecipe(t *testing.T, db *sqlx.DB, ownerID int64, title string) *domain.Recipe {
	t.Helper()
	recipe := &domain.Recipe{
		Title:        title,
		Ingredients:  "things",
		Instructions: "do it",
		UserID:       ownerID,
	}
	_, err := NewRecipeRepository(db).Create(context.Background(), recipe)
	require.NoError(t, err)
	return recipe
}
