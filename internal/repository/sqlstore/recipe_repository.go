package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"recipe-share/internal/domain"
	"recipe-share/internal/repository"
)

// selectRecipes joins the viewer's own rating; the first bind argument is the viewer id.
const selectRecipes = `
SELECT r.id, r.title, r.description, r.ingredients, r.instructions, r.user_id, r.created_at,
	rt.stars AS user_rating
FROM recipes r
LEFT JOIN ratings rt ON rt.recipe_id = r.id AND rt.user_id = ?`

type recipeRow struct {
	ID           int64          `db:"id"`
	Title        string         `db:"title"`
	Description  sql.NullString `db:"description"`
	Ingredients  string         `db:"ingredients"`
	Instructions string         `db:"instructions"`
	UserID       int64          `db:"user_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UserRating   sql.NullInt64  `db:"user_rating"`
}

func (r recipeRow) toDomain() domain.Recipe {
	recipe := domain.Recipe{
		ID:           r.ID,
		Title:        r.Title,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		UserID:       r.UserID,
		CreatedAt:    r.CreatedAt.UTC(),
	}
	if r.Description.Valid {
		desc := r.Description.String
		recipe.Description = &desc
	}
	if r.UserRating.Valid {
		stars := int(r.UserRating.Int64)
		recipe.UserRating = &stars
	}
	return recipe
}

type RecipeRepository struct {
	db *sqlx.DB
}

func NewRecipeRepository(db *sqlx.DB) repository.RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (int64, error) {
	now := time.Now().UTC()

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
INSERT INTO recipes (title, description, ingredients, instructions, user_id, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`),
		recipe.Title,
		recipe.Description,
		recipe.Ingredients,
		recipe.Instructions,
		recipe.UserID,
		now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert recipe: %w", mapError(err))
	}

	recipe.ID = id
	recipe.CreatedAt = now
	return id, nil
}

func (r *RecipeRepository) Get(ctx context.Context, id, viewerID int64) (*domain.Recipe, error) {
	var row recipeRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(selectRecipes+`
WHERE r.id = ?`), viewerID, id); err != nil {
		return nil, fmt.Errorf("get recipe: %w", mapError(err))
	}
	recipe := row.toDomain()
	return &recipe, nil
}

func (r *RecipeRepository) List(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error) {
	var (
		conds []string
		args  = []any{filter.ViewerID}
	)
	if filter.OwnerID != 0 {
		conds = append(conds, "r.user_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.TitleContains != "" {
		fold := foldFunc(r.db.DriverName())
		conds = append(conds, fold+"(r.title) LIKE "+fold+`(?) ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.TitleContains)+"%")
	}

	query := selectRecipes
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}
	query += "\nORDER BY r.created_at DESC, r.id DESC"

	var rows []recipeRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("query recipes: %w", mapError(err))
	}

	recipes := make([]domain.Recipe, len(rows))
	for i := range rows {
		recipes[i] = rows[i].toDomain()
	}
	return recipes, nil
}

func (r *RecipeRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM recipes WHERE id = ? AND user_id = ?`), id, ownerID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", mapError(err))
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("recipe delete rows affected: %w", err)
	}

	if aff == 0 {
		var owner int64
		err := tx.GetContext(ctx, &owner, tx.Rebind(`SELECT user_id FROM recipes WHERE id = ?`), id)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lookup recipe owner: %w", mapError(err))
		}
		return repository.ErrNotOwner
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit recipe delete: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside a LIKE pattern using '\' as escape.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
