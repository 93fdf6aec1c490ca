// Package pokemons provides the PostgreSQL-backed repository for catalog rows.
// Rows are created lazily on first catch and deduplicated by name.
package pokemons

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pokebox/pokebox/internal/common"
	"github.com/pokebox/pokebox/internal/dbx"
	"github.com/pokebox/pokebox/internal/server/models"
)

// PostgresRepository implements catalog storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a catalog row for name. When a concurrent caller already
// inserted the same name, the unique index rejects the insert and the error
// surfaces as common.ErrorAlreadyExists so callers can fall back to a fetch.
func (r *PostgresRepository) Create(ctx context.Context, name string) (*models.Pokemon, error) {
	pokemon := &models.Pokemon{ID: uuid.NewString(), Name: name}

	query := `
		INSERT INTO pokemons (id, name)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, pokemon.ID, pokemon.Name); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return pokemon, nil
}

// GetByName returns the catalog row for the given name.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Pokemon, error) {
	query := `
		SELECT id, name FROM pokemons
		WHERE name = $1
	`
	pokemon := &models.Pokemon{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&pokemon.ID, &pokemon.Name)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return pokemon, nil
}
