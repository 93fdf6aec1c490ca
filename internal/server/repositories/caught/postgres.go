// Package caught provides the PostgreSQL-backed repository for ownership
// records: the rows linking a user to the pokemons they caught.
package caught

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pokebox/pokebox/internal/dbx"
	"github.com/pokebox/pokebox/internal/server/models"
)

// PostgresRepository implements ownership-record storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new ownership record for userID and pokemonID. There is no
// uniqueness across (user_id, pokemon_id): re-catching creates a new row.
func (r *PostgresRepository) Create(ctx context.Context, userID, pokemonID string) (*models.CaughtPokemon, error) {
	record := &models.CaughtPokemon{
		ID:        uuid.NewString(),
		UserID:    userID,
		PokemonID: pokemonID,
	}

	query := `
		INSERT INTO caught_pokemons (id, user_id, pokemon_id)
		VALUES ($1, $2, $3)
		RETURNING caught_at
	`
	err := r.db.QueryRowContext(ctx, query,
		record.ID, record.UserID, record.PokemonID).Scan(&record.CaughtAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

// ListByUser returns all ownership records for userID, each joined with its
// pokemon row. An empty result is a nil slice, not an error.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.CaughtPokemon, error) {
	query := `
		SELECT c.id, c.user_id, c.pokemon_id, c.caught_at, p.id, p.name
		FROM caught_pokemons c
		JOIN pokemons p ON p.id = c.pokemon_id
		WHERE c.user_id = $1
		ORDER BY c.caught_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.CaughtPokemon
	for rows.Next() {
		item := models.CaughtPokemon{Pokemon: &models.Pokemon{}}
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.PokemonID, &item.CaughtAt,
			&item.Pokemon.ID, &item.Pokemon.Name,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// DeleteByIDAndUser deletes the record matching both id and userID in a single
// conditional statement and returns the number of rows removed. Matching on
// the pair is what keeps one user from releasing another user's record by
// guessing an id.
func (r *PostgresRepository) DeleteByIDAndUser(ctx context.Context, id, userID string) (int64, error) {
	query := `
		DELETE FROM caught_pokemons
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}

	return n, nil
}
