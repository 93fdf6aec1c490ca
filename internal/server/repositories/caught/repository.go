package caught

import (
	"context"

	"github.com/pokebox/pokebox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID, pokemonID string) (*models.CaughtPokemon, error)
	ListByUser(ctx context.Context, userID string) ([]*models.CaughtPokemon, error)
	DeleteByIDAndUser(ctx context.Context, id, userID string) (int64, error)
}
