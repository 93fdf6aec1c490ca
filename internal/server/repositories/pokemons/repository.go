package pokemons

import (
	"context"

	"github.com/pokebox/pokebox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, name string) (*models.Pokemon, error)
	GetByName(ctx context.Context, name string) (*models.Pokemon, error)
}
