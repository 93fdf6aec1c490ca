package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pokebox/pokebox/internal/common"
	"github.com/pokebox/pokebox/internal/server/models"
	"github.com/pokebox/pokebox/internal/server/repositories/repomanager"
)

// PokemonService implements the ownership ledger: catching, listing, and
// releasing records scoped to one user. Races on catalog names are arbitrated
// by the store's unique index, not by in-process locking.
type PokemonService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewPokemonService constructs a PokemonService over the given handle.
func NewPokemonService(db *sql.DB, m repomanager.RepositoryManager) *PokemonService {
	return &PokemonService{db: db, repomanager: m}
}

// Catch resolves the catalog row for name, creating it on first reference,
// and records a new ownership row for userID. An empty name yields
// common.ErrorValidation. Catching the same name again creates another
// record against the same catalog row.
func (s *PokemonService) Catch(ctx context.Context, userID, name string) (*models.CaughtPokemon, error) {
	if name == "" {
		return nil, common.ErrorValidation
	}

	pokemon, err := s.findOrCreatePokemon(ctx, name)
	if err != nil {
		return nil, err
	}

	record, err := s.repomanager.Caught(s.db).Create(ctx, userID, pokemon.ID)
	if err != nil {
		return nil, fmt.Errorf("error creating caught record: %w", err)
	}
	record.Pokemon = pokemon

	return record, nil
}

// findOrCreatePokemon returns the catalog row for name, inserting it when
// absent. When a concurrent insert wins the race, the unique index rejects
// ours and the row is fetched instead.
func (s *PokemonService) findOrCreatePokemon(ctx context.Context, name string) (*models.Pokemon, error) {
	repo := s.repomanager.Pokemons(s.db)

	pokemon, err := repo.GetByName(ctx, name)
	if err == nil {
		return pokemon, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error finding pokemon: %w", err)
	}

	pokemon, err = repo.Create(ctx, name)
	if err == nil {
		return pokemon, nil
	}
	if !errors.Is(err, common.ErrorAlreadyExists) {
		return nil, fmt.Errorf("error creating pokemon: %w", err)
	}

	pokemon, err = repo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error refetching pokemon: %w", err)
	}
	return pokemon, nil
}

// List returns every ownership record for userID joined with its catalog row.
// Owning nothing is an empty result, not an error.
func (s *PokemonService) List(ctx context.Context, userID string) ([]*models.CaughtPokemon, error) {
	records, err := s.repomanager.Caught(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing caught records: %w", err)
	}
	return records, nil
}

// Release deletes the record matching recordID and userID together. The
// ownership check happens inside the delete itself; zero matched rows means
// the record does not exist or belongs to someone else, and both cases
// surface as common.ErrorNotFound.
func (s *PokemonService) Release(ctx context.Context, userID, recordID string) error {
	n, err := s.repomanager.Caught(s.db).DeleteByIDAndUser(ctx, recordID, userID)
	if err != nil {
		return fmt.Errorf("error deleting caught record: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
