package models

import "time"

// Pokemon is a catalog row, deduplicated by name. Rows are created lazily the
// first time a name is caught and are never updated or deleted.
type Pokemon struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CaughtPokemon links a user to a pokemon they caught. The same (user,
// pokemon) pair may appear in any number of rows: re-catching creates a new
// record.
type CaughtPokemon struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PokemonID string    `json:"pokemonId"`
	CaughtAt  time.Time `json:"caughtAt"`
	Pokemon   *Pokemon  `json:"pokemon,omitempty"`
}
