// Package repomanager wires repositories to database handles. Services hold a
// *sql.DB plus a RepositoryManager and build repositories per call, so the
// same code path works over the pool or inside a transaction.
package repomanager

import (
	"github.com/pokebox/pokebox/internal/dbx"
	"github.com/pokebox/pokebox/internal/server/repositories/caught"
	"github.com/pokebox/pokebox/internal/server/repositories/pokemons"
	"github.com/pokebox/pokebox/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Pokemons(db dbx.DBTX) pokemons.Repository
	Caught(db dbx.DBTX) caught.Repository
}
