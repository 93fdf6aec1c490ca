package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pokebox/pokebox/internal/dbx"
	"github.com/pokebox/pokebox/internal/server/migrations"
	"github.com/pokebox/pokebox/internal/server/repositories/caught"
	"github.com/pokebox/pokebox/internal/server/repositories/pokemons"
	"github.com/pokebox/pokebox/internal/server/repositories/users"
)

// PostgresRepositoryManager builds Postgres repositories over any DBTX.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Pokemons(db dbx.DBTX) pokemons.Repository {
	return pokemons.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Caught(db dbx.DBTX) caught.Repository {
	return caught.NewPostgresRepository(db)
}

// OpenDB opens a pgx-backed *sql.DB for the given DSN and applies the
// embedded goose migrations.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return db, nil
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
