// Package repomanager picks the storage backend of the development server:
// process memory by default, PostgreSQL when a DSN is configured.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/adminapi/internal/server/migrations"
	"github.com/dmitrijs2005/adminapi/internal/server/refreshtokens"
	"github.com/dmitrijs2005/adminapi/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RepositoryManager vends the repositories of one backend.
type RepositoryManager interface {
	Users() users.Repository
	RefreshTokens() refreshtokens.Repository
	Close() error
}

type memoryManager struct {
	users         *users.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository
}

func NewMemoryRepositoryManager() RepositoryManager {
	return &memoryManager{
		users:         users.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
	}
}

func (m *memoryManager) Users() users.Repository { return m.users }

func (m *memoryManager) RefreshTokens() refreshtokens.Repository { return m.refreshTokens }

func (m *memoryManager) Close() error { return nil }

// PostgresRepositoryManager binds the Postgres repositories to one pool.
type PostgresRepositoryManager struct {
	db *sql.DB
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return users.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// NewPostgresRepositoryManager connects to dsn through the pgx driver and
// migrates the schema.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &PostgresRepositoryManager{db: db}, nil
}

// New returns the Postgres manager when dsn is set, the memory one otherwise.
func New(ctx context.Context, dsn string) (RepositoryManager, error) {
	if dsn == "" {
		return NewMemoryRepositoryManager(), nil
	}
	return NewPostgresRepositoryManager(ctx, dsn)
}
