package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Postgres stores user state blobs in a single JSONB table.
type Postgres struct {
	Pool *pgxpool.Pool
}

func Open(ctx context.Context, uri string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Postgres{Pool: pool}, nil
}

func (p *Postgres) Close() {
	p.Pool.Close()
}

// Migrate applies the embedded SQL migrations that have not been applied yet.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, filename := range files {
		var exists bool
		err := p.Pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)",
			filename,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + filename)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}
		if _, err := p.Pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}
		if _, err := p.Pool.Exec(ctx,
			"INSERT INTO schema_migrations (version) VALUES ($1)", filename,
		); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", filename, err)
		}
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, email, key string) ([]byte, error) {
	var value []byte
	err := p.Pool.QueryRow(ctx,
		`SELECT value FROM user_state WHERE email = $1 AND key = $2`,
		email, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load %s/%s: %v", ErrUnavailable, email, key, err)
	}
	return value, nil
}

func (p *Postgres) Save(ctx context.Context, email, key string, value []byte) error {
	_, err := p.Pool.Exec(ctx,
		`INSERT INTO user_state (email, key, value, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (email, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		email, key, value,
	)
	if err != nil {
		return fmt.Errorf("%w: save %s/%s: %v", ErrUnavailable, email, key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, email, key string) error {
	_, err := p.Pool.Exec(ctx,
		`DELETE FROM user_state WHERE email = $1 AND key = $2`,
		email, key,
	)
	if err != nil {
		return fmt.Errorf("%w: delete %s/%s: %v", ErrUnavailable, email, key, err)
	}
	return nil
}

func (p *Postgres) DeleteAll(ctx context.Context, email string) error {
	_, err := p.Pool.Exec(ctx,
		`DELETE FROM user_state WHERE email = $1`,
		email,
	)
	if err != nil {
		return fmt.Errorf("%w: delete all %s: %v", ErrUnavailable, email, err)
	}
	return nil
}
