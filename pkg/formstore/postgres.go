package formstore

import (
	"context"
	"embed"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates the snapshot table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, table string, log *slog.Logger) error {
	return pg.Migrate(ctx, pool, migrations, "migrations", table, log)
}

// PGStore keeps snapshots in the form_snapshots table.
type PGStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewPGStore creates a store on pool. Run Migrate first.
func NewPGStore(pool *pgxpool.Pool, ttl time.Duration) *PGStore {
	return &PGStore{pool: pool, ttl: ttl}
}

const (
	upsertSnapshot = `
INSERT INTO form_snapshots (id, form_name, payload, is_valid, updated_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    form_name = EXCLUDED.form_name,
    payload = EXCLUDED.payload,
    is_valid = EXCLUDED.is_valid,
    updated_at = EXCLUDED.updated_at,
    expires_at = EXCLUDED.expires_at`

	selectSnapshot = `
SELECT payload FROM form_snapshots
WHERE id = $1 AND (expires_at IS NULL OR expires_at > now())`

	deleteSnapshot = `DELETE FROM form_snapshots WHERE id = $1`

	deleteExpired = `DELETE FROM form_snapshots WHERE expires_at IS NOT NULL AND expires_at <= now()`
)

func (p *PGStore) Save(ctx context.Context, s form.Snapshot) error {
	if err := check(s); err != nil {
		return err
	}
	b, err := encode(s)
	if err != nil {
		return err
	}

	var expiresAt *time.Time
	if p.ttl > 0 {
		t := time.Now().Add(p.ttl)
		expiresAt = &t
	}
	if _, err := p.pool.Exec(ctx, upsertSnapshot, s.ID, s.FormName, b, s.IsValid, s.UpdatedAt, expiresAt); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (p *PGStore) Get(ctx context.Context, id string) (form.Snapshot, error) {
	var b []byte
	err := p.pool.QueryRow(ctx, selectSnapshot, id).Scan(&b)
	if pg.IsNotFoundError(err) {
		return form.Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return form.Snapshot{}, errors.Join(ErrStoreFailed, err)
	}
	return decode(b)
}

func (p *PGStore) Delete(ctx context.Context, id string) error {
	if _, err := p.pool.Exec(ctx, deleteSnapshot, id); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// Purge removes expired rows and returns how many were removed.
func (p *PGStore) Purge(ctx context.Context) (int64, error) {
	tag, err := p.pool.Exec(ctx, deleteExpired)
	if err != nil {
		return 0, errors.Join(ErrStoreFailed, err)
	}
	return tag.RowsAffected(), nil
}
