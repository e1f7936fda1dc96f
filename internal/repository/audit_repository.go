package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/sekolah-console/internal/model"
)

// AuditRepository handles console audit trail data access.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Insert stores e and fills in its ID. Entries with a request ID already
// stored are skipped so a retried queue item is written once.
func (r *AuditRepository) Insert(ctx context.Context, e *model.AuditEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO console_audit (request_id, actor_id, actor_name, actor_role, method, path, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (request_id) DO NOTHING`,
		e.RequestID, e.ActorID, e.ActorName, string(e.ActorRole), e.Method, e.Path, e.Status, e.CreatedAt,
	)
	return err
}

// ListRecent retrieves the newest entries, at most limit of them.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, request_id, actor_id, actor_name, actor_role, method, path, status, created_at
		 FROM console_audit ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.AuditEntry{}
	for rows.Next() {
		var (
			e    model.AuditEntry
			role string
		)
		if err := rows.Scan(&e.ID, &e.RequestID, &e.ActorID, &e.ActorName, &role, &e.Method, &e.Path, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ActorRole = model.Role(role)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
