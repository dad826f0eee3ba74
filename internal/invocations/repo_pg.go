package invocations

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts an invocation.
func (r *PGRepo) Create(ctx context.Context, inv Invocation) error {
	const query = `
INSERT INTO invocations (
    id,
    feature,
    prompt_id,
    prompt_hash,
    status,
    error_code,
    duration_ms,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var errorCode sql.NullString
	if inv.ErrorCode != "" {
		errorCode = sql.NullString{String: inv.ErrorCode, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		inv.ID,
		inv.Feature,
		inv.PromptID,
		inv.PromptHash,
		inv.Status,
		errorCode,
		inv.DurationMs,
		inv.CreatedAt,
	)
	return err
}

// ListRecent returns the newest invocations.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Invocation, error) {
	const query = `
SELECT id, feature, prompt_id, prompt_hash, status, error_code, duration_ms, created_at
FROM invocations
ORDER BY created_at DESC
LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Invocation{}
	for rows.Next() {
		var inv Invocation
		var errorCode sql.NullString
		if err := rows.Scan(
			&inv.ID,
			&inv.Feature,
			&inv.PromptID,
			&inv.PromptHash,
			&inv.Status,
			&errorCode,
			&inv.DurationMs,
			&inv.CreatedAt,
		); err != nil {
			return nil, err
		}
		if errorCode.Valid {
			inv.ErrorCode = errorCode.String
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// CountByFeature aggregates invocations per feature.
func (r *PGRepo) CountByFeature(ctx context.Context) (map[string]int, error) {
	const query = `SELECT feature, COUNT(*) FROM invocations GROUP BY feature`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var feature string
		var n int
		if err := rows.Scan(&feature, &n); err != nil {
			return nil, err
		}
		out[feature] = n
	}
	return out, rows.Err()
}
