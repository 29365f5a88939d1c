package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// GenerationRepo handles generations.
type GenerationRepo struct {
	db DBTX
}

func NewGenerationRepo(db DBTX) *GenerationRepo { return &GenerationRepo{db: db} }

func (r *GenerationRepo) Insert(ctx context.Context, g Generation) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO generations(id, prompt, layout, modification_type, plan_json, code, explanation, created_at_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO NOTHING;
	`, g.ID, g.Prompt, g.Layout, g.ModificationType, g.PlanJSON, g.Code, g.Explanation, g.CreatedAt.UnixMilli())
	return err
}

// List returns the newest generations first; limit <= 0 means all.
func (r *GenerationRepo) List(ctx context.Context, limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, prompt, layout, modification_type, plan_json, code, explanation, created_at_ms
	FROM generations ORDER BY created_at_ms DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Get returns nil, nil when id is unknown.
func (r *GenerationRepo) Get(ctx context.Context, id string) (*Generation, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, prompt, layout, modification_type, plan_json, code, explanation, created_at_ms
	FROM generations WHERE id = ?`, id)
	g, err := scanGeneration(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *GenerationRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM generations`).Scan(&n)
	return n, err
}

// Prune deletes all but the newest keep rows.
func (r *GenerationRepo) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	DELETE FROM generations WHERE rowid NOT IN (
		SELECT rowid FROM generations ORDER BY created_at_ms DESC, rowid DESC LIMIT ?
	)`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *GenerationRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM generations`)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(s scanner) (Generation, error) {
	var g Generation
	var createdMs int64
	if err := s.Scan(&g.ID, &g.Prompt, &g.Layout, &g.ModificationType, &g.PlanJSON, &g.Code, &g.Explanation, &createdMs); err != nil {
		return Generation{}, err
	}
	g.CreatedAt = time.UnixMilli(createdMs).UTC()
	return g, nil
}
