package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jask/uigen/internal/agent"
	"github.com/jask/uigen/internal/component"
	"github.com/jask/uigen/internal/database"
	"github.com/jask/uigen/internal/database/repository"
)

// DefaultHistoryLimit is how many generations are kept when no limit is set.
const DefaultHistoryLimit = 50

var (
	ErrHistoryDisabled = errors.New("history: disabled")
	ErrNotFound        = errors.New("history: generation not found")
)

// HistoryService records finished generations and loads them back.
// A nil *HistoryService is a disabled history: reads return nothing and
// writes report ErrHistoryDisabled.
type HistoryService struct {
	DB     *sql.DB
	Limit  int
	Logger *slog.Logger
}

// Entry is one row of the history list.
type Entry struct {
	ID        string
	Prompt    string
	Layout    string
	CreatedAt string
}

func (s *HistoryService) Enabled() bool {
	return s != nil && s.DB != nil
}

// Record stores res and prunes rows beyond the limit in one transaction.
func (s *HistoryService) Record(ctx context.Context, res *agent.Result) error {
	if !s.Enabled() {
		return ErrHistoryDisabled
	}
	if res == nil || res.Plan == nil {
		return errors.New("history: nothing to record")
	}
	planJSON, err := json.Marshal(res.Plan)
	if err != nil {
		return fmt.Errorf("history: encode plan: %w", err)
	}
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	var pruned int64
	err = database.WithTx(s.DB, func(tx *sql.Tx) error {
		repo := repository.NewGenerationRepo(tx)
		if err := repo.Insert(ctx, repository.Generation{
			ID:               res.ID,
			Prompt:           res.Prompt,
			Layout:           res.Plan.Layout,
			ModificationType: string(res.Plan.ModificationType),
			PlanJSON:         string(planJSON),
			Code:             res.Code,
			Explanation:      res.Explanation,
			CreatedAt:        res.CreatedAt,
		}); err != nil {
			return err
		}
		pruned, err = repo.Prune(ctx, limit)
		return err
	})
	if err != nil {
		return fmt.Errorf("history: record %s: %w", res.ID, err)
	}
	s.logger().Debug("recorded generation", "id", res.ID, "layout", res.Plan.Layout, "pruned", pruned)
	return nil
}

// Recent lists the newest generations first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if !s.Enabled() {
		return nil, nil
	}
	rows, err := repository.NewGenerationRepo(s.DB).List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	out := make([]Entry, 0, len(rows))
	for _, g := range rows {
		out = append(out, Entry{
			ID:        g.ID,
			Prompt:    g.Prompt,
			Layout:    g.Layout,
			CreatedAt: g.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	return out, nil
}

// Restore rebuilds a stored generation. The plan is decoded from its
// stored JSON; code and explanation are the stored text.
func (s *HistoryService) Restore(ctx context.Context, id string) (*agent.Result, error) {
	if !s.Enabled() {
		return nil, ErrHistoryDisabled
	}
	g, err := repository.NewGenerationRepo(s.DB).Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("history: get %s: %w", id, err)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	var plan component.Plan
	if err := json.Unmarshal([]byte(g.PlanJSON), &plan); err != nil {
		return nil, fmt.Errorf("history: decode plan %s: %w", id, err)
	}
	if plan.Components == nil {
		plan.Components = []*component.Node{}
	}
	return &agent.Result{
		ID:          g.ID,
		Prompt:      g.Prompt,
		Plan:        &plan,
		Code:        g.Code,
		Explanation: g.Explanation,
		CreatedAt:   g.CreatedAt,
	}, nil
}

// Count is the number of stored generations.
func (s *HistoryService) Count(ctx context.Context) (int, error) {
	if !s.Enabled() {
		return 0, nil
	}
	n, err := repository.NewGenerationRepo(s.DB).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return n, nil
}

func (s *HistoryService) Clear(ctx context.Context) error {
	if !s.Enabled() {
		return ErrHistoryDisabled
	}
	if err := repository.NewGenerationRepo(s.DB).Clear(ctx); err != nil {
		return fmt.Errorf("history: clear: %w", err)
	}
	s.logger().Info("history cleared")
	return nil
}

func (s *HistoryService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
