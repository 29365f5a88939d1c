// Package agent is the deterministic mock UI generator: a keyword planner
// picks one of a few fixed component plans, which is then serialized and
// explained.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/uigen/internal/codegen"
	"github.com/jask/uigen/internal/component"
)

var ErrEmptyPrompt = errors.New("agent: empty prompt")

// Result is one generation. It is never modified after Generate returns.
type Result struct {
	ID          string
	Prompt      string
	Plan        *component.Plan
	Code        string
	Explanation string
	CreatedAt   time.Time
}

// Agent runs plan -> validate -> code -> explanation. Zero fields fall back
// to the scenario planner, the wall clock, random UUIDs and a discarding
// logger.
type Agent struct {
	Planner Planner
	Logger  *slog.Logger
	Now     func() time.Time
	NewID   func() string
}

// Generate builds a result for prompt. current is handed to the planner
// and otherwise unused. A panic anywhere in the pipeline is returned as an
// error.
func (a *Agent) Generate(ctx context.Context, prompt string, current *component.Plan) (res *Result, err error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	log := a.logger()
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("agent: generation panicked: %v", r)
		}
		if err != nil {
			log.Error("generation failed", "prompt", prompt, "err", err)
		}
	}()

	planner := a.Planner
	if planner == nil {
		planner = NewScenarioPlanner(false)
	}
	plan, err := planner.Plan(ctx, prompt, current)
	if err != nil {
		return nil, fmt.Errorf("agent: plan: %w", err)
	}
	if plan == nil {
		plan = Blank()
	}
	if plan.ModificationType == "" {
		plan.ModificationType = component.Create
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("agent: invalid plan: %w", err)
	}

	res = &Result{
		ID:          a.newID(),
		Prompt:      prompt,
		Plan:        plan,
		Code:        codegen.Generate(plan),
		Explanation: Explain(plan),
		CreatedAt:   a.now(),
	}
	log.Info("generated",
		"id", res.ID,
		"layout", plan.Layout,
		"components", len(plan.Components),
		"elapsed", time.Since(started).Round(time.Millisecond),
	)
	return res, nil
}

func (a *Agent) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (a *Agent) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *Agent) newID() string {
	if a.NewID != nil {
		return a.NewID()
	}
	return uuid.NewString()
}
