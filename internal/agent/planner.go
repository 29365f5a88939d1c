package agent

import (
	"context"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/jask/uigen/internal/component"
)

// DefaultDelay is the simulated thinking time before a plan is returned.
const DefaultDelay = 800 * time.Millisecond

// Planner turns a prompt into a component plan. current is the plan on
// screen, if any.
type Planner interface {
	Plan(ctx context.Context, input string, current *component.Plan) (*component.Plan, error)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the wall-clock Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoSleep returns immediately.
func NoSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

type scenario struct {
	keywords []string
	build    func() *component.Plan
}

// scenarios are checked in order; the first keyword hit wins.
var scenarios = []scenario{
	{keywords: []string{"dashboard", "analytics"}, build: Dashboard},
	{keywords: []string{"login", "sign in"}, build: Login},
	{keywords: []string{"modal", "settings"}, build: Settings},
}

// minFuzzyKeyword is the shortest keyword matched with a typo.
const minFuzzyKeyword = 6

// ScenarioPlanner picks one of the fixed scenarios by case-insensitive
// substring match. Prompts that match nothing get the blank plan. With
// Fuzzy set, a prompt word one edit away from a long keyword also matches,
// but only when no substring matched anywhere.
type ScenarioPlanner struct {
	Delay time.Duration
	Sleep Sleeper
	Fuzzy bool
}

// NewScenarioPlanner returns a planner with the default delay.
func NewScenarioPlanner(fuzzy bool) *ScenarioPlanner {
	return &ScenarioPlanner{Delay: DefaultDelay, Sleep: Sleep, Fuzzy: fuzzy}
}

// Plan ignores current; every result is a freshly built "create" plan.
func (s *ScenarioPlanner) Plan(ctx context.Context, input string, _ *component.Plan) (*component.Plan, error) {
	sleep := s.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	if err := sleep(ctx, s.Delay); err != nil {
		return nil, err
	}
	if build := Match(input, s.Fuzzy); build != nil {
		return build(), nil
	}
	return Blank(), nil
}

// Match returns the builder of the scenario input selects, or nil.
func Match(input string, fuzzy bool) func() *component.Plan {
	lower := strings.ToLower(input)
	for _, sc := range scenarios {
		for _, kw := range sc.keywords {
			if strings.Contains(lower, kw) {
				return sc.build
			}
		}
	}
	if !fuzzy {
		return nil
	}
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	})
	for _, sc := range scenarios {
		for _, kw := range sc.keywords {
			if len(kw) < minFuzzyKeyword || strings.Contains(kw, " ") {
				continue
			}
			for _, w := range words {
				if levenshtein.ComputeDistance(w, kw) <= 1 {
					return sc.build
				}
			}
		}
	}
	return nil
}
