package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/uigen/internal/codegen"
	"github.com/jask/uigen/internal/component"
)

var fixedNow = time.Date(2025, time.March, 4, 5, 6, 7, 0, time.UTC)

func testAgent(p Planner) *Agent {
	return &Agent{
		Planner: p,
		Now:     func() time.Time { return fixedNow },
		NewID:   func() string { return "gen-1" },
	}
}

func instant(fuzzy bool) *ScenarioPlanner {
	return &ScenarioPlanner{Sleep: NoSleep, Fuzzy: fuzzy}
}

func types(nodes []component.Child) []string {
	var out []string
	for _, c := range nodes {
		if !c.IsText() {
			out = append(out, c.Node.Type)
		}
	}
	return out
}

func TestDashboardScenario(t *testing.T) {
	res, err := testAgent(instant(false)).Generate(context.Background(), "Create a dashboard with charts", nil)
	require.NoError(t, err)

	assert.Equal(t, "gen-1", res.ID)
	assert.Equal(t, fixedNow, res.CreatedAt)
	assert.Equal(t, LayoutSidebarMain, res.Plan.Layout)
	assert.Equal(t, component.Create, res.Plan.ModificationType)
	assert.Equal(t, explainDashboard, res.Explanation)
	assert.True(t, strings.HasPrefix(res.Code, "\n<div style={\"display\":\"flex\",\"height\":\"100vh\"}>"))

	require.Len(t, res.Plan.Components, 1)
	root := res.Plan.Components[0]
	assert.Equal(t, []string{"Sidebar", "div"}, types(root.Children))
	main := root.Children[1].Node
	assert.Equal(t, []string{"Navbar", "div"}, types(main.Children))
	grid := main.Children[1].Node
	assert.Equal(t, []string{"Card", "Card", "Card"}, types(grid.Children))
	assert.Equal(t, []string{"Chart"}, types(grid.Children[0].Node.Children))
	assert.Equal(t, []string{"Chart"}, types(grid.Children[1].Node.Children))
	wide := grid.Children[2].Node
	assert.Equal(t, "span 2", wide.Props.Map("style").String("gridColumn", ""))
	table := wide.Children[0].Node
	require.Equal(t, "Table", table.Type)
	assert.Equal(t, `["ID","User","Amount","Status"]`, mustValue(t, table.Props, "headers").JSON())
	assert.Len(t, table.Props.List("rows"), 3)
}

func mustValue(t *testing.T, p component.Props, key string) component.Value {
	t.Helper()
	v, ok := p.Get(key)
	require.True(t, ok, "missing prop %s", key)
	return v
}

func TestDashboardCodeExact(t *testing.T) {
	code := codegen.Generate(Dashboard())
	lines := strings.Split(code, "\n")
	require.Greater(t, len(lines), 10)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, `  <Sidebar items={[{"label":"Overview","active":true},{"label":"Analytics","active":false},{"label":"Settings","active":false}]} />`, lines[2])
	assert.Contains(t, code, "\n    <Navbar brand=\"Analytics Pro\" links={[\"Profile\",\"Logout\"]} />")
	assert.Contains(t, code, "\n        <Chart type=\"line\" />")
	assert.True(t, strings.HasSuffix(code, "\n</div>"))
}

func TestLoginScenario(t *testing.T) {
	for _, prompt := range []string{"login", "Please SIGN IN here"} {
		res, err := testAgent(instant(false)).Generate(context.Background(), prompt, nil)
		require.NoError(t, err)
		assert.Equal(t, LayoutCentered, res.Plan.Layout)
		assert.Equal(t, explainCentered, res.Explanation)

		card := res.Plan.Components[0].Children[0].Node
		require.Equal(t, "Card", card.Type)
		assert.Equal(t, "Welcome Back", card.Props.String("title", ""))
		assert.Equal(t, []string{"Input", "Input", "div"}, types(card.Children))
		button := card.Children[2].Node.Children[0].Node
		assert.Equal(t, "Button", button.Type)
		assert.Equal(t, "Sign In", button.Props.String("children", ""))
	}
}

func TestSettingsScenario(t *testing.T) {
	res, err := testAgent(instant(false)).Generate(context.Background(), "settings", nil)
	require.NoError(t, err)
	root := res.Plan.Components[0]
	modal := root.Children[1].Node
	require.Equal(t, "Modal", modal.Type)
	assert.True(t, modal.Props.Bool("isOpen"))
	assert.Equal(t, "Application Settings", modal.Props.String("title", ""))
	assert.Equal(t, []string{"Input", "Input", "div"}, types(modal.Children))
	buttons := modal.Children[2].Node.Children
	assert.Equal(t, "Cancel", buttons[0].Node.Props.String("children", ""))
	assert.Equal(t, "Save Changes", buttons[1].Node.Props.String("children", ""))
	assert.Equal(t, explainCentered, res.Explanation)
}

func TestBlankScenario(t *testing.T) {
	res, err := testAgent(instant(false)).Generate(context.Background(), "xyz unrelated text", nil)
	require.NoError(t, err)
	assert.Equal(t, LayoutBlank, res.Plan.Layout)
	assert.Empty(t, res.Plan.Components)
	assert.Equal(t, "", res.Code)
	assert.Equal(t, explainBlank, res.Explanation)
}

func TestMatchOrder(t *testing.T) {
	cases := map[string]string{
		"analytics login":     LayoutSidebarMain,
		"login settings":      LayoutCentered,
		"open a MODAL":        LayoutCentered,
		"dashbaord":           LayoutBlank,
		"nothing to see here": LayoutBlank,
	}
	for prompt, layout := range cases {
		plan, err := instant(false).Plan(context.Background(), prompt, nil)
		require.NoError(t, err)
		assert.Equal(t, layout, plan.Layout, prompt)
	}
	// login beats settings even though both hit.
	plan, _ := instant(false).Plan(context.Background(), "settings login", nil)
	assert.Equal(t, "Card", plan.Components[0].Children[0].Node.Type)
}

func TestFuzzyMatch(t *testing.T) {
	assert.NotNil(t, Match("show me the dashbord", true))
	assert.NotNil(t, Match("setings please", true))
	assert.Nil(t, Match("logn", true), "short keywords need an exact hit")
	assert.Nil(t, Match("dashbord", false))
	assert.Nil(t, Match("dshbrd", true))
}

func TestPlannerBuildsFreshPlans(t *testing.T) {
	a, _ := instant(false).Plan(context.Background(), "dashboard", nil)
	b, _ := instant(false).Plan(context.Background(), "dashboard", a)
	assert.NotSame(t, a.Components[0], b.Components[0])
	assert.Equal(t, codegen.Generate(a), codegen.Generate(b))
}

func TestPlannerWaitsForDelay(t *testing.T) {
	var waited time.Duration
	p := &ScenarioPlanner{Delay: DefaultDelay, Sleep: func(_ context.Context, d time.Duration) error {
		waited = d
		return nil
	}}
	_, err := p.Plan(context.Background(), "login", nil)
	require.NoError(t, err)
	assert.Equal(t, 800*time.Millisecond, waited)
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, Sleep(context.Background(), 0))
}

func TestEmptyPrompt(t *testing.T) {
	_, err := testAgent(instant(false)).Generate(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

type plannerFunc func(ctx context.Context, input string, current *component.Plan) (*component.Plan, error)

func (f plannerFunc) Plan(ctx context.Context, input string, current *component.Plan) (*component.Plan, error) {
	return f(ctx, input, current)
}

func TestGenerateFailures(t *testing.T) {
	boom := errors.New("boom")
	_, err := testAgent(plannerFunc(func(context.Context, string, *component.Plan) (*component.Plan, error) {
		return nil, boom
	})).Generate(context.Background(), "x", nil)
	assert.ErrorIs(t, err, boom)

	_, err = testAgent(plannerFunc(func(context.Context, string, *component.Plan) (*component.Plan, error) {
		panic("kaboom")
	})).Generate(context.Background(), "x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")

	shared := component.New("Chart", nil)
	_, err = testAgent(plannerFunc(func(context.Context, string, *component.Plan) (*component.Plan, error) {
		return &component.Plan{Components: []*component.Node{shared, shared}}, nil
	})).Generate(context.Background(), "x", nil)
	assert.ErrorIs(t, err, component.ErrShared)
}

func TestExplain(t *testing.T) {
	assert.Equal(t, explainOther, Explain(&component.Plan{Layout: "split"}))
	assert.Equal(t, explainBlank, Explain(Blank()))
	assert.Equal(t, explainBlank, Explain(nil))
}

func TestGenerateDefaultsIDAndClock(t *testing.T) {
	a := &Agent{Planner: instant(false)}
	res, err := a.Generate(context.Background(), "login", nil)
	require.NoError(t, err)
	assert.Len(t, res.ID, 36)
	assert.WithinDuration(t, time.Now(), res.CreatedAt, time.Minute)
}
