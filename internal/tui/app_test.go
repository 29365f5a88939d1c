package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/uigen/internal/agent"
	"github.com/jask/uigen/internal/codegen"
	"github.com/jask/uigen/internal/component"
	"github.com/jask/uigen/internal/config"
	"github.com/jask/uigen/internal/database"
	"github.com/jask/uigen/internal/preview"
	"github.com/jask/uigen/internal/service"
)

type plannerFunc func(ctx context.Context, input string, current *component.Plan) (*component.Plan, error)

func (f plannerFunc) Plan(ctx context.Context, input string, current *component.Plan) (*component.Plan, error) {
	return f(ctx, input, current)
}

func testAgent(p agent.Planner) *agent.Agent {
	base := time.Date(2025, time.March, 4, 5, 6, 7, 0, time.UTC)
	ticks, ids := 0, 0
	return &agent.Agent{
		Planner: p,
		Now: func() time.Time {
			ticks++
			return base.Add(time.Duration(ticks) * time.Second)
		},
		NewID: func() string {
			ids++
			return fmt.Sprintf("gen-%d", ids)
		},
	}
}

func newTestApp(t *testing.T, cfg config.Config, p agent.Planner, history *service.HistoryService, width, height int) *App {
	t.Helper()
	if p == nil {
		p = &agent.ScenarioPlanner{Sleep: agent.NoSleep}
	}
	a, err := New(context.Background(), cfg, testAgent(p), history, nil)
	require.NoError(t, err)
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return a
}

func press(a *App, t tea.KeyType) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: t})
	return cmd
}

func typeText(a *App, s string) {
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// drain runs cmd and feeds the app's own messages back into Update until
// nothing is left. Spinner ticks and cursor blinks are dropped.
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "commands did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch m := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, m...)
		case spinner.TickMsg, nil:
		case generatedMsg, generateFailedMsg, historyMsg, restoredMsg, historyClearedMsg, statusMsg, errMsg:
			_, follow := a.Update(m)
			queue = append(queue, follow)
		}
	}
}

func submit(t *testing.T, a *App, prompt string) {
	t.Helper()
	typeText(a, prompt)
	cmd := press(a, tea.KeyEnter)
	require.NotNil(t, cmd)
	drain(t, a, cmd)
}

func openHistoryDB(t *testing.T) *service.HistoryService {
	t.Helper()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &service.HistoryService{DB: db, Limit: 10}
}

func TestInitialView(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 40)

	view := a.View()
	assert.Contains(t, view, chatTitle)
	assert.Contains(t, view, chatVersion)
	assert.Contains(t, view, hintIntro)
	assert.Contains(t, view, codeTitle)
	assert.Contains(t, view, previewTitle)
	assert.Contains(t, view, preview.EmptySubtitle)
	assert.Contains(t, view, codegen.InitialCode)
	assert.Contains(t, view, "ready")
}

func TestSubmitGenerates(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 40)

	typeText(a, "Create a dashboard with charts")
	cmd := press(a, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, a.session.Generating())
	assert.Empty(t, a.input.Value(), "input is cleared on submit")
	assert.Contains(t, a.View(), "Generating...")

	drain(t, a, cmd)
	assert.False(t, a.session.Generating())
	require.NotNil(t, a.session.Plan())
	assert.Equal(t, agent.LayoutSidebarMain, a.session.Plan().Layout)
	assert.Equal(t, "generated sidebar-main layout", a.status)

	view := a.View()
	assert.Contains(t, view, reasonTitle)
	assert.Contains(t, view, "<div")
	assert.NotContains(t, view, hintIntro)
	assert.NotContains(t, view, "Generating...")
}

func TestViewFillsTerminal(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 40)
	submit(t, a, "dashboard")

	lines := strings.Split(a.View(), "\n")
	assert.Len(t, lines, 40)
	for i, line := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), 150, "line %d", i)
	}
}

func TestBlankPromptIgnored(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 40)

	assert.Nil(t, press(a, tea.KeyEnter))
	typeText(a, "   ")
	assert.Nil(t, press(a, tea.KeyEnter))
	assert.False(t, a.session.Generating())
	assert.Nil(t, a.session.Current())
}

func TestNewlineKeepsPrompt(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 40)

	typeText(a, "login")
	a.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	typeText(a, "screen")
	assert.Equal(t, "login\nscreen", a.input.Value())
	assert.False(t, a.session.Generating())
}

func TestSecondSubmitRefusedWhileGenerating(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 40)

	typeText(a, "login")
	first := press(a, tea.KeyEnter)
	require.NotNil(t, first)

	typeText(a, "dashboard")
	assert.Nil(t, press(a, tea.KeyEnter))
	assert.Equal(t, "already generating", a.status)
	assert.Equal(t, "dashboard", a.input.Value())

	drain(t, a, first)
	assert.Equal(t, agent.LayoutCentered, a.session.Plan().Layout)
}

func TestResetDropsInFlightResult(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 40)
	submit(t, a, "login")
	require.NotNil(t, a.session.Current())

	typeText(a, "dashboard")
	cmd := press(a, tea.KeyEnter)
	require.NotNil(t, cmd)
	press(a, tea.KeyCtrlR)
	assert.False(t, a.session.Generating())

	typeText(a, "settings")
	assert.Nil(t, press(a, tea.KeyEnter), "no new generation until the abandoned one returns")
	assert.Equal(t, "previous generation still finishing", a.status)
	a.input.Reset()

	drain(t, a, cmd)

	assert.Nil(t, a.session.Current())
	assert.False(t, a.session.Generating())
	assert.Equal(t, codegen.InitialCode, a.session.Code())
	assert.Equal(t, "previous generation still finishing", a.status)
	assert.Contains(t, a.View(), preview.EmptySubtitle)

	submit(t, a, "settings")
	require.NotNil(t, a.session.Plan())
	assert.Equal(t, agent.LayoutCentered, a.session.Plan().Layout)
}

func TestFailureKeepsPriorResult(t *testing.T) {
	planner := plannerFunc(func(_ context.Context, input string, _ *component.Plan) (*component.Plan, error) {
		if strings.Contains(input, "boom") {
			return nil, errors.New("planner exploded")
		}
		return agent.Dashboard(), nil
	})
	a := newTestApp(t, config.Default(), planner, nil, 150, 40)
	submit(t, a, "dashboard")
	before := a.session.Code()

	submit(t, a, "boom")
	assert.False(t, a.session.Generating())
	assert.True(t, a.statusErr)
	assert.Contains(t, a.status, "planner exploded")
	assert.Equal(t, before, a.session.Code())
	require.Error(t, a.session.LastErr())

	submit(t, a, "dashboard again")
	assert.False(t, a.statusErr)
	assert.NoError(t, a.session.LastErr())
}

func TestFocusCycleAndScroll(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 12)
	submit(t, a, "dashboard")

	assert.Equal(t, scopePrompt, a.scope())
	press(a, tea.KeyTab)
	assert.Equal(t, scopeCode, a.scope())
	press(a, tea.KeyTab)
	assert.Equal(t, scopePreview, a.scope())
	press(a, tea.KeyShiftTab)
	assert.Equal(t, scopeCode, a.scope())

	require.Greater(t, a.code.TotalLineCount(), a.code.Height)
	typeText(a, "j")
	assert.Equal(t, 1, a.code.YOffset)
	assert.Empty(t, a.input.Value(), "keys in the code pane do not reach the prompt")
	typeText(a, "G")
	assert.True(t, a.code.AtBottom())
	typeText(a, "g")
	assert.Equal(t, 0, a.code.YOffset)

	press(a, tea.KeyTab)
	press(a, tea.KeyTab)
	assert.Equal(t, scopePrompt, a.scope())
	typeText(a, "j")
	assert.Equal(t, "j", a.input.Value())
}

// codeViews collects every screenful of the code pane at the current
// column, top to bottom.
func codeViews(a *App) []string {
	a.code.GotoTop()
	views := []string{ansi.Strip(a.code.View())}
	for steps := 0; !a.code.AtBottom() && steps < 200; steps++ {
		a.code.LineDown(1)
		views = append(views, ansi.Strip(a.code.View()))
	}
	return views
}

func TestCodePaneScrollsSideways(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 60)
	submit(t, a, "dashboard")
	press(a, tea.KeyTab)
	require.Equal(t, scopeCode, a.scope())
	require.Greater(t, a.maxCodeX(), 0, "the table line is wider than the pane")

	found := map[string]bool{}
	targets := []string{"rows=", "Charlie Day", `"Completed"]]`}
	for steps := 0; steps < 200; steps++ {
		for _, view := range codeViews(a) {
			for _, target := range targets {
				if strings.Contains(view, target) {
					found[target] = true
				}
			}
		}
		if a.codeX == a.maxCodeX() {
			break
		}
		typeText(a, "l")
	}
	for _, target := range targets {
		assert.True(t, found[target], "code pane never shows %q", target)
	}
	assert.Equal(t, a.maxCodeX(), a.codeX)
	assert.Contains(t, ansi.Strip(a.View()), fmt.Sprintf("col %d", a.codeX+1))

	typeText(a, "l")
	assert.Equal(t, a.maxCodeX(), a.codeX, "scrolling stops at the longest line")
	for a.codeX > 0 {
		typeText(a, "h")
	}
	typeText(a, "h")
	assert.Equal(t, 0, a.codeX)

	typeText(a, "l")
	require.Positive(t, a.codeX)
	press(a, tea.KeyShiftTab)
	submit(t, a, "login")
	assert.Equal(t, 0, a.codeX, "a new result starts at the first column")
}

func TestEscClosesOpenModal(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 40)
	submit(t, a, "open the settings")

	plan := a.session.Plan()
	require.Equal(t, []string{"0.1"}, preview.OpenModals(plan, a.closed))
	assert.Contains(t, a.preview.View(), "Display Name")

	press(a, tea.KeyEsc)
	assert.Empty(t, preview.OpenModals(plan, a.closed))
	assert.True(t, a.closed["0.1"])
	assert.NotContains(t, a.preview.View(), "Display Name")
	assert.Equal(t, "modal closed", a.status)

	submit(t, a, "settings")
	assert.Empty(t, a.closed, "a new result reopens its modals")
	assert.Contains(t, a.preview.View(), "Display Name")
}

func TestHistoryOverlayRestoreAndClear(t *testing.T) {
	hist := openHistoryDB(t)
	a := newTestApp(t, config.Default(), nil, hist, 150, 40)
	submit(t, a, "login screen")
	submit(t, a, "dashboard")

	cmd := press(a, tea.KeyCtrlO)
	require.True(t, a.historyOpen)
	assert.Equal(t, scopeHistory, a.scope())
	drain(t, a, cmd)
	require.Len(t, a.historyItems, 2)
	assert.Equal(t, "dashboard", a.historyItems[0].Prompt)
	assert.Contains(t, a.View(), "History (2)")

	typeText(a, "j")
	assert.Equal(t, 1, a.historyCursor)
	typeText(a, "j")
	assert.Equal(t, 1, a.historyCursor, "cursor stops at the last row")

	drain(t, a, press(a, tea.KeyEnter))
	assert.False(t, a.historyOpen)
	assert.Equal(t, agent.LayoutCentered, a.session.Plan().Layout)
	assert.Equal(t, "restored: login screen", a.status)

	drain(t, a, press(a, tea.KeyCtrlO))
	drain(t, a, a.keyCmd("x"))
	assert.Empty(t, a.historyItems)
	assert.Equal(t, "history cleared", a.status)

	left, err := hist.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, left)

	press(a, tea.KeyEsc)
	assert.False(t, a.historyOpen)
}

func TestRestoreRefusedWhileGenerating(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 40)
	typeText(a, "login")
	require.NotNil(t, press(a, tea.KeyEnter))

	a.Update(restoredMsg{result: &agent.Result{ID: "old", Plan: agent.Dashboard()}})
	assert.Equal(t, "cannot restore while generating", a.status)
	assert.Nil(t, a.session.Current())
}

func TestHistoryDisabled(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 40)

	assert.Nil(t, press(a, tea.KeyCtrlO))
	assert.True(t, a.historyOpen)
	assert.Contains(t, a.View(), "History is disabled")
	assert.Nil(t, a.keyCmd("x"))

	press(a, tea.KeyEsc)
	assert.False(t, a.historyOpen)
}

func TestKeybindingOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Keybindings = []config.Keybinding{{Scope: "prompt", Action: "submit", Keys: []string{"ctrl+s"}}}
	a := newTestApp(t, cfg, nil, nil, 150, 40)

	typeText(a, "login")
	press(a, tea.KeyEnter)
	assert.False(t, a.session.Generating())

	cmd := press(a, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	drain(t, a, cmd)
	assert.Equal(t, agent.LayoutCentered, a.session.Plan().Layout)

	cfg.Keybindings = []config.Keybinding{{Scope: "history", Action: "clear", Keys: []string{"enter"}}}
	_, err := New(context.Background(), cfg, nil, nil, nil)
	require.Error(t, err)
}

func TestStaleMessagesIgnored(t *testing.T) {
	a := newTestApp(t, config.Default(), nil, nil, 150, 40)
	submit(t, a, "login")
	code := a.session.Code()

	res, err := testAgent(&agent.ScenarioPlanner{Sleep: agent.NoSleep}).Generate(context.Background(), "dashboard", nil)
	require.NoError(t, err)
	a.Update(generatedMsg{result: res})
	a.Update(generateFailedMsg{err: errors.New("late")})

	assert.Equal(t, code, a.session.Code())
	assert.False(t, a.statusErr)
}

// keyCmd presses a single rune key and returns the resulting command.
func (a *App) keyCmd(k string) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return cmd
}
