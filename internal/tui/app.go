// Package tui is the terminal shell: a prompt pane, the generated code and
// the live preview side by side, with a history overlay on top.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/uigen/internal/agent"
	"github.com/jask/uigen/internal/component"
	"github.com/jask/uigen/internal/config"
	"github.com/jask/uigen/internal/preview"
	"github.com/jask/uigen/internal/service"
	"github.com/jask/uigen/internal/session"
	"github.com/jask/uigen/widgets"
)

const (
	inputHeight = 3
	// codeStep is how many columns one sideways scroll moves the code pane.
	codeStep    = 8
)

type pane int

const (
	panePrompt pane = iota
	paneCode
	panePreview
	paneCount
)

// App ties together the session, the agent and the three panes.
type App struct {
	ctx     context.Context
	cfg     config.Config
	agent   *agent.Agent
	history *service.HistoryService
	session *session.Session
	logger  *slog.Logger
	keys    *KeyRegistry

	width  int
	height int
	focus  pane

	input   textarea.Model
	code    viewport.Model
	preview viewport.Model
	spinner spinner.Model
	// codeX is the first code column shown; long lines scroll sideways.
	codeX   int

	// closed holds preview element keys of modals the user dismissed.
	closed    map[string]bool
	status    string
	statusErr bool

	historyOpen   bool
	historyLoaded bool
	historyItems  []service.Entry
	historyCursor int

	// shown is the session generation the viewports were last filled from.
	shown uint64
}

// New builds the app. A nil history disables the history overlay; a nil
// logger discards. Keybinding overrides from cfg are applied here and an
// invalid override is an error.
func New(ctx context.Context, cfg config.Config, gen *agent.Agent, history *service.HistoryService, logger *slog.Logger) (*App, error) {
	if gen == nil {
		gen = &agent.Agent{Planner: agent.NewScenarioPlanner(cfg.Agent.Fuzzy)}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	keys := NewKeyRegistry()
	if err := keys.ApplyKeybindingConfig(cfg.Keybindings); err != nil {
		return nil, err
	}

	input := textarea.New()
	input.Placeholder = "Describe the UI you want..."
	input.ShowLineNumbers = false
	input.CharLimit = 2000
	input.SetHeight(inputHeight)
	// Newlines come from the newline action only.
	input.KeyMap.InsertNewline.SetEnabled(false)
	input.Focus()

	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		agent:   gen,
		history: history,
		session: session.New(),
		logger:  logger,
		keys:    keys,
		input:   input,
		code:    viewport.New(0, 0),
		preview: viewport.New(0, 0),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		closed:  make(map[string]bool),
	}
	a.sync()
	return a, nil
}

func (a *App) Init() tea.Cmd {
	return textarea.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.resize()
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case spinner.TickMsg:
		if !a.session.Generating() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case generatedMsg:
		return a, a.finishGeneration(m)
	case generateFailedMsg:
		if !a.session.Fail(m.ticket, m.err) {
			a.logger.Debug("dropped stale failure", "seq", m.ticket.Seq)
			return a, nil
		}
		a.setError(m.err)
		return a, nil
	case historyMsg:
		a.historyItems = []service.Entry(m)
		a.historyLoaded = true
		a.historyCursor = min(a.historyCursor, max(0, len(a.historyItems)-1))
		return a, nil
	case restoredMsg:
		if !a.session.Restore(m.result) {
			a.setStatus("cannot restore while generating")
			return a, nil
		}
		a.historyOpen = false
		a.closed = make(map[string]bool)
		a.sync()
		a.setStatus("restored: " + flatten(m.result.Prompt))
		return a, nil
	case historyClearedMsg:
		a.historyItems = nil
		a.historyCursor = 0
		a.setStatus("history cleared")
		return a, nil
	case statusMsg:
		a.setStatus(string(m))
		return a, nil
	case errMsg:
		a.logger.Error("tui", "err", m.error)
		a.setError(m.error)
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := a.scope()
	b := a.keys.Lookup(m.String(), scope)
	if b == nil {
		if scope == scopePrompt {
			var cmd tea.Cmd
			a.input, cmd = a.input.Update(m)
			return a, cmd
		}
		return a, nil
	}
	switch b.Action {
	case actionQuit:
		return a, tea.Quit
	case actionNextPane:
		return a, a.setFocus((a.focus + 1) % paneCount)
	case actionPrevPane:
		return a, a.setFocus((a.focus + paneCount - 1) % paneCount)
	case actionReset:
		a.reset()
	case actionHistory:
		return a, a.openHistory()
	case actionCloseModal:
		a.closeModal()
	case actionSubmit:
		return a, a.submit()
	case actionNewline:
		a.input.InsertString("\n")
	case actionScrollUp, actionScrollDown, actionPageUp, actionPageDown, actionTop, actionBottom, actionLeft, actionRight:
		if scope == scopeHistory {
			a.moveHistory(b.Action)
		} else {
			a.scroll(b.Action)
		}
	case actionRestore:
		return a, a.restoreSelected()
	case actionClear:
		return a, a.clearHistory()
	case actionClose:
		a.historyOpen = false
	}
	return a, nil
}

func (a *App) scope() string {
	if a.historyOpen {
		return scopeHistory
	}
	switch a.focus {
	case paneCode:
		return scopeCode
	case panePreview:
		return scopePreview
	default:
		return scopePrompt
	}
}

func (a *App) setFocus(p pane) tea.Cmd {
	a.focus = p
	if p == panePrompt {
		return a.input.Focus()
	}
	a.input.Blur()
	return nil
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.status = "error: " + err.Error()
	a.statusErr = true
}

// ---------------------------------------------------------------------------
// Generation
// ---------------------------------------------------------------------------

func (a *App) submit() tea.Cmd {
	prompt := a.input.Value()
	if strings.TrimSpace(prompt) == "" {
		return nil
	}
	current := a.session.Plan()
	ticket, ok := a.session.Begin(prompt)
	if !ok {
		if a.session.Settling() {
			a.setStatus("previous generation still finishing")
		} else {
			a.setStatus("already generating")
		}
		return nil
	}
	a.input.Reset()
	a.setStatus("generating...")
	return tea.Batch(a.spinner.Tick, a.generateCmd(ticket, current))
}

func (a *App) generateCmd(t session.Ticket, current *component.Plan) tea.Cmd {
	return func() tea.Msg {
		res, err := a.agent.Generate(a.ctx, t.Prompt, current)
		if err != nil {
			return generateFailedMsg{ticket: t, err: err}
		}
		return generatedMsg{ticket: t, result: res}
	}
}

func (a *App) finishGeneration(m generatedMsg) tea.Cmd {
	if !a.session.Finish(m.ticket, m.result) {
		a.logger.Debug("dropped stale generation", "seq", m.ticket.Seq, "prompt", m.ticket.Prompt)
		return nil
	}
	a.closed = make(map[string]bool)
	a.sync()
	a.setStatus(fmt.Sprintf("generated %s layout", m.result.Plan.Layout))
	return a.recordCmd(m.result)
}

func (a *App) recordCmd(res *agent.Result) tea.Cmd {
	if !a.history.Enabled() {
		return nil
	}
	return func() tea.Msg {
		if err := a.history.Record(a.ctx, res); err != nil {
			return errMsg{fmt.Errorf("record history: %w", err)}
		}
		return nil
	}
}

func (a *App) reset() {
	a.session.Reset()
	a.closed = make(map[string]bool)
	a.sync()
	a.setStatus("reset")
	a.logger.Info("session reset")
}

// closeModal dismisses the top-most open modal in the preview.
func (a *App) closeModal() {
	open := preview.OpenModals(a.session.Plan(), a.closed)
	if len(open) == 0 {
		return
	}
	a.closed[open[len(open)-1]] = true
	a.syncPreview()
	a.setStatus("modal closed")
}

// ---------------------------------------------------------------------------
// History overlay
// ---------------------------------------------------------------------------

func (a *App) openHistory() tea.Cmd {
	a.historyOpen = true
	a.historyLoaded = false
	a.historyCursor = 0
	if !a.history.Enabled() {
		return nil
	}
	limit := a.cfg.History.Limit
	return func() tea.Msg {
		items, err := a.history.Recent(a.ctx, limit)
		if err != nil {
			return errMsg{err}
		}
		return historyMsg(items)
	}
}

func (a *App) moveHistory(action Action) {
	last := len(a.historyItems) - 1
	if last < 0 {
		return
	}
	switch action {
	case actionScrollUp:
		a.historyCursor--
	case actionScrollDown:
		a.historyCursor++
	case actionPageUp, actionTop:
		a.historyCursor = 0
	case actionPageDown, actionBottom:
		a.historyCursor = last
	}
	a.historyCursor = max(0, min(a.historyCursor, last))
}

func (a *App) restoreSelected() tea.Cmd {
	if !a.history.Enabled() || len(a.historyItems) == 0 {
		return nil
	}
	id := a.historyItems[a.historyCursor].ID
	return func() tea.Msg {
		res, err := a.history.Restore(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return restoredMsg{result: res}
	}
}

func (a *App) clearHistory() tea.Cmd {
	if !a.history.Enabled() {
		return nil
	}
	return func() tea.Msg {
		if err := a.history.Clear(a.ctx); err != nil {
			return errMsg{err}
		}
		return historyClearedMsg{}
	}
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

func (a *App) paneWidths() []int {
	return widgets.SplitWidths(a.width, int(paneCount), []float64{
		a.cfg.UI.ChatRatio,
		a.cfg.UI.CodeRatio,
		a.cfg.UI.PreviewRatio,
	})
}

// bodyHeight leaves two rows for the status bar and footer.
func (a *App) bodyHeight() int {
	return max(3, a.height-2)
}

func (a *App) resize() {
	widths := a.paneWidths()
	h := a.bodyHeight()
	chatW, _ := widgets.InnerSize(widths[panePrompt], h)
	a.input.SetWidth(chatW)
	a.code.Width, a.code.Height = widgets.InnerSize(widths[paneCode], h)
	a.preview.Width, a.preview.Height = widgets.InnerSize(widths[panePreview], h)
	a.sync()
}

// sync refills both viewports from the session, scrolling back to the top
// left when the result changed.
func (a *App) sync() {
	changed := a.session.Generation() != a.shown
	if changed {
		a.shown = a.session.Generation()
		a.codeX = 0
	}
	a.syncCode()
	a.syncPreview()
	if changed {
		a.code.GotoTop()
		a.preview.GotoTop()
	}
}

func (a *App) codeLines() []string {
	return strings.Split(strings.TrimPrefix(a.session.Code(), "\n"), "\n")
}

// maxCodeX is the offset that brings the end of the longest line into view.
func (a *App) maxCodeX() int {
	widest := 0
	for _, line := range a.codeLines() {
		widest = max(widest, ansi.StringWidth(line))
	}
	return max(0, widest-a.code.Width)
}

// syncCode shows the code columns from codeX on.
func (a *App) syncCode() {
	a.codeX = max(0, min(a.codeX, a.maxCodeX()))
	lines := a.codeLines()
	for i, line := range lines {
		lines[i] = ansi.Truncate(ansi.TruncateLeft(line, a.codeX, ""), a.code.Width, "")
	}
	a.code.SetContent(codeStyle.Render(strings.Join(lines, "\n")))
}

func (a *App) syncPreview() {
	a.preview.SetContent(preview.Render(a.session.Plan(), preview.Options{
		Width:  a.preview.Width,
		Height: a.preview.Height,
		Closed: a.closed,
	}))
}

func (a *App) scroll(action Action) {
	vp := &a.code
	if a.focus == panePreview {
		vp = &a.preview
	}
	switch action {
	case actionScrollUp:
		vp.LineUp(1)
	case actionScrollDown:
		vp.LineDown(1)
	case actionPageUp:
		vp.HalfViewUp()
	case actionPageDown:
		vp.HalfViewDown()
	case actionTop:
		vp.GotoTop()
	case actionBottom:
		vp.GotoBottom()
	case actionLeft:
		a.codeX -= codeStep
		a.syncCode()
	case actionRight:
		a.codeX += codeStep
		a.syncCode()
	}
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
