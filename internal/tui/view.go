package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/uigen/widgets"
)

const (
	chatTitle    = "UI Generator"
	chatVersion  = "v1.0.0 (Deterministic)"
	codeTitle    = "GeneratedComponent.tsx"
	previewTitle = "Live Preview"
	reasonTitle  = "AGENT REASONING"
	hintIntro    = "Enter a prompt to generate a UI."
	hintExamples = `Try "Create a dashboard with charts" or "Login screen"`
	historyTitle = "History"
)

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	widths := a.paneWidths()
	h := a.bodyHeight()

	chatW, chatH := widgets.InnerSize(widths[panePrompt], h)
	chat := widgets.Pane{
		Title:   chatTitle,
		Content: a.chatContent(chatW, chatH),
		Focused: a.focus == panePrompt,
	}
	code := widgets.Pane{
		Title:   codeTitle,
		Badge:   codeBadge(a.codeX, scrollBadge(a.code.ScrollPercent(), a.code.TotalLineCount() > a.code.Height)),
		Content: a.code.View(),
		Focused: a.focus == paneCode,
	}
	live := widgets.Pane{
		Title:   previewTitle,
		Content: a.preview.View(),
		Focused: a.focus == panePreview,
	}
	if plan := a.session.Plan(); plan != nil {
		live.Badge = plan.Layout
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		chat.Render(widths[panePrompt], h),
		code.Render(widths[paneCode], h),
		live.Render(widths[panePreview], h),
	)
	if a.historyOpen {
		body = widgets.Overlay(body, a.renderHistory(h), a.width, h)
	}
	return a.placeWithFooter(body, a.renderStatus(), a.renderFooter(a.keys.FooterBindings(a.scope())))
}

// chatContent stacks the heading, the reasoning card or hints, the
// generating indicator and the prompt input, which is pinned to the bottom.
func (a *App) chatContent(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	top := []string{versionStyle.Render(widgets.Fit(chatVersion, width)), ""}
	if res := a.session.Current(); res != nil {
		top = append(top, promptStyle.Render(widgets.Fit("› "+flatten(res.Prompt), width)), "")
	}
	if expl := a.session.Explanation(); expl != "" {
		top = append(top, widgets.Card{Title: reasonTitle, Body: widgets.Text(expl)}.Render(width))
	} else {
		top = append(top,
			hintStyle.Render(widgets.Text(hintIntro).Render(width)),
			"",
			hintStyle.Render(widgets.Text(hintExamples).Render(width)),
		)
	}

	indicator := ""
	if _, ok := a.session.Pending(); ok {
		indicator = a.spinner.View() + " " + generatingStyle.Render("Generating...")
	}

	inputView := a.input.View()
	avail := max(0, height-lipgloss.Height(inputView)-1)
	lines := widgets.Lines(strings.Join(top, "\n"))
	if len(lines) > avail {
		lines = lines[:avail]
	}
	for len(lines) < avail {
		lines = append(lines, "")
	}
	lines = append(lines, widgets.Fit(indicator, width))
	return strings.Join(lines, "\n") + "\n" + inputView
}

func (a *App) renderHistory(bodyHeight int) string {
	width := max(20, min(a.width-4, 72))
	// The dialog frame and title take six rows; keep two more clear.
	visible := max(1, bodyHeight-8)
	body := widgets.Func(func(w int) string {
		switch {
		case !a.history.Enabled():
			return historyEmpty.Render("History is disabled (history.enabled = false)")
		case !a.historyLoaded:
			return historyEmpty.Render("Loading...")
		case len(a.historyItems) == 0:
			return historyEmpty.Render("No generations yet")
		}
		start := max(0, a.historyCursor-visible+1)
		end := min(len(a.historyItems), start+visible)
		rows := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			e := a.historyItems[i]
			prefix := "  "
			if i == a.historyCursor {
				prefix = cursorStyle.Render("> ")
			}
			meta := historyMeta.Render(fmt.Sprintf("%s  %-13s", e.CreatedAt, e.Layout))
			rows = append(rows, widgets.Fit(prefix+meta+" "+flatten(e.Prompt), w))
		}
		return strings.Join(rows, "\n")
	})
	title := historyTitle
	if n := len(a.historyItems); n > 0 {
		title = fmt.Sprintf("%s (%d)", historyTitle, n)
	}
	return widgets.Dialog{Title: title, Body: body}.Render(width)
}

// codeBadge prefixes the scroll badge with the first visible column once the
// code pane is scrolled sideways.
func codeBadge(codeX int, scroll string) string {
	if codeX == 0 {
		return scroll
	}
	return strings.TrimSpace(fmt.Sprintf("col %d %s", codeX+1, scroll))
}

func scrollBadge(percent float64, scrollable bool) string {
	if !scrollable {
		return ""
	}
	return fmt.Sprintf("%3.0f%%", percent*100)
}

// ---------------------------------------------------------------------------
// Footer & status
// ---------------------------------------------------------------------------

func (a *App) renderFooter(bindings []key.Binding) string {
	// Every character carries the footer background.
	bg := widgets.ColorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := widgets.Fit(strings.Join(parts, sep), max(1, a.width-4))
	return footerStyle.Width(a.width).Render(content)
}

func (a *App) renderStatus() string {
	text := a.status
	if text == "" {
		text = "ready"
	}
	flat := widgets.Fit(strings.ReplaceAll(text, "\n", " "), max(1, a.width-4))
	if a.statusErr {
		return statusErrStyle.Width(a.width).Render(flat)
	}
	return statusBarStyle.Width(a.width).Render(flat)
}

func (a *App) placeWithFooter(body, statusLine, footer string) string {
	contentHeight := a.bodyHeight()
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(a.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	return main + "\n" + statusLine + "\n" + footer
}
