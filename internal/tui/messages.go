package tui

import (
	"github.com/jask/uigen/internal/agent"
	"github.com/jask/uigen/internal/service"
	"github.com/jask/uigen/internal/session"
)

type statusMsg string

type errMsg struct{ error }

// generatedMsg carries a finished generation back to the update loop with
// the ticket it was started under.
type generatedMsg struct {
	ticket session.Ticket
	result *agent.Result
}

type generateFailedMsg struct {
	ticket session.Ticket
	err    error
}

type historyMsg []service.Entry

type restoredMsg struct {
	result *agent.Result
}

type historyClearedMsg struct{}
