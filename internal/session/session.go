// Package session owns the current generation result and the
// single-flight rule around producing the next one.
package session

import (
	"strings"
	"sync"

	"github.com/jask/uigen/internal/agent"
	"github.com/jask/uigen/internal/codegen"
	"github.com/jask/uigen/internal/component"
)

// Ticket identifies one in-flight generation.
type Ticket struct {
	Seq    uint64
	Epoch  uint64
	Prompt string
}

// Session holds at most one result and at most one in-flight generation.
// A result is replaced wholesale, never edited. It is safe for concurrent
// use, though the TUI only touches it from its update loop.
type Session struct {
	mu         sync.Mutex
	seq        uint64
	epoch      uint64
	inFlight   *Ticket
	// settling is a generation abandoned by Reset that has not returned yet.
	settling   *Ticket
	current    *agent.Result
	lastErr    error
	generation uint64
}

func New() *Session {
	return &Session{}
}

// Begin starts a generation. It refuses blank prompts and refuses while
// another generation is in flight, including one abandoned by Reset that
// has not returned yet.
func (s *Session) Begin(prompt string) (Ticket, bool) {
	if strings.TrimSpace(prompt) == "" {
		return Ticket{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight != nil || s.settling != nil {
		return Ticket{}, false
	}
	s.seq++
	t := Ticket{Seq: s.seq, Epoch: s.epoch, Prompt: prompt}
	s.inFlight = &t
	return t, true
}

// Finish installs res if t is still the in-flight ticket. A ticket made
// stale by Reset is discarded and frees the session for the next Begin.
func (s *Session) Finish(t Ticket, res *agent.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isCurrent(t) {
		s.release(t)
		return false
	}
	s.inFlight = nil
	s.lastErr = nil
	if res != nil {
		s.current = res
		s.generation++
	}
	return true
}

// Fail ends the in-flight generation with err; the prior result stays.
func (s *Session) Fail(t Ticket, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isCurrent(t) {
		s.release(t)
		return false
	}
	s.inFlight = nil
	s.lastErr = err
	return true
}

// Reset drops the result and reports not generating. An in-flight
// generation keeps running; its outcome is discarded when it returns and
// Begin refuses until then.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	if s.inFlight != nil {
		s.settling = s.inFlight
	}
	s.inFlight = nil
	s.current = nil
	s.lastErr = nil
	s.generation++
}

// Restore installs a result loaded from history. It does nothing while a
// generation is in flight.
func (s *Session) Restore(res *agent.Result) bool {
	if res == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight != nil {
		return false
	}
	s.current = res
	s.lastErr = nil
	s.generation++
	return true
}

func (s *Session) isCurrent(t Ticket) bool {
	return s.inFlight != nil && t.Epoch == s.epoch && t.Seq == s.inFlight.Seq
}

func (s *Session) release(t Ticket) {
	if s.settling != nil && s.settling.Seq == t.Seq {
		s.settling = nil
	}
}

// Settling reports whether a generation abandoned by Reset is still out.
func (s *Session) Settling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settling != nil
}

func (s *Session) Current() *agent.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Plan is the current plan, nil when there is none.
func (s *Session) Plan() *component.Plan {
	if res := s.Current(); res != nil {
		return res.Plan
	}
	return nil
}

// Code is the markup to display: the current result's code, or
// codegen.InitialCode when there is none or it is empty.
func (s *Session) Code() string {
	if res := s.Current(); res != nil && res.Code != "" {
		return res.Code
	}
	return codegen.InitialCode
}

func (s *Session) Explanation() string {
	if res := s.Current(); res != nil {
		return res.Explanation
	}
	return ""
}

func (s *Session) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight != nil
}

// Pending is the prompt being generated, if any.
func (s *Session) Pending() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight == nil {
		return "", false
	}
	return s.inFlight.Prompt, true
}

func (s *Session) LastErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Generation increases every time the displayed result changes.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}
