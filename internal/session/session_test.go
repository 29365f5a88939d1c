package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/uigen/internal/agent"
	"github.com/jask/uigen/internal/codegen"
)

func result(id string) *agent.Result {
	plan := agent.Login()
	return &agent.Result{ID: id, Plan: plan, Code: codegen.Generate(plan), Explanation: agent.Explain(plan)}
}

func TestInitialState(t *testing.T) {
	s := New()
	assert.Nil(t, s.Current())
	assert.Nil(t, s.Plan())
	assert.Equal(t, codegen.InitialCode, s.Code())
	assert.Equal(t, "", s.Explanation())
	assert.False(t, s.Generating())
}

func TestSingleFlight(t *testing.T) {
	s := New()
	_, ok := s.Begin("  ")
	assert.False(t, ok, "blank prompt")

	t1, ok := s.Begin("login")
	require.True(t, ok)
	assert.True(t, s.Generating())
	prompt, pending := s.Pending()
	assert.True(t, pending)
	assert.Equal(t, "login", prompt)

	_, ok = s.Begin("dashboard")
	assert.False(t, ok, "second submission while in flight is inert")

	require.True(t, s.Finish(t1, result("a")))
	assert.False(t, s.Generating())
	assert.Equal(t, "a", s.Current().ID)
	assert.False(t, s.Finish(t1, result("b")), "ticket already used")
	assert.Equal(t, "a", s.Current().ID)
}

func TestFailKeepsPriorResult(t *testing.T) {
	s := New()
	t1, _ := s.Begin("login")
	s.Finish(t1, result("a"))

	t2, ok := s.Begin("boom")
	require.True(t, ok)
	err := errors.New("planner exploded")
	require.True(t, s.Fail(t2, err))
	assert.False(t, s.Generating())
	assert.Equal(t, "a", s.Current().ID)
	assert.ErrorIs(t, s.LastErr(), err)

	t3, ok := s.Begin("again")
	require.True(t, ok)
	s.Finish(t3, result("c"))
	assert.NoError(t, s.LastErr())
}

func TestResetDropsEverything(t *testing.T) {
	s := New()
	t1, _ := s.Begin("login")
	s.Finish(t1, result("a"))
	g := s.Generation()

	s.Reset()
	assert.Nil(t, s.Current())
	assert.Equal(t, codegen.InitialCode, s.Code())
	assert.Equal(t, "", s.Explanation())
	assert.False(t, s.Generating())
	assert.Greater(t, s.Generation(), g)
}

func TestResetDuringFlightStalesTicket(t *testing.T) {
	s := New()
	t1, _ := s.Begin("login")
	s.Reset()
	assert.False(t, s.Generating())
	assert.True(t, s.Settling())

	_, ok := s.Begin("dashboard")
	assert.False(t, ok, "the abandoned generation still holds the slot")

	assert.False(t, s.Finish(t1, result("late")))
	assert.Nil(t, s.Current())
	assert.False(t, s.Settling())
	assert.False(t, s.Fail(t1, errors.New("late")))
	assert.NoError(t, s.LastErr())

	t2, ok := s.Begin("dashboard")
	require.True(t, ok)
	assert.NotEqual(t, t1.Epoch, t2.Epoch)
	assert.True(t, s.Finish(t2, result("fresh")))
}

func TestAbandonedFailureFreesSession(t *testing.T) {
	s := New()
	t1, _ := s.Begin("login")
	s.Reset()
	assert.False(t, s.Fail(t1, errors.New("late")))
	assert.NoError(t, s.LastErr())
	assert.False(t, s.Settling())

	_, ok := s.Begin("dashboard")
	assert.True(t, ok)
}

func TestResetWhenIdleDoesNotBlock(t *testing.T) {
	s := New()
	s.Reset()
	assert.False(t, s.Settling())
	_, ok := s.Begin("login")
	assert.True(t, ok)
}

func TestBlankResultShowsInitialCode(t *testing.T) {
	s := New()
	t1, _ := s.Begin("xyz")
	plan := agent.Blank()
	s.Finish(t1, &agent.Result{ID: "blank", Plan: plan, Code: codegen.Generate(plan), Explanation: agent.Explain(plan)})
	assert.Equal(t, codegen.InitialCode, s.Code())
	assert.NotEmpty(t, s.Explanation())
	assert.True(t, s.Plan().Empty())
}

func TestRestore(t *testing.T) {
	s := New()
	assert.False(t, s.Restore(nil))
	require.True(t, s.Restore(result("old")))
	assert.Equal(t, "old", s.Current().ID)

	t1, _ := s.Begin("login")
	assert.False(t, s.Restore(result("other")), "not while generating")
	s.Finish(t1, result("new"))
	assert.Equal(t, "new", s.Current().ID)
}
