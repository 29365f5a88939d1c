package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/uigen/internal/config"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry maps keys to actions per scope. Lookups fall back to the
// global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal  = "global"
	scopePrompt  = "prompt"
	scopeCode    = "code"
	scopePreview = "preview"
	scopeHistory = "history"
)

const (
	actionQuit       Action = "quit"
	actionNextPane   Action = "next_pane"
	actionPrevPane   Action = "prev_pane"
	actionReset      Action = "reset"
	actionHistory    Action = "history"
	actionCloseModal Action = "close_modal"
	actionSubmit     Action = "submit"
	actionNewline    Action = "newline"
	actionScrollUp   Action = "scroll_up"
	actionScrollDown Action = "scroll_down"
	actionPageUp     Action = "page_up"
	actionPageDown   Action = "page_down"
	actionTop        Action = "top"
	actionBottom     Action = "bottom"
	actionLeft       Action = "scroll_left"
	actionRight      Action = "scroll_right"
	actionRestore    Action = "restore"
	actionClear      Action = "clear"
	actionClose      Action = "close"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	// Global keys never use plain runes so the prompt can take them.
	reg(scopeGlobal, actionNextPane, []string{"tab"}, "next pane")
	reg(scopeGlobal, actionPrevPane, []string{"shift+tab"}, "prev pane")
	reg(scopeGlobal, actionReset, []string{"ctrl+r"}, "reset")
	reg(scopeGlobal, actionHistory, []string{"ctrl+o"}, "history")
	reg(scopeGlobal, actionCloseModal, []string{"esc"}, "close modal")
	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopePrompt, actionSubmit, []string{"enter"}, "generate")
	reg(scopePrompt, actionNewline, []string{"alt+enter"}, "newline")

	for _, scope := range []string{scopeCode, scopePreview} {
		reg(scope, actionScrollUp, []string{"k", "up"}, "up")
		reg(scope, actionScrollDown, []string{"j", "down"}, "down")
		reg(scope, actionPageUp, []string{"pgup", "ctrl+u"}, "page up")
		reg(scope, actionPageDown, []string{"pgdown", "ctrl+d"}, "page down")
		reg(scope, actionTop, []string{"g", "home"}, "top")
		reg(scope, actionBottom, []string{"G", "end"}, "bottom")
		reg(scope, actionQuit, []string{"q"}, "quit")
	}
	reg(scopeCode, actionLeft, []string{"h", "left"}, "left")
	reg(scopeCode, actionRight, []string{"l", "right"}, "right")

	reg(scopeHistory, actionScrollUp, []string{"k", "up"}, "up")
	reg(scopeHistory, actionScrollDown, []string{"j", "down"}, "down")
	reg(scopeHistory, actionRestore, []string{"enter"}, "restore")
	reg(scopeHistory, actionClear, []string{"x"}, "clear all")
	reg(scopeHistory, actionClose, []string{"esc", "ctrl+o"}, "close")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

// HelpBindings lists the scope's bindings for the footer. The first key
// of each binding is the one shown.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

// FooterBindings is the scope's help followed by the global keys the scope
// does not shadow.
func (r *KeyRegistry) FooterBindings(scope string) []key.Binding {
	out := r.HelpBindings(scope)
	if scope == scopeGlobal {
		return out
	}
	for _, b := range r.BindingsForScope(scopeGlobal) {
		if r.scopeHasAnyKey(scope, b.Keys) {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// g and G are different actions.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "option+", "alt+")
	s = strings.ReplaceAll(s, "pageup", "pgup")
	s = strings.ReplaceAll(s, "pagedown", "pgdown")
	return s
}

// ApplyKeybindingConfig replaces the keys of configured actions. Unknown
// scopes or actions, repeated entries and keys that end up bound twice in
// one scope are errors.
func (r *KeyRegistry) ApplyKeybindingConfig(items []config.Keybinding) error {
	if r == nil || len(items) == 0 {
		return nil
	}
	type pair struct {
		scope  string
		action Action
	}
	seenPair := make(map[pair]bool)
	for _, o := range items {
		scope := strings.TrimSpace(o.Scope)
		if scope == "" {
			return fmt.Errorf("keybinding: scope is required")
		}
		action := Action(strings.TrimSpace(o.Action))
		if action == "" {
			return fmt.Errorf("keybinding scope=%q: action is required", scope)
		}
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("keybinding scope=%q action=%q: keys are required", scope, action)
		}

		bindings := r.bindingsByScope[scope]
		if len(bindings) == 0 {
			return fmt.Errorf("keybinding scope=%q action=%q: unknown scope", scope, action)
		}
		var target *Binding
		for _, b := range bindings {
			if b.Action == action {
				target = b
				break
			}
		}
		if target == nil {
			return fmt.Errorf("keybinding scope=%q action=%q: unknown action in scope", scope, action)
		}
		p := pair{scope: scope, action: action}
		if seenPair[p] {
			return fmt.Errorf("keybinding scope=%q action=%q: duplicated entry", scope, action)
		}
		seenPair[p] = true
		target.Keys = keys
	}

	r.rebuildIndex()
	for scope, bindings := range r.bindingsByScope {
		seen := make(map[string]Action)
		for _, b := range bindings {
			for _, k := range b.Keys {
				if prev, ok := seen[k]; ok {
					return fmt.Errorf("keybinding conflict in scope=%q: key %q used by both %q and %q", scope, k, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}
	return nil
}

// ExportKeybindingConfig lists every binding in config form, sorted by
// scope then action.
func (r *KeyRegistry) ExportKeybindingConfig() []config.Keybinding {
	if r == nil {
		return nil
	}
	var out []config.Keybinding
	for scope, bindings := range r.bindingsByScope {
		for _, b := range bindings {
			out = append(out, config.Keybinding{
				Scope:  scope,
				Action: string(b.Action),
				Keys:   append([]string(nil), b.Keys...),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Action < out[j].Action
	})
	return out
}

func (r *KeyRegistry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		r.indexByScope[scope] = make(map[string]*Binding)
		for _, b := range bindings {
			for _, k := range b.Keys {
				r.indexByScope[scope][k] = b
			}
		}
	}
}
