// Package component holds the component tree produced for each generation:
// tagged nodes with ordered props and ordered children, grouped into a Plan.
//
// Trees are plain data. Consumers (codegen, preview) read them and never
// modify them; a new generation builds a new Plan.
package component

import (
	"errors"
	"fmt"
)

var (
	ErrCycle   = errors.New("component: node is its own ancestor")
	ErrShared  = errors.New("component: node owned more than once")
	ErrNilNode = errors.New("component: nil node")
)

// Node is one tagged element of a component tree. Type is either a
// primitive tag (div, span, p, h1) or a registered widget name; the model
// itself does not check which.
type Node struct {
	Type     string
	Props    Props
	Children []Child
}

// Child is a node or, when Node is nil, a raw text leaf.
type Child struct {
	Node *Node
	Text string
}

func TextChild(s string) Child { return Child{Text: s} }

func NodeChild(n *Node) Child { return Child{Node: n} }

func (c Child) IsText() bool { return c.Node == nil }

// New builds a node.
func New(typ string, props Props, children ...Child) *Node {
	return &Node{Type: typ, Props: props, Children: children}
}

// ModificationType tags a plan as a fresh creation or an update. Both are
// handled identically: every plan is a full tree.
type ModificationType string

const (
	Create ModificationType = "create"
	Update ModificationType = "update"
)

// Plan is the structural payload of one generation.
type Plan struct {
	Layout           string
	Components       []*Node
	ModificationType ModificationType
}

// Empty reports whether there is nothing to render.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Components) == 0
}

// Validate checks the forest is finite and exclusively owned: no nil
// nodes, no node below itself, and no node reachable twice.
func (p *Plan) Validate() error {
	if p == nil {
		return nil
	}
	seen := make(map[*Node]bool)
	for i, root := range p.Components {
		if err := validateNode(root, fmt.Sprintf("components[%d]", i), seen, make(map[*Node]bool)); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n *Node, path string, seen, onPath map[*Node]bool) error {
	if n == nil {
		return fmt.Errorf("%s: %w", path, ErrNilNode)
	}
	if onPath[n] {
		return fmt.Errorf("%s <%s>: %w", path, n.Type, ErrCycle)
	}
	if seen[n] {
		return fmt.Errorf("%s <%s>: %w", path, n.Type, ErrShared)
	}
	seen[n] = true
	onPath[n] = true
	defer delete(onPath, n)
	for i, c := range n.Children {
		if c.IsText() {
			continue
		}
		if err := validateNode(c.Node, fmt.Sprintf("%s.children[%d]", path, i), seen, onPath); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits every node depth-first, pre-order, with its depth (roots are
// depth 0). Returning false from fn skips the node's children.
func (p *Plan) Walk(fn func(n *Node, depth int) bool) {
	if p == nil {
		return
	}
	for _, root := range p.Components {
		walk(root, 0, fn)
	}
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		if !c.IsText() {
			walk(c.Node, depth+1, fn)
		}
	}
}
