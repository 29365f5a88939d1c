// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing helpers for the preview's component library
//   (button, card, input, table, dialog, sidebar, navbar, chart)
// - layout composition (stacks, grid, popup overlay compositor) and pane chrome
//
// Not allowed here:
// - component tree traversal, key handling, or generation state
package widgets
