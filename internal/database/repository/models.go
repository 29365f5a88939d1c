package repository

import "time"

// Generation represents a generations row. PlanJSON holds the plan in its
// order-preserving JSON form.
type Generation struct {
	ID               string
	Prompt           string
	Layout           string
	ModificationType string
	PlanJSON         string
	Code             string
	Explanation      string
	CreatedAt        time.Time
}
