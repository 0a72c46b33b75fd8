// Package types provides type definitions for structured data used throughout the resume-builder API.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CareerStep is one node of a generated career roadmap.
// PrerequisiteIDs and ChildrenIDs reference other steps of the same roadmap by ID;
// the model is trusted to keep them consistent.
type CareerStep struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	PrerequisiteIDs []string   `json:"prerequisiteIds"`
	ChildrenIDs     []string   `json:"childrenIds"`
	Links           []LinkItem `json:"links,omitempty"`
}

// LinkItem is a labelled URL
type LinkItem struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// RootSteps returns the steps without prerequisites, in roadmap order.
// A roadmap may have zero, one or several entry points.
func RootSteps(steps []CareerStep) []CareerStep {
	var roots []CareerStep
	for _, step := range steps {
		if len(step.PrerequisiteIDs) == 0 {
			roots = append(roots, step)
		}
	}
	return roots
}

// DanglingReferences returns referenced step IDs that no step in the roadmap declares.
func DanglingReferences(steps []CareerStep) []string {
	known := make(map[string]bool, len(steps))
	for _, step := range steps {
		known[step.ID] = true
	}

	seen := make(map[string]bool)
	var dangling []string
	check := func(id string) {
		if !known[id] && !seen[id] {
			seen[id] = true
			dangling = append(dangling, id)
		}
	}
	for _, step := range steps {
		for _, id := range step.PrerequisiteIDs {
			check(id)
		}
		for _, id := range step.ChildrenIDs {
			check(id)
		}
	}
	return dangling
}
