// Package menu defines the numbered operations the tool exposes and runs
// the selected one end to end: snapshot, plan, optionally execute, report.
package menu

import "github.com/dockeep/pdftidy/internal/plan"

// Operation is one numbered menu entry. Every entry is a configuration over
// the same planner: dry-run vs apply, filename vs metadata target, full
// normalize vs cleanup-only. An apply operation runs the identical planner
// configuration its preview uses.
type Operation struct {
	ID    int
	Name  string
	Apply bool
	Mode  plan.Mode
	// Inventory marks the metadata inventory, which reports stored
	// metadata instead of planning changes.
	Inventory bool
	// ReadsMetadata is set when planning needs the document's current
	// metadata fields.
	ReadsMetadata bool
}

// Operations is the fixed menu, in display order.
var Operations = []Operation{
	{
		ID:        1,
		Name:      "Metadata inventory (dry run)",
		Inventory: true,
	},
	{
		ID:   2,
		Name: "Date cleanup preflight (dry run)",
		Mode: plan.Mode{Rename: true, RuleSet: plan.RuleNormalize},
	},
	{
		ID:    3,
		Name:  "Date cleanup (renames files)",
		Apply: true,
		Mode:  plan.Mode{Rename: true, RuleSet: plan.RuleNormalize},
	},
	{
		ID:    4,
		Name:  "Outlier cleanup (renames files)",
		Apply: true,
		Mode:  plan.Mode{Rename: true, RuleSet: plan.RuleCleanup},
	},
	{
		ID:            5,
		Name:          "Metadata write preview (dry run)",
		Mode:          plan.Mode{Metadata: true, RuleSet: plan.RuleNormalize},
		ReadsMetadata: true,
	},
	{
		ID:            6,
		Name:          "Metadata write (modifies documents)",
		Apply:         true,
		Mode:          plan.Mode{Metadata: true, RuleSet: plan.RuleNormalize},
		ReadsMetadata: true,
	},
	{
		ID:            7,
		Name:          "Metadata field cleanup (modifies documents)",
		Apply:         true,
		Mode:          plan.Mode{RuleSet: plan.RuleFieldClean},
		ReadsMetadata: true,
	},
}

// ByID returns the operation with the given menu number.
func ByID(id int) (Operation, bool) {
	for _, op := range Operations {
		if op.ID == id {
			return op, true
		}
	}
	return Operation{}, false
}
