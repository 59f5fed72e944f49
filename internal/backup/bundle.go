// Package backup implements the portable backup pipeline: a JSON bundle
// covering all collections, per-collection CSV files, and the validating
// import path that mirrors them back into storage.
package backup

// Version is the backup format version written into every bundle.
const Version = "1.0"

// Record is one loosely-typed row as it crosses the export/import boundary.
// Shape is enforced by ValidateItems, not by the type system.
type Record = map[string]any

// Collection names, in the fixed order imports are processed.
const (
	TypeProjects     = "projects"
	TypeTasks        = "tasks"
	TypeTransactions = "transactions"
	TypeSavings      = "savings"
	TypeLoans        = "loans"
	TypeRoadmaps     = "roadmaps"
)

// CollectionTypes lists the six collection names in processing order.
var CollectionTypes = []string{
	TypeProjects,
	TypeTasks,
	TypeTransactions,
	TypeSavings,
	TypeLoans,
	TypeRoadmaps,
}

// KnownType reports whether name is one of the six collections.
func KnownType(name string) bool {
	for _, t := range CollectionTypes {
		if t == name {
			return true
		}
	}
	return false
}

// Metadata describes one backup bundle.
type Metadata struct {
	ExportDate string `json:"exportDate"`
	Version    string `json:"version"`
	UserEmail  string `json:"userEmail,omitempty"`
}

// Bundle is the JSON backup artifact. Keys of Data are a subset of the six
// collection names; an absent collection means empty, never an error.
type Bundle struct {
	Metadata Metadata            `json:"metadata"`
	Data     map[string][]Record `json:"data"`
}
