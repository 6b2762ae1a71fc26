// Package pattern defines the presentation data types for conform's report.
// Patterns are pure data; renderers decide presentation.
package pattern

// PatternType identifies the kind of visualization pattern.
type PatternType string

const (
	PatternTypeSummary     PatternType = "summary"
	PatternTypeLeaderboard PatternType = "leaderboard"
	PatternTypeTestTable   PatternType = "test-table"
	PatternTypeTree        PatternType = "tree"
	PatternTypeMatrix      PatternType = "matrix"
)

// Pattern is the interface all visualization patterns implement.
type Pattern interface {
	Type() PatternType
}

// Status values shared by tree nodes and table items.
const (
	StatusPass      = "pass"
	StatusFail      = "fail"
	StatusUndefined = "undefined"
	StatusSkip      = "skip"
)
