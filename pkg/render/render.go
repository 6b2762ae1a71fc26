// Package render turns report patterns into text for terminals, agents,
// tooling and tables.
package render

import "github.com/dkoosis/conform/pkg/pattern"

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}

// detailLines caps how many lines of a node's details are printed.
const detailLines = 3
