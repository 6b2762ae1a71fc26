package pattern

// SummaryKind identifies what a summary describes, for renderer dispatch.
type SummaryKind string

const (
	SummaryKindRun    SummaryKind = "run"    // end-of-run totals
	SummaryKindRollup SummaryKind = "rollup" // file/case level rollups
)

// Summary represents high-level metrics and counts.
type Summary struct {
	Label   string
	Kind    SummaryKind
	Failed  bool
	Metrics []SummaryItem
}

// SummaryItem is a single metric in a summary.
type SummaryItem struct {
	Label   string // e.g. "False Positive", "Failures"
	Value   string // formatted count, e.g. "3/120"
	Percent string // formatted percentage, e.g. "2.5%"; empty when not applicable
	Kind    string // "success", "error", "warning" or "info"; drives coloring
	Total   bool   // subtotal row
}

func (s *Summary) Type() PatternType { return PatternTypeSummary }
