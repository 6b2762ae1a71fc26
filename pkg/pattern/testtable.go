package pattern

// TestTable is a flat list of named items with a status, used for the
// skipped-files listing.
type TestTable struct {
	Label   string
	Results []TestTableItem
}

// TestTableItem is a single row.
type TestTableItem struct {
	Name    string
	Status  string // StatusPass, StatusFail, StatusUndefined, StatusSkip
	Details string
}

func (t *TestTable) Type() PatternType { return PatternTypeTestTable }
