package sarif

import (
	"encoding/json"
	"io"
)

const schemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"

// Builder constructs SARIF 2.1.0 documents with a single run.
type Builder struct {
	doc *Document
}

// NewBuilder creates a SARIF builder for the given tool.
func NewBuilder(toolName, toolVersion string) *Builder {
	return &Builder{
		doc: &Document{
			Version: "2.1.0",
			Schema:  schemaURI,
			Runs: []Run{{
				Tool:    Tool{Driver: Driver{Name: toolName, Version: toolVersion}},
				Results: []Result{},
			}},
		},
	}
}

// AddRule declares a rule once; repeated IDs are ignored.
func (b *Builder) AddRule(id, description string) *Builder {
	run := &b.doc.Runs[0]
	for _, r := range run.Tool.Driver.Rules {
		if r.ID == id {
			return b
		}
	}
	run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, Rule{ID: id, ShortDescription: Message{Text: description}})
	return b
}

// AddResult adds a finding located in file at the logical path. line <= 0
// omits the region.
func (b *Builder) AddResult(ruleID, level, message, file string, line int, logical string) *Builder {
	r := Result{
		RuleID:  ruleID,
		Level:   level,
		Message: Message{Text: message},
	}
	if file != "" {
		loc := Location{PhysicalLocation: PhysicalLocation{ArtifactLocation: ArtifactLocation{URI: file}}}
		if line > 0 {
			loc.PhysicalLocation.Region = &Region{StartLine: line}
		}
		if logical != "" {
			loc.LogicalLocations = []LogicalLocation{{FullyQualifiedName: logical}}
		}
		r.Locations = []Location{loc}
	}
	b.doc.Runs[0].Results = append(b.doc.Runs[0].Results, r)
	return b
}

// Document returns the constructed SARIF document.
func (b *Builder) Document() *Document {
	return b.doc
}

// WriteTo writes the SARIF document as indented JSON to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	return b.doc.WriteTo(w)
}

// WriteTo writes d as indented JSON to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}
