package mapper

import (
	"fmt"
	"strings"

	"github.com/dkoosis/conform/pkg/classify"
	"github.com/dkoosis/conform/pkg/sarif"
)

var ruleDescriptions = map[classify.Outcome]string{
	classify.FalsePositive: "Validator accepted an instance the suite marks invalid",
	classify.FalseNegative: "Validator rejected an instance the suite marks valid",
	classify.Undefined:     "Validator raised an unexpected error or the schema did not compile",
}

// RuleID returns the SARIF rule id for an outcome, e.g. "false-positive".
func RuleID(o classify.Outcome) string {
	return strings.ReplaceAll(strings.ToLower(string(o)), "_", "-")
}

// ToSARIF reports every non-passing vector as a SARIF result located in its
// corpus file. FALSE_* are errors, UNDEFINED is a warning.
func ToSARIF(files []classify.FileResult, toolName, toolVersion string) *sarif.Document {
	b := sarif.NewBuilder(toolName, toolVersion)
	for _, o := range classify.Failing {
		b.AddRule(RuleID(o), ruleDescriptions[o])
	}

	for _, f := range files {
		for _, c := range f.Cases {
			for _, v := range c.Vectors {
				if v.Outcome.Passing() {
					continue
				}
				level := "error"
				if v.Outcome == classify.Undefined {
					level = "warning"
				}
				logical := c.Description + " › " + v.Description
				msg := fmt.Sprintf("%s: %s", OutcomeLabel(v.Outcome), logical)
				if v.Err != nil {
					msg += " (" + v.Err.String() + ")"
				}
				b.AddResult(RuleID(v.Outcome), level, msg, f.Path, 0, logical)
			}
		}
	}
	return b.Document()
}
