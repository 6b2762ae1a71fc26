package mapper

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dkoosis/conform/pkg/classify"
	"github.com/dkoosis/conform/pkg/testjson"
)

// ToTestEvents renders results as a go test -json stream: one package per
// corpus file, one test per case and one subtest per vector. Non-passing
// vectors fail with their outcome and error as output. Descriptions need not
// be unique, so names are made unique per file and per case.
func ToTestEvents(files []classify.FileResult, pkgPrefix string, now time.Time) []testjson.TestEvent {
	var events []testjson.TestEvent
	for _, f := range files {
		pkg := path.Join(pkgPrefix, strings.TrimSuffix(f.Name, ".json"))
		events = append(events, testjson.TestEvent{Time: now, Action: testjson.ActionStart, Package: pkg})

		var caseNames testjson.Namer
		for _, c := range f.Cases {
			caseName := caseNames.Unique(testjson.TestName(c.Description))
			events = append(events, testjson.TestEvent{Time: now, Action: testjson.ActionRun, Package: pkg, Test: caseName})

			var vectorNames testjson.Namer
			for _, v := range c.Vectors {
				name := caseName + "/" + vectorNames.Unique(testjson.TestName(v.Description))
				events = append(events, testjson.TestEvent{Time: now, Action: testjson.ActionRun, Package: pkg, Test: name})
				action := testjson.ActionPass
				if !v.Outcome.Passing() {
					action = testjson.ActionFail
					out := fmt.Sprintf("    %s: %s\n", f.Name, v.Outcome)
					if v.Err != nil {
						out += "        " + v.Err.String() + "\n"
					}
					events = append(events, testjson.TestEvent{Time: now, Action: testjson.ActionOutput, Package: pkg, Test: name, Output: out})
				}
				events = append(events, testjson.TestEvent{Time: now, Action: action, Package: pkg, Test: name})
			}

			caseAction := testjson.ActionPass
			if c.Status() != classify.StatusPass {
				caseAction = testjson.ActionFail
			}
			events = append(events, testjson.TestEvent{Time: now, Action: caseAction, Package: pkg, Test: caseName})
		}

		pkgAction := testjson.ActionPass
		if f.Status() != classify.StatusPass {
			pkgAction = testjson.ActionFail
		}
		events = append(events, testjson.TestEvent{Time: now, Action: pkgAction, Package: pkg})
	}
	return events
}
