package pattern

import (
	"strings"
	"testing"
)

func TestTree_WalkDepthFirst(t *testing.T) {
	tree := &Tree{Roots: []TreeNode{
		{Name: "a.json", Children: []TreeNode{
			{Name: "case 1", Children: []TreeNode{{Name: "v1"}, {Name: "v2"}}},
		}},
		{Name: "b.json"},
	}}

	var got []string
	tree.Walk(func(n *TreeNode, depth int) {
		got = append(got, strings.Repeat(">", depth)+n.Name)
	})

	want := "a.json,>case 1,>>v1,>>v2,b.json"
	if strings.Join(got, ",") != want {
		t.Errorf("walk order = %v, want %s", got, want)
	}
}

func TestPatternTypes(t *testing.T) {
	cases := map[PatternType]Pattern{
		PatternTypeSummary:     &Summary{},
		PatternTypeLeaderboard: &Leaderboard{},
		PatternTypeTestTable:   &TestTable{},
		PatternTypeTree:        &Tree{},
		PatternTypeMatrix:      &Matrix{},
	}
	for want, p := range cases {
		if p.Type() != want {
			t.Errorf("%T.Type() = %q, want %q", p, p.Type(), want)
		}
	}
}
