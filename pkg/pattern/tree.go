package pattern

// Tree is a nested file → case → vector report.
type Tree struct {
	Label string
	Roots []TreeNode
}

// TreeNode is one line of the tree. Container nodes carry the worst status
// of their children.
type TreeNode struct {
	Name     string
	Status   string // StatusPass, StatusFail, StatusUndefined
	Note     string // outcome name for leaves, count summary for containers
	Details  string // error text, may span lines
	Children []TreeNode
}

func (t *Tree) Type() PatternType { return PatternTypeTree }

// Walk visits every node depth-first with its depth (roots are depth 0).
func (t *Tree) Walk(fn func(n *TreeNode, depth int)) {
	for i := range t.Roots {
		walk(&t.Roots[i], 0, fn)
	}
}

func walk(n *TreeNode, depth int, fn func(*TreeNode, int)) {
	fn(n, depth)
	for i := range n.Children {
		walk(&n.Children[i], depth+1, fn)
	}
}
