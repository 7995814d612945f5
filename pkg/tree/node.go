package tree

import (
	"github.com/matzehuels/bigpicture/pkg/errors"
)

// Node is one entity of the structural tree.
type Node struct {
	// ID is an optional extractor-assigned identifier (for example a
	// relative path plus symbol). It is carried through to the layout but
	// box identity never depends on it.
	ID       string  `json:"id,omitempty" toml:"id,omitempty"`
	Kind     Kind    `json:"type" toml:"type"`
	Label    string  `json:"name" toml:"name"`
	Message  string  `json:"message,omitempty" toml:"message,omitempty"`
	Children []*Node `json:"children,omitempty" toml:"children,omitempty"`
}

// IsLeaf reports whether n has no children. Leaves cannot be collapsed.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits n and its descendants in preorder. Returning false from fn
// skips the subtree below the visited node.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	count := 0
	Walk(n, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Depth returns the number of levels below n (0 for a leaf).
func Depth(n *Node) int {
	deepest := 0
	Walk(n, func(_ *Node, d int) bool {
		deepest = max(deepest, d)
		return true
	})
	return deepest
}

// Validate rejects trees the layout engine cannot consume: a nil root, nil
// children, and nodes reachable through more than one parent (which would
// otherwise make the traversal revisit or loop).
func Validate(root *Node) error {
	if root == nil {
		return errors.New(errors.ErrCodeInvalidInput, "tree has no root")
	}
	seen := make(map[*Node]struct{})
	var visit func(n *Node, path string) error
	visit = func(n *Node, path string) error {
		if _, dup := seen[n]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "node %q at %s is reachable twice", n.Label, path)
		}
		seen[n] = struct{}{}
		for i, c := range n.Children {
			if c == nil {
				return errors.New(errors.ErrCodeInvalidInput, "nil child %d under %q", i, n.Label)
			}
			if err := visit(c, path+"/"+c.Label); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(root, root.Label)
}
