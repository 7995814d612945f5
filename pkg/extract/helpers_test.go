package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bigpicture/pkg/tree"
)

// outline flattens a tree into "indent kind label" lines.
func outline(n *tree.Node) []string {
	var out []string
	tree.Walk(n, func(n *tree.Node, depth int) bool {
		out = append(out, strings.Repeat("  ", depth)+string(n.Kind)+" "+n.Label)
		return true
	})
	return out
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}
