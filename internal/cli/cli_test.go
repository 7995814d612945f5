package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "html", []string{"html"}},
		{"multiple formats", "svg,json,dot", []string{"svg", "json", "dot"}},
		{"spaces trimmed", " svg , png ", []string{"svg", "png"}},
		{"empty entries dropped", "svg,,pdf,", []string{"svg", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("no path gives defaults", func(t *testing.T) {
		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("loadConfig() error: %v", err)
		}
		if cfg != layout.DefaultConfig() {
			t.Errorf("loadConfig(\"\") = %+v, want defaults", cfg)
		}
	})

	t.Run("overrides keep other defaults", func(t *testing.T) {
		path := write("ok.toml", "[layout]\npadding = 20\nnested_row_width = 900\n")
		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig() error: %v", err)
		}
		want := layout.DefaultConfig()
		want.Padding = 20
		want.NestedRowWidth = 900
		if cfg != want {
			t.Errorf("loadConfig() = %+v, want %+v", cfg, want)
		}
	})

	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[layout]\npaddng = 20\n"},
		{"malformed", "[layout\n"},
		{"invalid value", "[layout]\npadding = -1\n"},
		{"nan width", "[layout]\nmin_leaf_width = nan\nmax_leaf_width = inf\n"},
		{"inf margin", "[layout]\nmargin = -inf\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(write(tt.name+".toml", tt.content))
			if got := errors.GetCode(err); got != errors.ErrCodeInvalidConfig {
				t.Errorf("loadConfig() code = %q, want %q (err %v)", got, errors.ErrCodeInvalidConfig, err)
			}
		})
	}
}

func TestClassifyInput(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"shop.tree.json":   `{"name": "shop", "kind": "project"}`,
		"shop.toml":        "name = \"shop\"\n",
		"shop.layout.json": `{"version": 1, "root": {}}`,
		"main.py":          "def main():\n    pass\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		path string
		want inputKind
	}{
		{dir, inputSource},
		{filepath.Join(dir, "main.py"), inputSource},
		{filepath.Join(dir, "shop.tree.json"), inputTree},
		{filepath.Join(dir, "shop.toml"), inputTree},
		{filepath.Join(dir, "shop.layout.json"), inputGeometry},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			got, err := classifyInput(tt.path)
			if err != nil {
				t.Fatalf("classifyInput() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("classifyInput() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("missing", func(t *testing.T) {
		_, err := classifyInput(filepath.Join(dir, "nope"))
		if got := errors.GetCode(err); got != errors.ErrCodeFileNotFound {
			t.Errorf("code = %q, want %q", got, errors.ErrCodeFileNotFound)
		}
	})
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"layout from tree", layoutOutputPath("out/shop.tree.json"), "out/shop.layout.json"},
		{"layout from toml", layoutOutputPath("shop.toml"), "shop.layout.json"},
		{"base from tree", basePath("", "out/shop.tree.json"), "shop"},
		{"base strips extension", basePath("diagram.svg", "x"), "diagram"},
		{"base strips nodelink", basePath("diagram.nodelink.svg", "x"), "diagram"},
		{"base keeps plain output", basePath("out/diagram", "x"), "out/diagram"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		noun string
		want string
	}{
		{1, "box", "1 box"},
		{3, "box", "3 boxes"},
		{0, "node", "0 nodes"},
		{2, "match", "2 matches"},
		{4, "cached entry", "4 cached entries"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, tt.noun); got != tt.want {
			t.Errorf("plural(%d, %q) = %q, want %q", tt.n, tt.noun, got, tt.want)
		}
	}
}
