package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bigpicture/pkg/cache"
	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
)

const sampleTree = `{
  "name": "SuperApp",
  "type": "project",
  "children": [
    {"name": "auth.py", "type": "module", "children": [
      {"name": "Login", "type": "class", "children": [
        {"name": "submit", "type": "method"},
        {"name": "validate", "type": "method"}
      ]},
      {"name": "logout", "type": "function"}
    ]},
    {"name": "broken.py", "type": "error", "message": "invalid syntax (line 3)"}
  ]
}`

func writeTree(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tree.json")
	if err := os.WriteFile(p, []byte(sampleTree), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"app/__init__.py": "",
		"app/models.py":   "class User:\n    def save(self):\n        pass\n\ndef helper():\n    return 1\n",
		"main.go":         "package main\n\ntype Server struct{}\n\nfunc (s *Server) Run() {}\n\nfunc main() {}\n",
	}
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"html", false},
		{"json", false},
		{"dot", false},
		{"nodelink", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "html"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestFormatNamesHaveExtensions(t *testing.T) {
	for _, f := range FormatNames() {
		if Extensions[f] == "" {
			t.Errorf("format %q has no file extension", f)
		}
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no input", Options{}, errors.ErrCodeInvalidInput},
		{"both inputs", Options{Path: ".", TreeFile: "t.json"}, errors.ErrCodeInvalidInput},
		{"bad path", Options{Path: "a\x00b"}, errors.ErrCodeInvalidPath},
		{"bad format", Options{Path: ".", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad collapsed id", Options{Path: ".", Collapsed: []string{"box-1"}}, errors.ErrCodeInvalidTarget},
		{"bad query", Options{Path: ".", Query: strings.Repeat("x", errors.MaxQueryLength+1)}, errors.ErrCodeInvalidInput},
		{"bad config", Options{Path: ".", Config: layout.Config{Margin: 1}}, errors.ErrCodeInvalidConfig},
		{"negative scale", Options{Path: ".", Scale: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Path: "."}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Config != layout.DefaultConfig() {
		t.Errorf("Config = %+v, want defaults", opts.Config)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Title != DefaultTitle || opts.Scale != DefaultScale {
		t.Errorf("Title = %q, Scale = %v", opts.Title, opts.Scale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
}

func TestKeyOptsNormalize(t *testing.T) {
	a := Options{Languages: []string{"python", "go"}, Collapsed: []string{"node-1", "node-0", "node-1"}}
	b := Options{Languages: []string{"go", "python"}, Collapsed: []string{"node-0", "node-1"}}
	a.SetLayoutDefaults()
	b.SetLayoutDefaults()

	k := cache.NewDefaultKeyer()
	if k.TreeKey("s", a.TreeKeyOpts()) != k.TreeKey("s", b.TreeKeyOpts()) {
		t.Error("language order should not change the tree key")
	}
	la, _ := a.LayoutKeyOpts()
	lb, _ := b.LayoutKeyOpts()
	if k.LayoutKey("t", la) != k.LayoutKey("t", lb) {
		t.Error("collapsed order and duplicates should not change the layout key")
	}

	svg := a.ArtifactKeyOpts(FormatSVG)
	json := a.ArtifactKeyOpts(FormatJSON)
	a.Query = "save"
	if a.ArtifactKeyOpts(FormatSVG) == svg {
		t.Error("query should change the svg key")
	}
	if a.ArtifactKeyOpts(FormatJSON) != json {
		t.Error("query should not change the json key")
	}
}

func TestExecuteTreeFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), Options{
		TreeFile: writeTree(t),
		Formats:  []string{FormatSVG, FormatJSON, FormatHTML, FormatDOT},
		Query:    "submit",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.NodeCount != 7 || res.Stats.BoxCount != 7 {
		t.Errorf("NodeCount = %d, BoxCount = %d, want 7", res.Stats.NodeCount, res.Stats.BoxCount)
	}
	if res.TreeHash == "" {
		t.Error("TreeHash should be set")
	}
	for _, f := range []string{FormatSVG, FormatJSON, FormatHTML, FormatDOT} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte("match")) {
		t.Error("svg should highlight the search match")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatDOT], []byte("digraph")) {
		t.Errorf("dot output = %.40q", res.Artifacts[FormatDOT])
	}
}

func TestExecuteSourcePath(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), Options{Path: writeProject(t)})
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	res.Layout.Walk(func(b *layout.Box) bool {
		labels = append(labels, b.Label.Text)
		return true
	})
	for _, want := range []string{"User", "save", "helper", "Server", "Run"} {
		found := false
		for _, l := range labels {
			found = found || l == want
		}
		if !found {
			t.Errorf("layout is missing %q (have %v)", want, labels)
		}
	}
}

func TestExecuteCollapseAll(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), Options{TreeFile: writeTree(t), CollapseAll: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Layout.Root().Collapsed {
		t.Error("root should be collapsed")
	}
	if got, want := res.Layout.Height(), layout.DefaultConfig().HeaderHeight; got != want {
		t.Errorf("Height = %v, want %v", got, want)
	}
}

func TestExecuteCollapsedIDs(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), Options{
		TreeFile:  writeTree(t),
		Collapsed: []string{"node-0"},
	})
	if err != nil {
		t.Fatal(err)
	}
	b, ok := res.Layout.Box("node-0")
	if !ok || !b.Collapsed {
		t.Fatalf("node-0 should be collapsed")
	}
}

func TestRunnerCacheHits(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{Path: writeProject(t), Formats: []string{FormatSVG, FormatJSON}}
	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ExtractHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.ExtractHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}

	// A cached layout must still be toggleable.
	if err := second.Layout.Toggle(layout.RootID); err != nil {
		t.Errorf("Toggle on cached layout: %v", err)
	}

	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.ExtractHit {
		t.Error("refresh should bypass the tree cache")
	}
}

func TestFingerprintChangesWithSources(t *testing.T) {
	dir := writeProject(t)
	ctx := context.Background()
	opts := Options{Path: dir}

	before, err := Fingerprint(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "extra.py"), []byte("def f():\n    pass\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	after, err := Fingerprint(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if before == after {
		t.Error("adding a file should change the fingerprint")
	}
}

func TestExtractMissingPath(t *testing.T) {
	_, err := Extract(context.Background(), Options{Path: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}
