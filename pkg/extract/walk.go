package extract

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/tree"
)

// DefaultMaxFileSize is the largest file Walk will parse.
const DefaultMaxFileSize = 2 << 20

// skippedDirs are never descended into.
var skippedDirs = []string{"__pycache__", "node_modules", "target", "vendor", "dist", "build"}

// Options configures [Walk] and [Manifest].
type Options struct {
	// Registry supplies extractors. Nil means [DefaultRegistry].
	Registry *Registry
	// Languages restricts extraction to these languages. Empty means all.
	Languages []string
	// IncludeOther lists unsupported files as plain file leaves.
	IncludeOther bool
	// KeepEmpty keeps directories that end up with no children.
	KeepEmpty bool
	// Exclude adds directory names to skip.
	Exclude []string
	// MaxFileSize overrides [DefaultMaxFileSize].
	MaxFileSize int64
}

type walker struct {
	opts     Options
	registry *Registry
	maxSize  int64
}

func newWalker(opts Options) (*walker, error) {
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	reg, err := reg.Restrict(opts.Languages)
	if err != nil {
		return nil, err
	}
	size := opts.MaxFileSize
	if size <= 0 {
		size = DefaultMaxFileSize
	}
	return &walker{opts: opts, registry: reg, maxSize: size}, nil
}

// Walk extracts the hierarchy rooted at root, which may be a directory or a
// single source file. Node IDs are slash-separated paths relative to root,
// with symbols appended after "#".
func Walk(ctx context.Context, root string, opts Options) (*tree.Node, error) {
	if err := errors.ValidatePath(root); err != nil {
		return nil, err
	}
	w, err := newWalker(opts)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", root)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "path %s does not exist", root)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", root)
	}

	if !info.IsDir() {
		if _, ok := w.registry.ForPath(abs); !ok {
			return nil, errors.New(errors.ErrCodeInvalidLanguage, "no extractor for %s", filepath.Base(abs))
		}
		n := w.file(abs, info.Name(), info.Size())
		assignIDs(n, info.Name())
		return n, nil
	}

	n, err := w.dir(ctx, abs, "", true)
	if err != nil {
		return nil, err
	}
	n.Label = filepath.Base(abs)
	return n, nil
}

func (w *walker) dir(ctx context.Context, abs, rel string, isRoot bool) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read directory %s", abs)
	}

	n := &tree.Node{ID: rel, Kind: tree.KindDirectory, Label: filepath.Base(abs)}
	if isRoot {
		n.Kind = tree.KindProject
	}

	for _, e := range entries {
		name := e.Name()
		childRel := path.Join(rel, name)
		childAbs := filepath.Join(abs, name)

		if isPackageMarker(name) && !isRoot {
			n.Kind = tree.KindPackage
		}

		if e.IsDir() {
			if w.skipDir(name) {
				continue
			}
			child, err := w.dir(ctx, childAbs, childRel, false)
			if err != nil {
				return nil, err
			}
			if child != nil {
				n.Children = append(n.Children, child)
			}
			continue
		}
		if !e.Type().IsRegular() || !w.wantFile(name, isRoot) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		child := w.file(childAbs, name, info.Size())
		assignIDs(child, childRel)
		n.Children = append(n.Children, child)
	}

	if !isRoot && len(n.Children) == 0 && !w.opts.KeepEmpty {
		return nil, nil
	}
	return n, nil
}

func (w *walker) skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(skippedDirs, name) || slices.Contains(w.opts.Exclude, name)
}

func (w *walker) wantFile(name string, atRoot bool) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	if name == "__init__.py" && !atRoot {
		return false
	}
	if _, ok := w.registry.ForPath(name); ok {
		return true
	}
	return w.opts.IncludeOther
}

// file extracts one file. Failures become error leaves.
func (w *walker) file(abs, name string, size int64) *tree.Node {
	ext, ok := w.registry.ForPath(abs)
	if !ok {
		return &tree.Node{Kind: tree.KindFile, Label: name}
	}
	if size > w.maxSize {
		return errorLeaf(name, "file too large to parse")
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return errorLeaf(name, err.Error())
	}
	mod, err := ext.Extract(abs, src)
	if err != nil {
		return errorLeaf(name, err.Error())
	}
	return mod
}

func errorLeaf(name, msg string) *tree.Node {
	return &tree.Node{Kind: tree.KindError, Label: name, Message: msg}
}

func isPackageMarker(name string) bool {
	switch name {
	case "__init__.py", "mod.rs", "index.ts", "index.tsx":
		return true
	}
	return strings.HasSuffix(name, ".go")
}

// assignIDs gives a file node and its symbols path-based IDs.
func assignIDs(n *tree.Node, rel string) {
	n.ID = rel
	for _, c := range n.Children {
		assignSymbolIDs(c, rel+"#"+c.Label)
	}
}

func assignSymbolIDs(n *tree.Node, id string) {
	n.ID = id
	for _, c := range n.Children {
		assignSymbolIDs(c, id+"."+c.Label)
	}
}

// Entry is one file that [Walk] would read.
type Entry struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Manifest lists the files Walk would visit for root, in visit order,
// without parsing them. It is cheap enough to fingerprint a tree for
// caching.
func Manifest(ctx context.Context, root string, opts Options) ([]Entry, error) {
	if err := errors.ValidatePath(root); err != nil {
		return nil, err
	}
	w, err := newWalker(opts)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", root)
	}

	var out []Entry
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "path %s does not exist", root)
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, _ := filepath.Rel(abs, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if p != abs && w.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		atRoot := p == abs || path.Dir(rel) == "."
		if !d.Type().IsRegular() || (p != abs && !w.wantFile(d.Name(), atRoot)) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		out = append(out, Entry{Path: rel, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
