package extract

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/tree"
)

// Language identifiers.
const (
	LanguagePython     = "python"
	LanguageGo         = "go"
	LanguageRust       = "rust"
	LanguageTypeScript = "typescript"
)

// Extractor parses one source file into a module node.
type Extractor interface {
	// Language returns the extractor's language identifier.
	Language() string
	// Supports reports whether the extractor handles the file at path.
	Supports(path string) bool
	// Extract parses src. The returned node is a module labelled with the
	// file's base name. A non-nil error means src could not be parsed.
	Extract(path string, src []byte) (*tree.Node, error)
}

// Registry holds extractors by language.
type Registry struct {
	order  []string
	byLang map[string]Extractor
}

// NewRegistry creates a registry holding exts.
func NewRegistry(exts ...Extractor) *Registry {
	r := &Registry{byLang: make(map[string]Extractor)}
	for _, e := range exts {
		r.Register(e)
	}
	return r
}

// DefaultRegistry returns a registry with every built-in extractor.
func DefaultRegistry() *Registry {
	return NewRegistry(Python{}, Go{}, Rust{}, TypeScript{})
}

// Register adds e, replacing an extractor for the same language.
func (r *Registry) Register(e Extractor) {
	lang := e.Language()
	if _, ok := r.byLang[lang]; !ok {
		r.order = append(r.order, lang)
	}
	r.byLang[lang] = e
}

// Lookup returns the extractor for a language.
func (r *Registry) Lookup(lang string) (Extractor, bool) {
	e, ok := r.byLang[strings.ToLower(lang)]
	return e, ok
}

// ForPath returns the first extractor that supports path.
func (r *Registry) ForPath(path string) (Extractor, bool) {
	for _, lang := range r.order {
		if e := r.byLang[lang]; e.Supports(path) {
			return e, true
		}
	}
	return nil, false
}

// Languages lists registered languages in registration order.
func (r *Registry) Languages() []string {
	return slices.Clone(r.order)
}

// Restrict returns a registry holding only the named languages.
func (r *Registry) Restrict(langs []string) (*Registry, error) {
	if len(langs) == 0 {
		return r, nil
	}
	out := NewRegistry()
	for _, lang := range langs {
		e, ok := r.Lookup(lang)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidLanguage, "unknown language %q (available: %s)", lang, strings.Join(r.order, ", "))
		}
		out.Register(e)
	}
	return out, nil
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(exts, ext)
}

func moduleNode(path string) *tree.Node {
	return &tree.Node{Kind: tree.KindModule, Label: filepath.Base(path)}
}
