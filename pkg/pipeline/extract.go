package pipeline

import (
	"context"
	"path/filepath"

	"github.com/matzehuels/bigpicture/pkg/cache"
	"github.com/matzehuels/bigpicture/pkg/extract"
	"github.com/matzehuels/bigpicture/pkg/tree"
)

// Extract builds the hierarchy described by opts without caching. A tree
// file is read as is; a source path is walked by the registered extractors.
func Extract(ctx context.Context, opts Options) (*tree.Node, error) {
	if err := opts.ValidateForExtract(); err != nil {
		return nil, err
	}
	if opts.TreeFile != "" {
		opts.Logger.Debug("reading tree file", "path", opts.TreeFile)
		return tree.ReadFile(opts.TreeFile)
	}

	opts.Logger.Debug("walking sources", "path", opts.Path, "languages", opts.Languages)
	return extract.Walk(ctx, opts.Path, opts.extractOptions())
}

// Fingerprint hashes the file listing (path, size and modification time)
// that extraction would read. Any edit, addition or removal changes it.
func Fingerprint(ctx context.Context, opts Options) (string, error) {
	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return "", err
	}
	entries, err := extract.Manifest(ctx, opts.Path, opts.extractOptions())
	if err != nil {
		return "", err
	}
	return cache.HashJSON(struct {
		Root    string          `json:"root"`
		Entries []extract.Entry `json:"entries"`
	}{abs, entries})
}

func (o *Options) extractOptions() extract.Options {
	return extract.Options{
		Languages:    o.Languages,
		IncludeOther: o.IncludeOther,
		KeepEmpty:    o.KeepEmpty,
		Exclude:      o.Exclude,
	}
}
