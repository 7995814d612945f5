package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects or viewers
// can share one backend without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:shop:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TreeKey generates a prefixed key for extracted trees.
func (k *ScopedKeyer) TreeKey(sourceHash string, opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(sourceHash, opts)
}

// LayoutKey generates a prefixed key for geometry documents.
func (k *ScopedKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(treeHash, opts)
}

// ArtifactKey generates a prefixed key for rendered outputs.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
