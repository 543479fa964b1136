package cache

// ScopedKeyer wraps a Keyer with a prefix so several dashboards can share one
// backend without colliding.
//
// Example usage:
//
//	// Keys for the "ops" dashboard
//	opsKeyer := NewScopedKeyer(NewDefaultKeyer(), "dashboard:ops:")
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

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(overviewHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(overviewHash, opts)
}

// OverviewKey generates a prefixed overview key.
func (k *ScopedKeyer) OverviewKey(source string) string {
	return k.prefix + k.inner.OverviewKey(source)
}
