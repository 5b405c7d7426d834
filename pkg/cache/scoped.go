package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or users
// can share one backend without seeing each other's entries.
//
// Example usage:
//
//	// Per-deployment keys in a shared Redis
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// DiagramKey generates a prefixed diagram key.
func (k *ScopedKeyer) DiagramKey(docHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(docHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
