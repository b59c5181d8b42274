package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "columnview:")
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

// LayeringKey generates a prefixed key for layering caching.
func (k *ScopedKeyer) LayeringKey(graphHash string) string {
	return k.prefix + k.inner.LayeringKey(graphHash)
}

// RenderKey generates a prefixed key for render caching.
func (k *ScopedKeyer) RenderKey(graphHash, format string) string {
	return k.prefix + k.inner.RenderKey(graphHash, format)
}
