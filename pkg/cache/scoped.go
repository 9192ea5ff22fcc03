package cache

// ScopedKeyer wraps a Keyer with a prefix, so entries produced under
// different scopes never collide in a shared backend. The CLI scopes
// layout keys by canvas geometry: the canvas dimensions shape every
// position in a layout but are engine config, not part of the input
// hash, so runs against different canvases must not share entries.
//
// Example usage:
//
//	// Per-canvas keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "c13.33x7.5:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key the
// inner keyer generates. A nil inner falls back to the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(inputHash, opts)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
