package cache

// ScopedKeyer prefixes every key from an inner Keyer, so several tenants or
// versions can share one backend without collisions:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ReportKey(graphHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(graphHash, opts)
}

func (k *ScopedKeyer) OrderingKey(graphHash, orderer string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.OrderingKey(graphHash, orderer, opts)
}
