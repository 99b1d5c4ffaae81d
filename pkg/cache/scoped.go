package cache

// ScopedKeyer prefixes every key of an inner Keyer. The server uses it to
// keep its entries apart from the CLI's when both share one backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SnapshotKey(sceneHash string, opts SnapshotKeyOpts) string {
	return k.prefix + k.inner.SnapshotKey(sceneHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(snapshotHash, opts)
}
