package detection

// Registry remembers the clusters seen during one scan.
//
// The zero value is an empty registry ready to use. A Registry is not safe for concurrent use; parallel scans each own one.
type Registry struct {
	seen map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Register records c and reports whether it was new. The cluster is
// canonicalized first, so any cell order describing the same set matches.
func (r *Registry) Register(c Cluster) bool {
	key := NewCluster(c.cells).Signature()
	if r.seen == nil {
		r.seen = make(map[string]struct{})
	}
	if _, dup := r.seen[key]; dup {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}

// Len returns the number of distinct clusters registered.
func (r *Registry) Len() int {
	return len(r.seen)
}

// Reset forgets every registered cluster.
func (r *Registry) Reset() {
	clear(r.seen)
}
