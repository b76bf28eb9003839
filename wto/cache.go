package wto

import (
	"github.com/go-sparta/sparta/cache"
)

// Cache memoizes Compute against a fixed graph, keyed by root node —
// an interprocedural fixpoint solver may ask for the same procedure's
// ordering many times across an analysis run, and recomputing the DFS
// from scratch every time is wasted work once the graph is known
// immutable for the cache's lifetime.
type Cache[N comparable] struct {
	graph Graph[N]
	lru   *cache.LRU
}

// NewCache returns a Cache of orderings over g, holding up to maxSize
// entries (cache.NewLRU raises a maxSize below 16 to 16).
func NewCache[N comparable](g Graph[N], maxSize int) *Cache[N] {
	return &Cache[N]{graph: g, lru: cache.NewLRU(maxSize)}
}

// Compute returns the weak topological ordering rooted at root,
// computing and caching it on first request.
func (c *Cache[N]) Compute(root N) Ordering[N] {
	v, _ := c.lru.GetOrLoad(root, func(key interface{}) (interface{}, error) {
		return Compute(key.(N), c.graph), nil
	})
	return v.(Ordering[N])
}
