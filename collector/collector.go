// Package collector implements the dense, deduplicating indexer the scene
// compiler uses to turn a graph of reachable scene items (materials,
// textures) into a flat, 0-based index space, and to detect whether that
// index space changed between two compile passes.
package collector

// Bundle is an immutable snapshot of a Collector's committed item order,
// kept around so a later compile pass can ask "did anything change since
// this snapshot".
type Bundle[T comparable] struct {
	items []T
}

// NumItems returns the number of items in the bundle.
func (b Bundle[T]) NumItems() int { return len(b.items) }

// Collector assigns a dense, 0-based index to each distinct item reachable
// from a set of roots, expanding dependencies with an explicit worklist
// rather than recursion so that cyclic references between items (e.g. two
// materials that reference each other through a layered blend) terminate
// instead of overflowing the stack. Identity is by Go value equality, which
// for the pointer types this package is instantiated with means pointer
// identity, not any address arithmetic.
type Collector[T comparable] struct {
	items []T
	index map[T]int32
}

// New returns an empty collector.
func New[T comparable]() *Collector[T] {
	return &Collector[T]{index: make(map[T]int32)}
}

// Clear discards all collected items, resetting the collector to empty.
func (c *Collector[T]) Clear() {
	c.items = c.items[:0]
	for k := range c.index {
		delete(c.index, k)
	}
}

// Collect walks roots and everything reachable from them via expand,
// assigning each distinct item the next free dense index in discovery
// order. Items already present from a prior Collect call (before the next
// Clear) keep their existing index; newly discovered items are appended.
// Calling Collect without a prior Clear lets a caller accumulate roots from
// several sources (e.g. one call per shape) into a single index space.
func (c *Collector[T]) Collect(roots []T, expand func(T) []T) {
	var worklist []T
	for _, r := range roots {
		if _, seen := c.index[r]; seen {
			continue
		}
		worklist = append(worklist, r)
		c.add(r)
		for len(worklist) > 0 {
			n := len(worklist) - 1
			item := worklist[n]
			worklist = worklist[:n]
			for _, dep := range expand(item) {
				if _, seen := c.index[dep]; seen {
					continue
				}
				c.add(dep)
				worklist = append(worklist, dep)
			}
		}
	}
}

func (c *Collector[T]) add(item T) {
	c.index[item] = int32(len(c.items))
	c.items = append(c.items, item)
}

// NumItems returns the number of distinct items collected so far.
func (c *Collector[T]) NumItems() int { return len(c.items) }

// IndexOf returns the dense index assigned to item, if it was collected.
func (c *Collector[T]) IndexOf(item T) (int32, bool) {
	idx, ok := c.index[item]
	return idx, ok
}

// Iterate calls fn once per collected item, in index order.
func (c *Collector[T]) Iterate(fn func(idx int32, item T)) {
	for idx, item := range c.items {
		fn(int32(idx), item)
	}
}

// CreateBundle snapshots the current item order.
func (c *Collector[T]) CreateBundle() Bundle[T] {
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Bundle[T]{items: items}
}

// NeedsUpdate reports whether the collector's current item set differs from
// prev (different count, different membership, or different order), or
// whether any currently collected item is itself dirty per isDirty. A scene
// whose material list is unchanged but whose one material had a texture
// input repointed still needs its material buffer rewritten, which is what
// the isDirty check catches that set comparison alone would miss.
func (c *Collector[T]) NeedsUpdate(prev Bundle[T], isDirty func(T) bool) bool {
	if len(prev.items) != len(c.items) {
		return true
	}
	for i, item := range c.items {
		if prev.items[i] != item {
			return true
		}
		if isDirty != nil && isDirty(item) {
			return true
		}
	}
	return false
}

// Finalize calls fn once per collected item, in index order, typically to
// clear each item's dirty flag once its data has been written out.
func (c *Collector[T]) Finalize(fn func(item T)) {
	for _, item := range c.items {
		fn(item)
	}
}
