// Package arena provides a bulk-allocation, bulk-release container for
// the lifecycle-bearing nodes spec.md's §3 "Node arena" describes. The
// parser creates one arena per compilation; the evaluator and analyzer do
// not allocate from an arena, and there is no deep copy. Unlike
// the C++ original, individual node memory is still Go-GC'd; the arena's
// job is only to track which nodes belong to one pass so that the whole
// batch can be released together (and so its size is observable), not to
// hand-manage memory itself.
package arena

// Arena owns a batch of nodes allocated via Add. Nodes of any concrete
// type can share one Arena.
type Arena struct {
	pool []any
}

// New creates an empty Arena.
func New() *Arena {
	return &Arena{}
}

// Add allocates a new *T owned by the arena, copies v into it, and
// returns the stable pointer. Go generics don't support generic methods,
// so Add is a free function taking the arena explicitly.
func Add[T any](a *Arena, v T) *T {
	p := new(T)
	*p = v
	a.pool = append(a.pool, p)
	return p
}

// Release drops the arena's references to every node it owns, in one
// teardown, as spec.md §3 requires ("Arenas free all their nodes in one
// teardown"). Nodes already reachable from elsewhere in the program (e.g.
// still referenced by a caller) survive via Go's GC; Release only ends
// the arena's own bookkeeping.
func (a *Arena) Release() {
	a.pool = nil
}

// Len reports how many nodes the arena currently owns.
func (a *Arena) Len() int {
	return len(a.pool)
}
