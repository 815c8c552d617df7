// Package gc implements NAAb's tracing garbage collector: a weak
// registry of every heap-allocated value, mark-and-sweep over explicit
// roots, and an allocation-count trigger.
//
// Go's own runtime already owns real memory safety; this package is the
// bookkeeping layer that `gc_collect`/`gc_stats` expose to scripts.
// "Sweep" here means "drop the weak registry's last handle to an
// unreachable object" so live counts and cycle-collection semantics are
// observable and testable, not that process memory is reclaimed early —
// ordinary Go values, once dropped from the registry and unreferenced
// elsewhere, are reclaimed by the Go runtime in the usual way.
package gc

import (
	"sync"
	"sync/atomic"

	"github.com/b-macker/NAAb-sub013/internal/value"
)

// DefaultThreshold is the default allocation count that triggers a
// collection cycle, overridable via NAAB_GC_THRESHOLD.
const DefaultThreshold = 1000

// RootProvider supplies the live roots at collection time: the current
// environment spine and globals, and any evaluator-local operand/return
// temporaries explicitly registered.
type RootProvider func() []value.Value

// Collector is the weak registry plus mark-and-sweep driver. Safe for
// concurrent use: the parallel scheduler's worker threads only touch
// Values through snapshots (internal/value.Environment.Snapshot), never
// the registry directly, so Register/MaybeCollect only need to guard
// against the evaluator's own allocation points racing a manual
// gc_collect() call.
type Collector struct {
	mu       sync.Mutex
	registry map[value.GCObject]struct{}

	allocCount atomic.Int64
	threshold  atomic.Int64

	roots []RootProvider
}

// New creates a Collector with the given trigger threshold (use
// DefaultThreshold, or NAAB_GC_THRESHOLD's parsed value, as the default).
func New(threshold int) *Collector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	c := &Collector{registry: make(map[value.GCObject]struct{})}
	c.threshold.Store(int64(threshold))
	return c
}

// AddRoot registers an additional source of GC roots (e.g. the
// evaluator's current environment spine, or its operand/return register).
func (c *Collector) AddRoot(p RootProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roots = append(c.roots, p)
}

// Register appends a newly allocated heap value to the weak registry and
// advances the allocation counter.
func (c *Collector) Register(obj value.GCObject) {
	c.mu.Lock()
	c.registry[obj] = struct{}{}
	c.mu.Unlock()
	c.allocCount.Add(1)
}

// MaybeCollect runs Collect if the allocation counter has reached the
// configured threshold. Called at allocation points by internal/eval;
// collection never preempts a running evaluation because it only ever
// runs synchronously from inside an allocation call, on the evaluator's
// own goroutine.
func (c *Collector) MaybeCollect() {
	if c.allocCount.Load() >= c.threshold.Load() {
		c.Collect()
	}
}

// Collect performs one mark-and-sweep cycle: every live object reachable
// from a root is marked; everything else is dropped from the registry.
//
// The traversal is iterative (an explicit worklist stack), not recursive,
// so it is stack-bounded for any finite graph including pathologically
// deep or cyclic structures.
func (c *Collector) Collect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	marked := make(map[value.GCObject]struct{}, len(c.registry))
	var stack []value.Value
	for _, p := range c.roots {
		stack = append(stack, p()...)
	}

	for len(stack) > 0 {
		n := len(stack) - 1
		v := stack[n]
		stack = stack[:n]

		obj, ok := v.(value.GCObject)
		if !ok || obj == nil {
			continue
		}
		if _, seen := marked[obj]; seen {
			continue
		}
		marked[obj] = struct{}{}
		stack = append(stack, obj.Children()...)
	}

	for obj := range c.registry {
		if _, live := marked[obj]; !live {
			delete(c.registry, obj)
		}
	}

	c.allocCount.Store(0)
}

// Stats is the set of counters `gc_stats()` exposes to scripts.
type Stats struct {
	LiveObjects     int
	AllocationCount int64
	Threshold       int64
}

// CollectStats returns the current registry size and allocation counter
// without forcing a collection.
func (c *Collector) CollectStats() Stats {
	c.mu.Lock()
	live := len(c.registry)
	c.mu.Unlock()
	return Stats{
		LiveObjects:     live,
		AllocationCount: c.allocCount.Load(),
		Threshold:       c.threshold.Load(),
	}
}

// SetThreshold overrides the collection trigger, e.g. from NAAB_GC_THRESHOLD.
func (c *Collector) SetThreshold(n int) {
	if n > 0 {
		c.threshold.Store(int64(n))
	}
}
