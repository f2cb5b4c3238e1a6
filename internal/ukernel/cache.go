package ukernel

import "sync"

// Cache is a thread-safe descriptor -> Kernel cache (spec.md §4.9/§5): a
// single mutex-guarded map, touched only at region boundaries in the
// caller, never inside a hot inner loop. Entries are immutable once
// inserted and retained for the cache's lifetime.
type Cache struct {
	gen Generator

	mu      sync.Mutex
	kernels map[Descriptor]Kernel
}

// NewCache wraps gen with a concurrent get-or-create cache. A nil gen uses
// ScalarGenerator.
func NewCache(gen Generator) *Cache {
	if gen == nil {
		gen = ScalarGenerator{}
	}
	return &Cache{gen: gen, kernels: make(map[Descriptor]Kernel)}
}

// GetOrCreate returns the cached kernel for d, generating and storing one
// on first request. Concurrent calls with identical or distinct
// descriptors are safe; identical descriptors always return the same
// callable once generated.
func (c *Cache) GetOrCreate(d Descriptor) (Kernel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if k, ok := c.kernels[d]; ok {
		return k, nil
	}
	k, err := c.gen.Generate(d)
	if err != nil {
		return nil, err
	}
	c.kernels[d] = k
	return k, nil
}

// Len reports the number of distinct kernels generated so far. Exposed for
// tests verifying that repeated requests for the same descriptor collapse
// to a single generation.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.kernels)
}
