package client

import "github.com/sndkit/synthlink/idalloc"

// SyncAllocator names the dedicated allocator Sync draws barrier tokens
// from.
const SyncAllocator = "sync"

// syncTokenSpace bounds the barrier tokens in flight; tokens recycle fast
// so a small space suffices.
const syncTokenSpace = 1024

// State mirrors the server-relevant resources the client manages locally:
// a container of named id allocators. The State is owned by the caller
// and installed into a Conn at construction; register allocators before
// handing it over, afterwards the Conn's state lock serializes every
// access.
type State struct {
	allocators map[string]idalloc.Allocator[int32]
}

// NewState returns a State preloaded with the sync-token allocator.
// Callers add further allocators (node ids, buffer numbers, bus indexes)
// as the engine's address spaces require.
func NewState() *State {
	s := &State{allocators: make(map[string]idalloc.Allocator[int32])}
	s.SetAllocator(SyncAllocator, idalloc.NewSimple(idalloc.Sized[int32](syncTokenSpace, 0)))
	return s
}

// SetAllocator installs a under name, replacing any previous instance.
func (s *State) SetAllocator(name string, a idalloc.Allocator[int32]) {
	s.allocators[name] = a
}

// WithAllocator runs f against the named allocator while holding the
// connection's state lock, so concurrent callers never observe a partial
// update. f must not block or call back into the Conn.
func WithAllocator[T any](c *Conn, name string, f func(idalloc.Allocator[int32]) (T, error)) (T, error) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	a, ok := c.state.allocators[name]
	if !ok {
		var zero T
		return zero, ErrAllocatorNotFound
	}
	return f(a)
}

// Alloc issues one id from the named allocator.
func (c *Conn) Alloc(name string) (int32, error) {
	return WithAllocator(c, name, func(a idalloc.Allocator[int32]) (int32, error) {
		return a.Alloc()
	})
}

// Free releases one id back to the named allocator.
func (c *Conn) Free(name string, id int32) error {
	_, err := WithAllocator(c, name, func(a idalloc.Allocator[int32]) (struct{}, error) {
		return struct{}{}, a.Free(id)
	})
	return err
}

// AllocatorStats reports usage counters of the named allocator.
func (c *Conn) AllocatorStats(name string) (idalloc.Statistics, error) {
	return WithAllocator(c, name, func(a idalloc.Allocator[int32]) (idalloc.Statistics, error) {
		return a.Stats(), nil
	})
}
