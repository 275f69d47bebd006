package arena

import "sync"

// Safe is a mutex-protected wrapper around Arena for concurrent access.
// All operations are serialized, so there is no parallelism, only safety.
type Safe struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafe creates a thread-safe arena from cfg (nil for DefaultConfig).
func NewSafe(cfg *Config) (*Safe, error) {
	a, err := New(cfg)
	if err != nil {
		return nil, err
	}
	a.callerSkip = 1
	return &Safe{a: a}, nil
}

// Alloc thread-safely reserves size bytes. See Arena.Alloc.
func (s *Safe) Alloc(size int) (Ref, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Alloc(size)
}

// Free thread-safely releases ref. See Arena.Free.
func (s *Safe) Free(ref Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Free(ref)
}

// Blocks thread-safely snapshots the block chain.
func (s *Safe) Blocks() []Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Blocks()
}

// Stats thread-safely snapshots the allocator statistics.
func (s *Safe) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Stats()
}

// Verify thread-safely checks the chain invariants.
func (s *Safe) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Verify()
}

// Reset thread-safely returns the arena to its untouched state.
func (s *Safe) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Close thread-safely releases the backing memory.
func (s *Safe) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Close()
}

// Capacity returns the arena size in bytes.
func (s *Safe) Capacity() int {
	return s.a.Capacity()
}
