package memory

import "sync"

// Pool is a typed object pool for engine entities. Callers fully
// initialize objects on Get, so nothing is cleared here beyond what
// Put receives.
type Pool[T any] struct {
	p sync.Pool
}

func NewPool[T any](ctor func() *T) *Pool[T] {
	pool := &Pool[T]{}
	pool.p.New = func() any { return ctor() }
	return pool
}

func (p *Pool[T]) Get() *T {
	return p.p.Get().(*T)
}

func (p *Pool[T]) Put(v *T) {
	p.p.Put(v)
}
