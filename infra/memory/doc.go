// Package memory provides the allocation side of the engine: a typed
// object pool, a retire ring for objects leaving the book, and the
// epoch clock that decides when a retired object is safe to reuse
// while snapshot readers are active.
package memory
