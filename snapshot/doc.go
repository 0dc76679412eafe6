// Package snapshot persists and restores the resting book. Writers
// walk the ladders under an epoch-scoped reader so matching can keep
// recycling orders; loaders rebuild the book before WAL tail replay.
package snapshot
