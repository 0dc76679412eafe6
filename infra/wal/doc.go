// Package wal is the entry write-ahead log: a segmented, CRC-framed,
// append-only record of every command accepted by the engine. Because
// matching is deterministic, replaying the log reproduces the exact
// book state and trade sequence.
package wal
