// Package service coordinates the matching core with durability,
// publication, and reclamation. All writes funnel through one
// OrderService so the book, the WAL, and the outbox stay consistent.
package service
