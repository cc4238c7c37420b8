// Package chaintable provides an in-memory associative container mapping
// byte-sequence keys to caller-owned values, built on separate chaining with
// load-factor driven doubling.
//
// # Ownership
//
// The table duplicates every key on insert and owns the copy for the entry's
// lifetime; the caller's buffer may be freed or reused immediately. Values
// are never owned: the table stores references and hands them back through
// Get, optionally passing them to a ValueReleaser when they leave the table.
//
// # Handles
//
// Growth reallocates the whole table rather than resizing in place. Set
// therefore returns the authoritative handle, and callers must adopt it:
//
//	tbl, _, err := tbl.Set(key, value, false, nil)
//
// A handle abandoned by a grow, or passed to Destroy, rejects further use
// with ErrInvalidArgument.
//
// # Seeding
//
// Bucket placement is keyed by a 32-bit seed captured at creation, by
// default the process-wide value managed by the hashseed package. Seed once
// during single-threaded startup:
//
//	hashseed.Set(0) // derive from clock and pid
//	tbl, err := chaintable.New(64, 4)
//
// Tests pass chaintable.WithSeed for deterministic placement instead.
//
// # Concurrency
//
// Tables are intentionally not thread-safe; see the Table documentation.
package chaintable
