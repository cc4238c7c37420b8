package hashseed

import (
	"os"
	"time"
)

// Process-wide hash seed shared by every table that does not capture its own
// seed at creation time. Default is 0 (never set), matching a process that
// skipped startup seeding.
var (
	seed    uint32
	adopted bool
)

// Set establishes the process-wide seed exactly once. A nonzero candidate is
// adopted as-is; a zero candidate asks for a derived seed combining the wall
// clock with the process id, which makes chain-flooding attacks that rely on
// a predictable hash function harder to mount.
//
// Every call after the first is a silent no-op: changing the seed mid-process
// would invalidate the bucket index of every entry in every live table.
//
// IMPORTANT:
// This function is **intentionally NOT thread-safe**. Call it once during
// single-threaded startup, before any table is created. Sharing it across
// goroutines will lead to undefined behavior.
func Set(candidate uint32) {
	if adopted {
		return
	}
	if candidate == 0 {
		candidate = derive()
	}
	seed = candidate
	adopted = true
}

// Value returns the process-wide seed, 0 when Set was never called.
func Value() uint32 {
	return seed
}

// derive XOR-combines seconds, sub-second ticks and the process id.
func derive() uint32 {
	now := time.Now()
	s := uint32(now.Unix()) ^ uint32(now.Nanosecond())
	s ^= uint32(os.Getpid())
	if s == 0 {
		// A zero result would read as "never seeded".
		s = 1
	}
	return s
}
