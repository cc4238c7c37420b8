package chaintable

import (
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/on-the-ground/chaintable_go/hashseed"
	"github.com/on-the-ground/chaintable_go/internal/keyhash"
)

const (
	// GrowthFactor is the fixed capacity multiplier applied on every grow.
	GrowthFactor = 2

	// MaxKeyLen is the advisory maximum key length in bytes. The engine does
	// not reject longer keys; it hashes and compares whatever length it is
	// given. Callers are responsible for respecting this bound.
	MaxKeyLen = 32
)

// SetResult reports what a successful Set did.
type SetResult int

const (
	// Inserted means a new entry was created.
	Inserted SetResult = iota + 1
	// Overwritten means an existing entry had its value replaced.
	Overwritten
)

func (r SetResult) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case Overwritten:
		return "overwritten"
	default:
		return "none"
	}
}

// ValueReleaser releases a caller-owned value reference that is leaving the
// table (overwrite, removal, destruction). The table itself never takes
// ownership of values, so a nil releaser simply leaves them untouched.
type ValueReleaser func(value any) error

// Table maps byte-sequence keys to caller-owned values using separate
// chaining and load-factor driven doubling. It owns its bucket array, every
// chain entry reachable from it, and the key copies inside those entries; it
// does not own the stored values.
//
// IMPORTANT:
// A Table is **intentionally NOT thread-safe**. There is no internal locking
// and no atomic update; concurrent mutation, or mutation concurrent with
// reads, is undefined behavior. Callers needing shared access must wrap the
// table in their own mutual-exclusion discipline.
//
// Growth reallocates the whole table rather than resizing in place, so every
// mutating call returns the authoritative (possibly new) handle and callers
// must adopt it. A handle left behind by a grow, or passed to Destroy,
// rejects further use with ErrInvalidArgument.
type Table struct {
	id         string
	generation int

	seed    uint32
	maxLoad int

	size    int
	buckets []*bucket

	logger   *zap.Logger
	grows    int
	lastGrow timespan.TimeSpan
}

// New allocates a table with initialCapacity empty bucket slots and zero
// entries. Growth triggers once size/capacity (integer division) reaches
// maxLoadFactor. The hash seed is captured from hashseed.Value at creation
// unless WithSeed overrides it.
func New(initialCapacity, maxLoadFactor int, opts ...Option) (*Table, error) {
	if initialCapacity < 1 || maxLoadFactor < 1 {
		return nil, ErrInvalidArgument
	}

	t := &Table{
		id:      uuid.NewString(),
		seed:    hashseed.Value(),
		maxLoad: maxLoadFactor,
		buckets: make([]*bucket, initialCapacity),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.logger.Debug("table created",
		zap.String("table_id", t.id),
		zap.Int("capacity", initialCapacity),
		zap.Int("max_load_factor", maxLoadFactor),
	)
	return t, nil
}

func (t *Table) index(key []byte) int {
	return int(keyhash.Sum(t.seed, key) % uint64(len(t.buckets)))
}

func (t *Table) usable() bool {
	return t != nil && t.buckets != nil
}

// Set binds key to value and returns the authoritative handle alongside what
// happened. The key bytes are copied; the caller's buffer may be reused
// immediately after the call.
//
// When the key is already present and replace is false, Set fails with
// ErrKeyExists and the table is unmodified. With replace true, the old value
// is handed to release (when non-nil) and the entry's value reference is
// overwritten.
//
// A successful Set evaluates the load factor and may grow the table. Growth
// failure surfaces as ErrAllocation with the returned handle still valid and
// the insert retained. A non-nil release error never undoes the mutation; it
// is reported alongside the result.
func (t *Table) Set(key []byte, value any, replace bool, release ValueReleaser) (*Table, SetResult, error) {
	if !t.usable() || key == nil {
		return t, 0, ErrInvalidArgument
	}

	idx := t.index(key)
	b := t.buckets[idx]
	if b == nil {
		b = &bucket{}
		t.buckets[idx] = b
	}

	result := Inserted
	var relErr error
	if e := b.find(key); e != nil {
		if !replace {
			return t, 0, ErrKeyExists
		}
		if release != nil {
			relErr = release(e.value)
		}
		e.value = value
		result = Overwritten
	} else {
		b.append(newEntry(key, value))
		t.size++
	}

	if t.size/len(t.buckets) >= t.maxLoad {
		grown, err := t.grow()
		if err != nil {
			return t, result, multierr.Append(relErr, err)
		}
		return grown, result, relErr
	}
	return t, result, relErr
}

// grow allocates a doubled bucket array and relocates every entry under the
// new capacity. Entries are moved, never duplicated: the same entry (and its
// key buffer) is relinked into the new layout. The old handle is severed so
// stale aliases fail with ErrInvalidArgument instead of reading a drained
// table.
func (t *Table) grow() (*Table, error) {
	oldCap := len(t.buckets)
	newCap := oldCap * GrowthFactor
	if newCap <= oldCap {
		return nil, ErrAllocation
	}

	start := time.Now()
	next := &Table{
		id:         t.id,
		generation: t.generation + 1,
		seed:       t.seed,
		maxLoad:    t.maxLoad,
		size:       t.size,
		buckets:    make([]*bucket, newCap),
		logger:     t.logger,
		grows:      t.grows + 1,
	}

	for i, b := range t.buckets {
		if b == nil {
			continue
		}
		for e := b.head; e != nil; {
			after := e.next
			idx := next.index(e.key)
			nb := next.buckets[idx]
			if nb == nil {
				nb = &bucket{}
				next.buckets[idx] = nb
			}
			nb.append(e)
			e = after
		}
		t.buckets[i] = nil
	}
	t.buckets = nil
	next.lastGrow = timespan.BetweenTimes(start, time.Now())

	next.logger.Debug("table grown",
		zap.String("table_id", next.id),
		zap.Int("generation", next.generation),
		zap.Int("old_capacity", oldCap),
		zap.Int("new_capacity", newCap),
		zap.Int("size", next.size),
	)
	return next, nil
}

func (t *Table) find(key []byte) (*entry, error) {
	if !t.usable() || key == nil {
		return nil, ErrInvalidArgument
	}
	b := t.buckets[t.index(key)]
	if b == nil {
		return nil, ErrKeyNotFound
	}
	e := b.find(key)
	if e == nil {
		return nil, ErrKeyNotFound
	}
	return e, nil
}

// Get returns the value reference bound to key, or ErrKeyNotFound.
func (t *Table) Get(key []byte) (any, error) {
	e, err := t.find(key)
	if err != nil {
		return nil, err
	}
	return e.value, nil
}

// Exists reports whether key is bound in the table.
func (t *Table) Exists(key []byte) bool {
	_, err := t.find(key)
	return err == nil
}

// Remove unlinks the entry bound to key, hands its value to release (when
// non-nil) and drops the owned key copy. Fails with ErrKeyNotFound when the
// chain end is reached without a match. A release error is reported after
// the removal has already taken effect.
func (t *Table) Remove(key []byte, release ValueReleaser) error {
	if !t.usable() || key == nil {
		return ErrInvalidArgument
	}
	b := t.buckets[t.index(key)]
	if b == nil {
		return ErrKeyNotFound
	}

	e := b.unlink(key)
	if e == nil {
		return ErrKeyNotFound
	}
	t.size--

	var relErr error
	if release != nil {
		relErr = release(e.value)
	}
	e.key = nil
	e.value = nil
	return relErr
}

// Destroy walks every chain, hands each value to release (when non-nil),
// severs every entry and bucket, and leaves the handle unusable. Releaser
// errors are aggregated and returned once the walk completes. Without a
// releaser, values are left untouched: the table never owned them, so any
// leak is the caller's to manage.
func (t *Table) Destroy(release ValueReleaser) error {
	if !t.usable() {
		return ErrInvalidArgument
	}

	var err error
	for i, b := range t.buckets {
		if b == nil {
			continue
		}
		for e := b.head; e != nil; {
			after := e.next
			if release != nil {
				err = multierr.Append(err, release(e.value))
			}
			e.next = nil
			e.key = nil
			e.value = nil
			e = after
		}
		b.head, b.tail, b.length = nil, nil, 0
		t.buckets[i] = nil
	}

	t.logger.Debug("table destroyed",
		zap.String("table_id", t.id),
		zap.Int("released_entries", t.size),
	)
	t.buckets = nil
	t.size = 0
	return err
}

// Len returns the number of occupied entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Capacity returns the bucket slot count, 0 once the handle was destroyed or
// replaced by a grow.
func (t *Table) Capacity() int {
	if t == nil {
		return 0
	}
	return len(t.buckets)
}
