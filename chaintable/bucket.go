package chaintable

import "bytes"

// entry is one key-value binding. The key is an owned copy made on insert; the
// value is a caller-owned reference the table never dereferences.
type entry struct {
	next  *entry
	key   []byte
	value any
}

func newEntry(key []byte, value any) *entry {
	return &entry{
		key:   append([]byte(nil), key...),
		value: value,
	}
}

// bucket is a singly-linked chain of entries sharing one index. Head and tail
// give O(1) append. The collided marker records whether the chain has ever
// held more than one entry; it is diagnostic data only and must never be used
// to skip key comparison (see find).
type bucket struct {
	head     *entry
	tail     *entry
	length   int
	collided bool
}

func (b *bucket) append(e *entry) {
	e.next = nil
	if b.tail != nil {
		b.tail.next = e
	}
	b.tail = e
	if b.head == nil {
		b.head = e
	}

	b.length++
	if b.length > 1 {
		b.collided = true
	}
}

// find scans the whole chain comparing both key length and key bytes against
// every entry. There is no shortcut for never-collided buckets: a probe for an
// absent key that happens to hash into an occupied bucket must report a miss,
// so the stored key is verified on every lookup.
func (b *bucket) find(key []byte) *entry {
	for e := b.head; e != nil; e = e.next {
		if bytes.Equal(e.key, key) {
			return e
		}
	}
	return nil
}

// unlink removes the entry matching key with an explicit previous/current
// pair, bounded by the chain length. Returns nil once the chain end is
// reached without a match.
func (b *bucket) unlink(key []byte) *entry {
	var prev *entry
	for curr := b.head; curr != nil; prev, curr = curr, curr.next {
		if !bytes.Equal(curr.key, key) {
			continue
		}
		if prev == nil {
			b.head = curr.next
		} else {
			prev.next = curr.next
		}
		if b.tail == curr {
			b.tail = prev
		}
		b.length--
		curr.next = nil
		return curr
	}
	return nil
}
