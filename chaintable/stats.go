package chaintable

import "github.com/rickb777/date/v2/timespan"

// Stats is a diagnostic snapshot of a table. CollidedBuckets counts buckets
// whose chains ever held more than one entry; the marker is tuning data only
// and plays no part in lookups.
type Stats struct {
	ID              string
	Generation      int
	Capacity        int
	Size            int
	MaxLoadFactor   int
	Grows           int
	LastGrow        timespan.TimeSpan
	CollidedBuckets int
}

// Stats snapshots the table's shape. The zero Stats is returned for a nil or
// destroyed handle.
func (t *Table) Stats() Stats {
	if !t.usable() {
		return Stats{}
	}

	collided := 0
	for _, b := range t.buckets {
		if b != nil && b.collided {
			collided++
		}
	}
	return Stats{
		ID:              t.id,
		Generation:      t.generation,
		Capacity:        len(t.buckets),
		Size:            t.size,
		MaxLoadFactor:   t.maxLoad,
		Grows:           t.grows,
		LastGrow:        t.lastGrow,
		CollidedBuckets: collided,
	}
}
