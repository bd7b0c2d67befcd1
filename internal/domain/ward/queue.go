package ward

import "github.com/google/uuid"

// bucket is a FIFO of patient records.
type bucket struct {
	items []*Patient
}

func (b *bucket) push(p *Patient) {
	b.items = append(b.items, p)
}

func (b *bucket) pop() (*Patient, bool) {
	if len(b.items) == 0 {
		return nil, false
	}
	p := b.items[0]
	b.items[0] = nil
	b.items = b.items[1:]
	return p, true
}

// removeWhere drops the first entry matching fn.
func (b *bucket) removeWhere(fn func(*Patient) bool) bool {
	for i, p := range b.items {
		if fn(p) {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

func (b *bucket) len() int {
	return len(b.items)
}

func (b *bucket) snapshot() []Patient {
	out := make([]Patient, 0, len(b.items))
	for _, p := range b.items {
		out = append(out, *p)
	}
	return out
}

// TriageQueue holds waiting patients in two buckets. Every critical patient
// is ahead of every stable one; within a bucket order is insertion order.
type TriageQueue struct {
	critical bucket
	stable   bucket
}

func (q *TriageQueue) Enqueue(p *Patient) {
	if p.Condition.IsCritical() {
		q.critical.push(p)
		return
	}
	q.stable.push(p)
}

// PopCritical removes the oldest critical patient.
func (q *TriageQueue) PopCritical() (*Patient, bool) {
	return q.critical.pop()
}

// Remove drops the entry for an admission from whichever bucket holds it.
func (q *TriageQueue) Remove(admissionID uuid.UUID) bool {
	match := func(p *Patient) bool { return p.AdmissionID == admissionID }
	if q.critical.removeWhere(match) {
		return true
	}
	return q.stable.removeWhere(match)
}

func (q *TriageQueue) CriticalLen() int { return q.critical.len() }

func (q *TriageQueue) StableLen() int { return q.stable.len() }

func (q *TriageQueue) Critical() []Patient { return q.critical.snapshot() }

func (q *TriageQueue) Stable() []Patient { return q.stable.snapshot() }

// Waiting returns every queued patient in priority order.
func (q *TriageQueue) Waiting() []Patient {
	return append(q.critical.snapshot(), q.stable.snapshot()...)
}
