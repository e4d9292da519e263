package grab

// HoldRegistry counts how many manipulators currently hold each grabbable.
// An entry exists only while its count is at least one.
//
// The registry is not synchronized. All manipulators sharing a registry must
// be driven from the same frame loop, one at a time.
type HoldRegistry struct {
	counts map[Grabbable]int
}

// NewHoldRegistry creates an empty registry.
func NewHoldRegistry() *HoldRegistry {
	return &HoldRegistry{counts: make(map[Grabbable]int)}
}

// Increment registers one more holder for g and reports whether g just
// became held (count went from 0 to 1).
func (r *HoldRegistry) Increment(g Grabbable) bool {
	if r == nil || g == nil {
		return false
	}
	if r.counts == nil {
		r.counts = make(map[Grabbable]int)
	}
	r.counts[g]++
	return r.counts[g] == 1
}

// Decrement removes one holder of g and reports whether g just became free.
// Decrementing an object that is not registered is a no-op.
func (r *HoldRegistry) Decrement(g Grabbable) bool {
	if r == nil || g == nil {
		return false
	}
	n, ok := r.counts[g]
	if !ok {
		return false
	}
	if n <= 1 {
		delete(r.counts, g)
		return true
	}
	r.counts[g] = n - 1
	return false
}

// Count returns the number of holders of g, or 0 if g is not held.
func (r *HoldRegistry) Count(g Grabbable) int {
	if r == nil || g == nil {
		return 0
	}
	return r.counts[g]
}

// Len returns the number of distinct held objects.
func (r *HoldRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.counts)
}

// Held returns a snapshot of every held object in no particular order.
func (r *HoldRegistry) Held() []Grabbable {
	if r == nil || len(r.counts) == 0 {
		return nil
	}
	out := make([]Grabbable, 0, len(r.counts))
	for g := range r.counts {
		out = append(out, g)
	}
	return out
}
