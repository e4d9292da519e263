package ecs

// IntersectEntities returns slot ids present in every set, in the dense
// order of the smallest set. A nil set yields nil.
func IntersectEntities(sets ...*SparseSet) []int {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets {
		if s == nil {
			return nil
		}
		if len(s.denseEntities) < len(smallest.denseEntities) {
			smallest = s
		}
	}
	out := make([]int, 0, len(smallest.denseEntities))
	for _, id := range smallest.denseEntities {
		ok := true
		for _, s := range sets {
			if s != smallest && !s.Has(id) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, id)
		}
	}
	return out
}
