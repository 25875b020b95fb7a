package media

import "strconv"

// Registry hands out file name stems that are unique within one run
type Registry struct {
	taken map[string]struct{}
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{taken: make(map[string]struct{})}
}

// Claim returns the like count as a stem, adding _1, _2, ... when an
// earlier photo already took it.
func (r *Registry) Claim(likes int) string {
	base := strconv.Itoa(likes)
	stem := base
	for i := 1; r.Taken(stem); i++ {
		stem = base + "_" + strconv.Itoa(i)
	}
	r.taken[stem] = struct{}{}
	return stem
}

// Taken reports whether stem was already handed out
func (r *Registry) Taken(stem string) bool {
	_, ok := r.taken[stem]
	return ok
}

// Len returns the number of stems handed out
func (r *Registry) Len() int {
	return len(r.taken)
}
