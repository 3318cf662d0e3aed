package koudou

// extendSparse grows a sparse index by n entries, marking them absent.
func extendSparse(s []int32, n int) []int32 {
	newLen := len(s) + n
	if cap(s) < newLen {
		ns := make([]int32, len(s), max(2*cap(s), newLen))
		copy(ns, s)
		s = ns
	}
	old := len(s)
	s = s[:newLen]
	for i := old; i < newLen; i++ {
		s[i] = -1
	}
	return s
}

// splitFunc compacts s in place, keeping the elements for which drop returns
// false. It returns the kept prefix and the dropped elements in their
// original order. The tail of s past the kept prefix is zeroed.
func splitFunc[T any](s []T, drop func(T) bool) (kept, dropped []T) {
	n := 0
	for _, v := range s {
		if drop(v) {
			dropped = append(dropped, v)
			continue
		}
		s[n] = v
		n++
	}
	clear(s[n:])
	return s[:n], dropped
}
