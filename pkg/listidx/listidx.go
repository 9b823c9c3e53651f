// Package listidx converts Redis style list ranges into slice bounds.
package listidx

// Bounds maps an inclusive [start, stop] range with Redis semantics onto
// half-open slice bounds for a list of the given length. Negative indices
// count from the tail (-1 is the last element) and out-of-range values are
// clamped. ok is false when the range selects nothing.
func Bounds(start, stop, length int64) (from, to int64, ok bool) {
	if length <= 0 {
		return 0, 0, false
	}
	if start < 0 {
		start += length
	}
	if stop < 0 {
		stop += length
	}
	if start < 0 {
		start = 0
	}
	if stop >= length {
		stop = length - 1
	}
	if start > stop || start >= length {
		return 0, 0, false
	}
	return start, stop + 1, true
}
