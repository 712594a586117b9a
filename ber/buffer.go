package ber

// growBuffer is the accumulation buffer for one in-flight object. It grows
// to an exact requested length while doubling the underlying capacity, so a
// long run of small grow calls reallocates O(log n) times rather than once
// per call. The reallocation count is tracked for observability.
type growBuffer struct {
	data  []byte
	grows int
}

// ensure extends the buffer's length to at least n, reallocating if the
// capacity is insufficient. Existing bytes are preserved.
func (b *growBuffer) ensure(n int) {
	if n <= len(b.data) {
		return
	}
	if n <= cap(b.data) {
		b.data = b.data[:n]
		return
	}
	c := 2 * cap(b.data)
	if c < n {
		c = n
	}
	grown := make([]byte, n, c)
	copy(grown, b.data)
	b.data = grown
	b.grows++
}
