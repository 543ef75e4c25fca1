package transcript

import "time"

// idGenerator hands out message ids that look like millisecond timestamps
// but never repeat: when two messages land in the same millisecond the
// second gets last+1.
type idGenerator struct {
	last int64
}

// Next returns an id strictly greater than every id returned before
func (g *idGenerator) Next(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
