package content

// DefaultRevealThreshold is the visible fraction at which a section counts
// as revealed.
const DefaultRevealThreshold = 0.1

// Reveal tracks which sections have scrolled into view. A section stays
// revealed once it has been seen.
type Reveal struct {
	threshold float64
	seen      map[string]bool
}

func NewReveal(threshold float64) *Reveal {
	return &Reveal{threshold: threshold, seen: make(map[string]bool)}
}

// Observe checks a section spanning [top, top+height) against a viewport
// [viewTop, viewTop+viewHeight) and returns whether it is revealed.
func (r *Reveal) Observe(id string, top, height, viewTop, viewHeight int) bool {
	if r.seen[id] {
		return true
	}
	if height <= 0 {
		return false
	}
	lo := max(top, viewTop)
	hi := min(top+height, viewTop+viewHeight)
	if hi <= lo {
		return false
	}
	if float64(hi-lo)/float64(height) >= r.threshold {
		r.seen[id] = true
	}
	return r.seen[id]
}

func (r *Reveal) Revealed(id string) bool { return r.seen[id] }
