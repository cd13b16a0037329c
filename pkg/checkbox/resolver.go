package checkbox

import "docedit-be/pkg/editor"

// DefaultMaxDistance is the click tolerance in document positions.
const DefaultMaxDistance = 3

// Resolved is the checkbox a click landed on.
type Resolved struct {
	Occurrence Occurrence
	Index      int
}

// Resolve finds the checkbox closest to click. Equidistant candidates resolve
// to the lowest ordinal. ok is false when the nearest checkbox is farther than
// maxDistance; that is a no-op, not an error.
func Resolve(doc editor.Node, click, maxDistance int) (Resolved, bool) {
	return Nearest(Scan(doc), click, maxDistance)
}

// Nearest runs the resolver over an already materialized scan.
func Nearest(occurrences []Occurrence, click, maxDistance int) (Resolved, bool) {
	if maxDistance < 0 {
		maxDistance = 0
	}
	best := -1
	bestDistance := 0
	for i, o := range occurrences {
		d := abs(o.Position - click)
		if best == -1 || d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	if best == -1 || bestDistance > maxDistance {
		return Resolved{}, false
	}
	return Resolved{Occurrence: occurrences[best], Index: best}, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
