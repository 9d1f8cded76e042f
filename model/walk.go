package model

import "sort"

// Visitor receives every node of a Specification in document order. Exactly
// one of loop, segment or element is non-nil. depth is 0 for top-level loops.
type Visitor func(depth int, loop *Loop, seg *Segment, el *Element)

// Walk visits all loops, segments and elements depth-first. Within a loop,
// segments and nested loops are visited in Children order.
func (s *Specification) Walk(fn Visitor) {
	for _, l := range s.Loops {
		walkLoop(l, 0, fn)
	}
}

func walkLoop(l *Loop, depth int, fn Visitor) {
	fn(depth, l, nil, nil)
	for _, c := range l.Children() {
		if c.Loop != nil {
			walkLoop(c.Loop, depth+1, fn)
			continue
		}
		fn(depth+1, nil, c.Segment, nil)
		for _, e := range c.Segment.Elements {
			fn(depth+2, nil, nil, e)
		}
	}
}

// Child is either a segment or a nested loop of a Loop.
type Child struct {
	Segment *Segment
	Loop    *Loop
}

func (c Child) order() (int, bool) {
	var o *int
	if c.Segment != nil {
		o = c.Segment.Order
	} else {
		o = c.Loop.Order
	}
	if o == nil {
		return 0, false
	}
	return *o, true
}

// Children returns the segments and nested loops of l interleaved by Order.
// Children without an order keep their place after the ordered ones, segments
// first.
func (l *Loop) Children() []Child {
	out := make([]Child, 0, len(l.Segments)+len(l.Loops))
	for _, s := range l.Segments {
		out = append(out, Child{Segment: s})
	}
	for _, n := range l.Loops {
		out = append(out, Child{Loop: n})
	}
	sort.SliceStable(out, func(i, j int) bool {
		oi, iok := out[i].order()
		oj, jok := out[j].order()
		switch {
		case iok && jok:
			return oi < oj
		case iok:
			return true
		default:
			return false
		}
	})
	return out
}
