package glhost

// Rect is a screen-space rectangle in screen coordinates.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) area() int {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

func (r Rect) intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// VisibleFraction returns how much of win lies inside the monitor work
// areas, in [0,1]. Work areas are assumed not to overlap.
func VisibleFraction(win Rect, areas []Rect) float64 {
	total := win.area()
	if total == 0 {
		return 0
	}
	seen := 0
	for _, a := range areas {
		seen += win.intersect(a).area()
	}
	return min(float64(seen)/float64(total), 1)
}

// crossing turns a stream of visible fractions into visible/hidden edges.
type crossing struct {
	threshold float64
	visible   bool
	fired     bool
	fn        func(bool)
}

// update reports the fraction. fn runs on the first update and then only
// when the fraction crosses the threshold.
func (c *crossing) update(fraction float64) {
	visible := fraction > 0 && fraction >= c.threshold
	if c.fired && visible == c.visible {
		return
	}
	c.fired = true
	c.visible = visible
	c.fn(visible)
}
