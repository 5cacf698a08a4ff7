package galaxy

// Dimensions is the drawing buffer size.
type Dimensions struct {
	Width, Height int
	Aspect        float64
}

// resize reads the surface size, resizes the drawing buffer and feeds the
// result to the resolution input. Empty sizes (a minimised window) keep the
// previous dimensions.
func (g *Galaxy) resize() {
	if g.ctx == nil || g.drv == nil {
		return
	}
	w, h := g.host.Surface.Size()
	if w <= 0 || h <= 0 {
		return
	}
	fw, fh := g.ctx.SetSize(int(float64(w)*g.cfg.PixelRatio), int(float64(h)*g.cfg.PixelRatio))
	if fw <= 0 || fh <= 0 {
		return
	}
	g.dims = Dimensions{Width: fw, Height: fh, Aspect: float64(fw) / float64(fh)}
	g.drv.setResolution(fw, fh)
	Logger().Debug("galaxy: resized", "width", fw, "height", fh)
}
