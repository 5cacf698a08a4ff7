package starfield

import (
	"image"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// Render rasterises one frame into dst, sampling the program at pixel
// centres. Row 0 of dst is the top of the surface. u.Resolution is used as
// given; callers normally set it to dst's size.
func Render(dst *image.NRGBA, u *Uniforms) error {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	bands := runtime.GOMAXPROCS(0)
	if bands > h {
		bands = h
	}
	rowsPer := (h + bands - 1) / bands

	var g errgroup.Group
	for y0 := 0; y0 < h; y0 += rowsPer {
		y1 := min(y0+rowsPer, h)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				vy := 1 - (float32(y)+0.5)/float32(h)
				off := dst.PixOffset(b.Min.X, b.Min.Y+y)
				for x := 0; x < w; x++ {
					c := Shade(mgl32.Vec2{(float32(x) + 0.5) / float32(w), vy}, u)
					px := dst.Pix[off+x*4 : off+x*4+4 : off+x*4+4]
					px[0] = toByte(c.R)
					px[1] = toByte(c.G)
					px[2] = toByte(c.B)
					px[3] = toByte(c.A)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// toByte clamps a channel to [0,1] like the framebuffer does. NaN, which the
// program yields exactly on a star centre, becomes 0.
func toByte(v float32) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
