package starfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shade evaluates the starfield program for one surface coordinate
// (vUv in [0,1]², origin bottom-left). It is a pure function.
func Shade(vUv mgl32.Vec2, u *Uniforms) Color {
	uv := ViewCoord(vUv, u)
	uv = Repel(uv, u)
	uv = Rotate(uv, u)
	col := Layers(uv, u)
	return Color{R: col[0], G: col[1], B: col[2], A: Alpha(col, u.Transparent)}
}

// ViewCoord centres the surface coordinate on the focal point and scales it by
// the surface height so stars stay round at any aspect.
func ViewCoord(vUv mgl32.Vec2, u *Uniforms) mgl32.Vec2 {
	res := u.Resolution.Vec2()
	focalPx := mgl32.Vec2{u.Focal[0] * res[0], u.Focal[1] * res[1]}
	px := mgl32.Vec2{vUv[0] * res[0], vUv[1] * res[1]}
	return px.Sub(focalPx).Mul(1 / res[1])
}

// Repel applies exactly one displacement branch. Auto-centre repulsion wins
// over pointer repulsion, which wins over the plain pointer offset.
func Repel(uv mgl32.Vec2, u *Uniforms) mgl32.Vec2 {
	switch {
	case u.AutoCenterRepulsion > 0:
		dist := uv.Len()
		push := normalize(uv).Mul(u.AutoCenterRepulsion / (dist + repulsionEps))
		return uv.Add(push.Mul(repulsionScale))
	case u.MouseRepulsion:
		mouse := ViewCoord(u.Mouse, u)
		dist := uv.Sub(mouse).Len()
		push := normalize(uv.Sub(mouse)).Mul(u.RepulsionStrength / (dist + repulsionEps))
		return uv.Add(push.Mul(repulsionScale * u.MouseActiveFactor))
	default:
		offset := u.Mouse.Sub(mgl32.Vec2{0.5, 0.5}).Mul(0.1 * u.MouseActiveFactor)
		return uv.Add(offset)
	}
}

// Rotate applies the time-driven rotation and then the static (cos, sin)
// rotation, in that order.
func Rotate(uv mgl32.Vec2, u *Uniforms) mgl32.Vec2 {
	a := u.Time * u.RotationSpeed
	c, s := cos32(a), sin32(a)
	uv = mgl32.Mat2{c, -s, s, c}.Mul2x1(uv)
	r := u.Rotation
	return mgl32.Mat2{r[0], -r[1], r[1], r[0]}.Mul2x1(uv)
}

// Layers sums the NumLayers depth layers. Each layer's depth wraps through
// [0,1) with the star phase; scale goes from dense to sparse with depth and
// the layer fades out just before it wraps.
func Layers(uv mgl32.Vec2, u *Uniforms) mgl32.Vec3 {
	var col mgl32.Vec3
	for l := 0; l < NumLayers; l++ {
		i := float32(l) / NumLayers
		depth := fract(i + u.StarSpeed*u.Speed)
		scale := mix(20*u.Density, 0.5*u.Density, depth)
		fade := depth * smoothstep(1, 0.9, depth)
		off := i * layerOffset
		p := mgl32.Vec2{uv[0]*scale + off, uv[1]*scale + off}
		col = col.Add(StarLayer(p, u).Mul(fade))
	}
	return col
}

// StarLayer renders one grid of hashed stars. Each pixel looks at the star of
// its own cell and of the eight neighbours.
func StarLayer(uv mgl32.Vec2, u *Uniforms) mgl32.Vec3 {
	var col mgl32.Vec3
	gv := mgl32.Vec2{fract(uv[0]) - 0.5, fract(uv[1]) - 0.5}
	id := mgl32.Vec2{float32(math.Floor(float64(uv[0]))), float32(math.Floor(float64(uv[1])))}

	for y := -1; y <= 1; y++ {
		for x := -1; x <= 1; x++ {
			offset := mgl32.Vec2{float32(x), float32(y)}
			si := id.Add(offset)
			seed := hash21(si)
			size := fract(seed * 345.32)
			gloss := tri(u.StarSpeed / (flarePeriod*seed + 1))
			flare := smoothstep(0.9, 1, size) * gloss

			base := starColor(si, seed, u)

			pad := mgl32.Vec2{
				tris(seed*34+u.Time*u.Speed/10) - 0.5,
				tris(seed*38+u.Time*u.Speed/30) - 0.5,
			}
			star := Star(gv.Sub(offset).Sub(pad), flare, u.GlowIntensity)

			twinkle := trisn(u.Time*u.Speed+seed*6.2831)*0.5 + 1
			star *= mix(1, twinkle, u.TwinkleIntensity)

			col = col.Add(base.Mul(star * size))
		}
	}
	return col
}

// starColor derives a red/blue biased base colour from the cell hash, then
// rotates its hue by HueShift degrees and rescales its saturation.
func starColor(si mgl32.Vec2, seed float32, u *Uniforms) mgl32.Vec3 {
	red := smoothstep(starColorCutoff, 1, hash21(si.Add(mgl32.Vec2{1, 1}))) + starColorCutoff
	blu := smoothstep(starColorCutoff, 1, hash21(si.Add(mgl32.Vec2{3, 3}))) + starColorCutoff
	grn := min(red, blu) * seed
	base := mgl32.Vec3{red, grn, blu}

	hue := float32(math.Atan2(float64(grn-red), float64(blu-red)))/(2*3.14159) + 0.5
	hue = fract(hue + u.HueShift/360)
	lum := base.Dot(mgl32.Vec3{0.299, 0.587, 0.114})
	sat := base.Sub(mgl32.Vec3{lum, lum, lum}).Len() * u.Saturation
	val := max(red, grn, blu)
	return hsv2rgb(mgl32.Vec3{hue, sat, val})
}

// Star returns the brightness of a point light at offset uv: a 1/d glow plus
// two pairs of flare rays, the second pair rotated 45°.
func Star(uv mgl32.Vec2, flare, glow float32) float32 {
	d := uv.Len()
	m := 0.05 * glow / d
	rays := smoothstep(0, 1, 1-absF(uv[0]*uv[1]*1000))
	m += rays * flare * glow
	const c = 0.7071
	uv = mgl32.Vec2{uv[0]*c - uv[1]*c, uv[0]*c + uv[1]*c}
	rays = smoothstep(0, 1, 1-absF(uv[0]*uv[1]*1000))
	m += rays * 0.3 * flare * glow
	m *= smoothstep(1, 0.2, d)
	return m
}

// Alpha is 1 for opaque output. For transparent output it ramps from 0 at
// black to 1 at a colour magnitude of 0.3.
func Alpha(col mgl32.Vec3, transparent bool) float32 {
	if !transparent {
		return 1
	}
	return min(smoothstep(0, alphaCutoff, col.Len()), 1)
}
