package starfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GLSL built-ins in float32, matching the GPU's highp behaviour closely
// enough that the reference and the GPU agree on where every star sits.

func fract(x float32) float32 {
	return x - float32(math.Floor(float64(x)))
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// smoothstep also accepts e0 > e1, which the program relies on for its
// fade-out ramps.
func smoothstep(e0, e1, x float32) float32 {
	t := clampF((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

func mix(x, y, a float32) float32 {
	return x*(1-a) + y*a
}

func absF(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(math.Cos(float64(x))) }

// normalize divides by the length without a zero guard, like the GPU.
func normalize(v mgl32.Vec2) mgl32.Vec2 {
	l := v.Len()
	return mgl32.Vec2{v[0] / l, v[1] / l}
}

// hash21 maps a grid cell to a pseudo-random value in [0,1).
func hash21(p mgl32.Vec2) float32 {
	x := fract(p[0] * 123.34)
	y := fract(p[1] * 456.21)
	d := x*(x+45.32) + y*(y+45.32)
	x += d
	y += d
	return fract(x * y)
}

func tri(x float32) float32 {
	return absF(fract(x)*2 - 1)
}

func tris(x float32) float32 {
	t := fract(x)
	return 1 - smoothstep(0, 1, absF(2*t-1))
}

func trisn(x float32) float32 {
	t := fract(x)
	return 2*(1-smoothstep(0, 1, absF(2*t-1))) - 1
}

// hsv2rgb converts hue/saturation/value in [0,1] to RGB.
func hsv2rgb(c mgl32.Vec3) mgl32.Vec3 {
	k := [3]float32{1, 2.0 / 3.0, 1.0 / 3.0}
	var out mgl32.Vec3
	for i := range out {
		p := absF(fract(c[0]+k[i])*6 - 3)
		out[i] = c[2] * mix(1, clampF(p-1, 0, 1), c[1])
	}
	return out
}
