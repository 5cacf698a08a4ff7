package ambience

import "math"

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation with no hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// pad is four detuned FM voices per chord note with a slow vibrato. A
// brighter level opens the modulation index.
func pad(t float64, chord []float64, level float64) float64 {
	s := 0.0
	detunes := [4]float64{-0.004, -0.001, 0.002, 0.005}
	for _, freq := range chord {
		for _, d := range detunes {
			f := freq * (1 + d)
			vib := 1 + 0.003*math.Sin(2*math.Pi*(0.23+f*0.0007)*t)
			s += fm(t, f*vib, 1.45, 0.35+0.6*level) * 0.048
		}
	}
	return softSat(s * level)
}

// chords are slow, open voicings a fifth apart. The galaxy's hue picks one.
var chords = [][]float64{
	{65.41, 98.00, 130.81, 196.00},   // C
	{98.00, 146.83, 196.00, 293.66},  // G
	{73.42, 110.00, 146.83, 220.00},  // D
	{110.00, 164.81, 220.00, 329.63}, // A
	{82.41, 123.47, 164.81, 246.94},  // E
	{61.74, 92.50, 123.47, 185.00},   // B
}

// chordFor maps a hue in degrees, any range, to a chord index.
func chordFor(hue float64) int {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	i := int(h * float64(len(chords)) / 360)
	return min(i, len(chords)-1)
}
