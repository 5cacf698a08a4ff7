package starfield

import _ "embed"

// VertexShader emits a single full-surface triangle and the interpolated
// surface coordinate in [0,1]².
//
//go:embed shaders/galaxy.vert
var VertexShader string

// FragmentShader is the GLSL 410 core starfield program. Uniform names match
// the fields of Uniforms with a "u" prefix.
//
//go:embed shaders/galaxy.frag
var FragmentShader string

// KageShader is the Ebitengine rendition of FragmentShader. Bool inputs are
// passed as 0/1 floats.
//
//go:embed shaders/galaxy.kage
var KageShader []byte

// NumLayers is the fixed number of depth layers summed per pixel.
const NumLayers = 4

// Constants shared by every rendition of the program.
const (
	starColorCutoff = 0.2
	flarePeriod     = 3.0
	layerOffset     = 453.32
	repulsionScale  = 0.05
	repulsionEps    = 0.1
	alphaCutoff     = 0.3
)
