//go:build !android

package glhost

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"galaxy/internal/galaxy"
	"galaxy/internal/starfield"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

var errReleased = errors.New("glhost: context released")

// glContext is the window's GL context for one Running period. Creating it
// makes the window's context current on the calling thread.
type glContext struct {
	w        *Window
	opts     galaxy.ContextOptions
	programs []*program
	released bool
}

// NewContext implements galaxy.ContextFactory.
func (w *Window) NewContext(opts galaxy.ContextOptions) (galaxy.GraphicsContext, error) {
	if w.glErr != nil {
		return nil, w.glErr
	}
	w.win.MakeContextCurrent()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)
	if opts.Alpha {
		gl.ClearColor(0, 0, 0, 0)
	} else {
		gl.ClearColor(0, 0, 0, 1)
	}
	// An opaque context keeps the framebuffer alpha at 1 whatever the shader writes.
	gl.ColorMask(true, true, true, opts.Alpha)

	return &glContext{w: w, opts: opts}, nil
}

func (c *glContext) NewProgram() (galaxy.Program, error) {
	if c.released {
		return nil, errReleased
	}
	p, err := newProgram(c.w.win)
	if err != nil {
		return nil, fmt.Errorf("starfield program: %w", err)
	}
	c.programs = append(c.programs, p)
	return p, nil
}

// SetSize sets the viewport. The default framebuffer cannot grow past the
// window's framebuffer, so the request is clamped to it.
func (c *glContext) SetSize(width, height int) (int, int) {
	if c.released {
		return 0, 0
	}
	fw, fh := c.w.win.GetFramebufferSize()
	width, height = min(width, fw), min(height, fh)
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	return width, height
}

// Release deletes every GL object created through the context, waits for
// the GPU and detaches the context from the thread.
func (c *glContext) Release() error {
	if c.released {
		return errReleased
	}
	c.released = true
	for _, p := range c.programs {
		p.Release()
	}
	c.programs = nil
	gl.Finish()
	err := glError("release")
	glfw.DetachCurrentContext()
	return err
}

type program struct {
	win *glfw.Window

	prog uint32
	vao  uint32
	vbo  uint32

	uTime                int32
	uResolution          int32
	uFocal               int32
	uRotation            int32
	uStarSpeed           int32
	uDensity             int32
	uHueShift            int32
	uSpeed               int32
	uMouse               int32
	uGlowIntensity       int32
	uSaturation          int32
	uMouseRepulsion      int32
	uTwinkleIntensity    int32
	uRotationSpeed       int32
	uRepulsionStrength   int32
	uMouseActiveFactor   int32
	uAutoCenterRepulsion int32
	uTransparent         int32

	released bool
}

func newProgram(win *glfw.Window) (*program, error) {
	prog, err := linkProgram(starfield.VertexShader, starfield.FragmentShader)
	if err != nil {
		return nil, err
	}
	p := &program{win: win, prog: prog}

	// One triangle covering clip space; the rasteriser clips it to the viewport.
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	verts := [6]float32{
		-1, -1,
		3, -1,
		-1, 3,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(&verts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	p.vao = vao
	p.vbo = vbo

	gl.UseProgram(prog)
	p.uTime = gl.GetUniformLocation(prog, gl.Str("uTime\x00"))
	p.uResolution = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	p.uFocal = gl.GetUniformLocation(prog, gl.Str("uFocal\x00"))
	p.uRotation = gl.GetUniformLocation(prog, gl.Str("uRotation\x00"))
	p.uStarSpeed = gl.GetUniformLocation(prog, gl.Str("uStarSpeed\x00"))
	p.uDensity = gl.GetUniformLocation(prog, gl.Str("uDensity\x00"))
	p.uHueShift = gl.GetUniformLocation(prog, gl.Str("uHueShift\x00"))
	p.uSpeed = gl.GetUniformLocation(prog, gl.Str("uSpeed\x00"))
	p.uMouse = gl.GetUniformLocation(prog, gl.Str("uMouse\x00"))
	p.uGlowIntensity = gl.GetUniformLocation(prog, gl.Str("uGlowIntensity\x00"))
	p.uSaturation = gl.GetUniformLocation(prog, gl.Str("uSaturation\x00"))
	p.uMouseRepulsion = gl.GetUniformLocation(prog, gl.Str("uMouseRepulsion\x00"))
	p.uTwinkleIntensity = gl.GetUniformLocation(prog, gl.Str("uTwinkleIntensity\x00"))
	p.uRotationSpeed = gl.GetUniformLocation(prog, gl.Str("uRotationSpeed\x00"))
	p.uRepulsionStrength = gl.GetUniformLocation(prog, gl.Str("uRepulsionStrength\x00"))
	p.uMouseActiveFactor = gl.GetUniformLocation(prog, gl.Str("uMouseActiveFactor\x00"))
	p.uAutoCenterRepulsion = gl.GetUniformLocation(prog, gl.Str("uAutoCenterRepulsion\x00"))
	p.uTransparent = gl.GetUniformLocation(prog, gl.Str("uTransparent\x00"))

	gl.BindVertexArray(0)
	if err := glError("create program"); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func boolUniform(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Draw uploads u, draws the triangle and presents the frame.
func (p *program) Draw(u *starfield.Uniforms) error {
	if p.released {
		return errReleased
	}
	gl.UseProgram(p.prog)
	gl.BindVertexArray(p.vao)

	gl.Uniform1f(p.uTime, u.Time)
	gl.Uniform3f(p.uResolution, u.Resolution[0], u.Resolution[1], u.Resolution[2])
	gl.Uniform2f(p.uFocal, u.Focal[0], u.Focal[1])
	gl.Uniform2f(p.uRotation, u.Rotation[0], u.Rotation[1])
	gl.Uniform1f(p.uStarSpeed, u.StarSpeed)
	gl.Uniform1f(p.uDensity, u.Density)
	gl.Uniform1f(p.uHueShift, u.HueShift)
	gl.Uniform1f(p.uSpeed, u.Speed)
	gl.Uniform2f(p.uMouse, u.Mouse[0], u.Mouse[1])
	gl.Uniform1f(p.uGlowIntensity, u.GlowIntensity)
	gl.Uniform1f(p.uSaturation, u.Saturation)
	gl.Uniform1i(p.uMouseRepulsion, boolUniform(u.MouseRepulsion))
	gl.Uniform1f(p.uTwinkleIntensity, u.TwinkleIntensity)
	gl.Uniform1f(p.uRotationSpeed, u.RotationSpeed)
	gl.Uniform1f(p.uRepulsionStrength, u.RepulsionStrength)
	gl.Uniform1f(p.uMouseActiveFactor, u.MouseActiveFactor)
	gl.Uniform1f(p.uAutoCenterRepulsion, u.AutoCenterRepulsion)
	gl.Uniform1i(p.uTransparent, boolUniform(u.Transparent))

	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	if err := glError("draw"); err != nil {
		return err
	}
	p.win.SwapBuffers()
	return nil
}

func (p *program) Release() {
	if p.released {
		return
	}
	p.released = true
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.prog != 0 {
		gl.DeleteProgram(p.prog)
	}
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%04x", op, code)
	}
	return nil
}
