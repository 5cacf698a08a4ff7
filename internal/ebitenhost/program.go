package ebitenhost

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"galaxy/internal/galaxy"
	"galaxy/internal/starfield"
)

var (
	errReleased = errors.New("ebitenhost: context released")
	errNoScreen = errors.New("ebitenhost: draw outside the draw phase")
)

type gfxContext struct {
	h        *Host
	opts     galaxy.ContextOptions
	programs []*program
	released bool
}

// NewContext implements galaxy.ContextFactory. Ebitengine owns the real
// graphics context; this one tracks the shader and the buffer size.
func (h *Host) NewContext(opts galaxy.ContextOptions) (galaxy.GraphicsContext, error) {
	return &gfxContext{h: h, opts: opts}, nil
}

func (c *gfxContext) NewProgram() (galaxy.Program, error) {
	if c.released {
		return nil, errReleased
	}
	shader, err := ebiten.NewShader(starfield.KageShader)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	p := &program{h: c.h, shader: shader}
	c.programs = append(c.programs, p)
	return p, nil
}

// SetSize sets the size Layout reports, which becomes the screen size on
// the next frame.
func (c *gfxContext) SetSize(width, height int) (int, int) {
	if c.released || width <= 0 || height <= 0 {
		return 0, 0
	}
	c.h.bufW, c.h.bufH = width, height
	return width, height
}

func (c *gfxContext) Release() error {
	if c.released {
		return errReleased
	}
	c.released = true
	for _, p := range c.programs {
		p.Release()
	}
	c.programs = nil
	c.h.bufW, c.h.bufH = 0, 0
	return nil
}

type program struct {
	h        *Host
	shader   *ebiten.Shader
	uniforms map[string]any
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func (p *program) Draw(u *starfield.Uniforms) error {
	if p.shader == nil {
		return errReleased
	}
	screen := p.h.screen
	if screen == nil {
		return errNoScreen
	}
	if p.uniforms == nil {
		p.uniforms = make(map[string]any, 18)
	}
	m := p.uniforms
	m["Time"] = u.Time
	m["Resolution"] = []float32{u.Resolution[0], u.Resolution[1], u.Resolution[2]}
	m["Focal"] = []float32{u.Focal[0], u.Focal[1]}
	m["Rotation"] = []float32{u.Rotation[0], u.Rotation[1]}
	m["StarSpeed"] = u.StarSpeed
	m["Density"] = u.Density
	m["HueShift"] = u.HueShift
	m["Speed"] = u.Speed
	m["Mouse"] = []float32{u.Mouse[0], u.Mouse[1]}
	m["GlowIntensity"] = u.GlowIntensity
	m["Saturation"] = u.Saturation
	m["MouseRepulsion"] = flag(u.MouseRepulsion)
	m["TwinkleIntensity"] = u.TwinkleIntensity
	m["RotationSpeed"] = u.RotationSpeed
	m["RepulsionStrength"] = u.RepulsionStrength
	m["MouseActiveFactor"] = u.MouseActiveFactor
	m["AutoCenterRepulsion"] = u.AutoCenterRepulsion
	m["Transparent"] = flag(u.Transparent)

	b := screen.Bounds()
	op := &ebiten.DrawRectShaderOptions{Uniforms: m, Blend: ebiten.BlendCopy}
	screen.DrawRectShader(b.Dx(), b.Dy(), p.shader, op)
	return nil
}

func (p *program) Release() {
	if p.shader != nil {
		p.shader.Deallocate()
		p.shader = nil
	}
}
