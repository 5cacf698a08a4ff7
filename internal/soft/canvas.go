package soft

import (
	"errors"
	"image"

	"galaxy/internal/galaxy"
	"galaxy/internal/starfield"
)

var errReleased = errors.New("soft: context released")

// Canvas is an in-memory surface rendered on the CPU by starfield.Render.
type Canvas struct {
	width, height int

	contexts int
	programs int
	last     *image.NRGBA
	opts     galaxy.ContextOptions
}

// NewCanvas returns a surface of the given layout size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

// Size implements galaxy.Surface.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// Live reports the number of unreleased contexts and programs.
func (c *Canvas) Live() (contexts, programs int) { return c.contexts, c.programs }

// Frame returns the most recently drawn frame, nil before the first draw.
// It stays valid after the context is released.
func (c *Canvas) Frame() *image.NRGBA { return c.last }

// Options returns the flags of the most recent context.
func (c *Canvas) Options() galaxy.ContextOptions { return c.opts }

// NewContext implements galaxy.ContextFactory.
func (c *Canvas) NewContext(opts galaxy.ContextOptions) (galaxy.GraphicsContext, error) {
	if c.width <= 0 || c.height <= 0 {
		return nil, galaxy.ErrNoGraphics
	}
	c.contexts++
	c.opts = opts
	return &softContext{canvas: c}, nil
}

type softContext struct {
	canvas   *Canvas
	buf      *image.NRGBA
	programs []*program
	released bool
}

func (ctx *softContext) NewProgram() (galaxy.Program, error) {
	if ctx.released {
		return nil, errReleased
	}
	p := &program{ctx: ctx}
	ctx.programs = append(ctx.programs, p)
	ctx.canvas.programs++
	return p, nil
}

// SetSize reallocates the drawing buffer when the size changes.
func (ctx *softContext) SetSize(width, height int) (int, int) {
	if ctx.released || width <= 0 || height <= 0 {
		return 0, 0
	}
	if ctx.buf == nil || ctx.buf.Rect.Dx() != width || ctx.buf.Rect.Dy() != height {
		ctx.buf = image.NewNRGBA(image.Rect(0, 0, width, height))
	}
	return width, height
}

func (ctx *softContext) Release() error {
	if ctx.released {
		return errReleased
	}
	ctx.released = true
	for _, p := range ctx.programs {
		p.Release()
	}
	ctx.programs = nil
	ctx.buf = nil
	ctx.canvas.contexts--
	return nil
}

type program struct {
	ctx      *softContext
	released bool
}

// Draw renders a full frame into the context's buffer and publishes a copy
// as the canvas frame.
func (p *program) Draw(u *starfield.Uniforms) error {
	if p.released || p.ctx.released {
		return errReleased
	}
	buf := p.ctx.buf
	if buf == nil {
		return errors.New("soft: draw before SetSize")
	}
	if err := starfield.Render(buf, u); err != nil {
		return err
	}
	out := p.ctx.canvas.last
	if out == nil || out.Rect != buf.Rect {
		out = image.NewNRGBA(buf.Rect)
	}
	copy(out.Pix, buf.Pix)
	p.ctx.canvas.last = out
	return nil
}

func (p *program) Release() {
	if p.released {
		return
	}
	p.released = true
	p.ctx.canvas.programs--
}
