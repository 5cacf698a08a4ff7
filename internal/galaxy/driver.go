package galaxy

import (
	"github.com/go-gl/mathgl/mgl32"

	"galaxy/internal/starfield"
)

// driver is the frame loop of one Running period.
type driver struct {
	sched   Scheduler
	prog    Program
	pointer *Pointer
	params  func() Params
	hook    func(*starfield.Uniforms)

	u       starfield.Uniforms
	elapsed float64 // animated seconds since start
	last    float64 // clock at the previous tick
	ticked  bool
	frame   FrameID
	halted  bool
}

func newDriver(sched Scheduler, prog Program, pointer *Pointer, params func() Params, hook func(*starfield.Uniforms)) *driver {
	d := &driver{
		sched:   sched,
		prog:    prog,
		pointer: pointer,
		params:  params,
		hook:    hook,
	}
	// Until the first animated tick the phase input holds the raw parameter.
	d.u.StarSpeed = float32(params().StarSpeed)
	return d
}

func (d *driver) start() {
	d.frame = d.sched.Schedule(d.tick)
}

func (d *driver) stop() {
	if d.frame != 0 {
		d.sched.Cancel(d.frame)
		d.frame = 0
	}
	d.halted = true
}

func (d *driver) setResolution(w, h int) {
	d.u.Resolution = mgl32.Vec3{float32(w), float32(h), float32(w) / float32(h)}
}

func (d *driver) tick(now float64) {
	if d.halted {
		return
	}
	// Reschedule before drawing; only a draw error below ends the loop.
	d.frame = d.sched.Schedule(d.tick)

	p := d.params()

	if !d.ticked {
		d.last = now
		d.ticked = true
	}
	if !p.DisableAnimation {
		if dt := now - d.last; dt > 0 {
			d.elapsed += dt
		}
		d.u.Time = float32(d.elapsed)
		d.u.StarSpeed = float32(d.elapsed * p.StarSpeed / 10)
	}
	d.last = now

	d.pointer.Step()
	d.push(p)

	if err := d.prog.Draw(&d.u); err != nil {
		d.sched.Cancel(d.frame)
		d.frame = 0
		d.halted = true
		Logger().Debug("galaxy: draw failed, loop halted", "err", err, "time", d.elapsed)
		return
	}
	if d.hook != nil {
		d.hook(&d.u)
	}
}

// push copies the current parameters and smoothed pointer into the inputs.
func (d *driver) push(p Params) {
	m := d.pointer.Smoothed()
	d.u.Mouse = mgl32.Vec2{float32(m.X), float32(m.Y)}
	d.u.MouseActiveFactor = float32(m.Active)

	d.u.Focal = mgl32.Vec2{float32(p.Focal[0]), float32(p.Focal[1])}
	d.u.Rotation = mgl32.Vec2{float32(p.Rotation[0]), float32(p.Rotation[1])}
	d.u.Density = float32(p.Density)
	d.u.HueShift = float32(p.HueShift)
	d.u.Speed = float32(p.Speed)
	d.u.GlowIntensity = float32(p.GlowIntensity)
	d.u.Saturation = float32(p.Saturation)
	d.u.MouseRepulsion = p.MouseRepulsion
	d.u.TwinkleIntensity = float32(p.TwinkleIntensity)
	d.u.RotationSpeed = float32(p.RotationSpeed)
	d.u.RepulsionStrength = float32(p.RepulsionStrength)
	d.u.AutoCenterRepulsion = float32(p.AutoCenterRepulsion)
	d.u.Transparent = p.Transparent
}
