// Package ambience plays a quiet FM pad whose loudness follows the galaxy's
// pointer activity and twinkle, and whose chord follows its hue.
package ambience

import (
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"galaxy/internal/starfield"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

const (
	restLevel  = 0.25 // loudness with an idle pointer
	glide      = 0.6  // seconds to cover ~63% of a level change
	staleAfter = 500 * time.Millisecond
)

// state is shared between the frame hook and the audio thread.
type state struct {
	target    atomic.Uint64 // float64 bits
	chord     atomic.Int32
	lastFrame atomic.Int64 // unix nanoseconds of the latest drawn frame
	now       func() time.Time
}

func newState() *state {
	s := &state{now: time.Now}
	s.target.Store(math.Float64bits(0))
	return s
}

// Level converts one frame's inputs to a loudness target in [0,1].
func Level(u *starfield.Uniforms) float64 {
	active := clamp(float64(u.MouseActiveFactor), 0, 1)
	twinkle := clamp(float64(u.TwinkleIntensity), 0, 1)
	return (restLevel + (1-restLevel)*active) * (0.6 + 0.4*twinkle)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func (s *state) observe(u *starfield.Uniforms) {
	s.target.Store(math.Float64bits(Level(u)))
	s.chord.Store(int32(chordFor(float64(u.HueShift))))
	s.lastFrame.Store(s.now().UnixNano())
}

// currentTarget falls to silence when frames stop arriving, e.g. while the
// galaxy is hidden.
func (s *state) currentTarget() float64 {
	last := s.lastFrame.Load()
	if last == 0 || s.now().Sub(time.Unix(0, last)) > staleAfter {
		return 0
	}
	return math.Float64frombits(s.target.Load())
}

type padReader struct {
	st    *state
	t     float64
	level float64
}

// Read fills p with stereo float32 frames. It never ends.
func (r *padReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	if samples == 0 {
		return 0, nil
	}
	target := r.st.currentTarget()
	chord := chords[r.st.chord.Load()]
	k := 1 - math.Exp(-1/(glide*SampleRate))
	for i := 0; i < samples; i++ {
		r.level += (target - r.level) * k
		putStereoF32(p, i, pad(r.t, chord, r.level))
		r.t += 1.0 / SampleRate
	}
	return samples * 8, nil
}

type player interface {
	SetVolume(float64)
	Play()
	Close() error
}

// Pad owns the audio context and the streaming player.
type Pad struct {
	ready     <-chan struct{}
	newPlayer func(io.Reader) player
	st        *state

	mu     sync.Mutex
	player player
	closed bool
}

// Open creates the audio context. The pad is silent until Start.
func Open() (*Pad, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &Pad{
		ready:     ready,
		newPlayer: func(r io.Reader) player { return ctx.NewPlayer(r) },
		st:        newState(),
	}, nil
}

// Start waits for the audio device and begins streaming at volume. It does
// nothing once Close has been called, including when Close runs while Start
// is still waiting.
func (p *Pad) Start(volume float64) {
	<-p.ready
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if p.player != nil {
		p.player.Close()
	}
	p.player = p.newPlayer(&padReader{st: p.st})
	p.player.SetVolume(volume)
	p.player.Play()
}

// Observe is a galaxy frame hook. It is cheap and safe to call from the
// render thread while the audio thread reads.
func (p *Pad) Observe(u *starfield.Uniforms) { p.st.observe(u) }

// Close stops playback for good.
func (p *Pad) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}
