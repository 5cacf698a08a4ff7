package ambience

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"galaxy/internal/starfield"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name    string
		active  float32
		twinkle float32
		want    float64
	}{
		{"idle, no twinkle", 0, 0, restLevel * 0.6},
		{"idle, full twinkle", 0, 1, restLevel},
		{"active, full twinkle", 1, 1, 1},
		{"out of range clamps", 4, -2, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Level(&starfield.Uniforms{MouseActiveFactor: tt.active, TwinkleIntensity: tt.twinkle})
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChordFor(t *testing.T) {
	tests := []struct {
		hue  float64
		want int
	}{
		{0, 0},
		{59, 0},
		{60, 1},
		{140, 2},
		{359.9, len(chords) - 1},
		{360, 0},
		{-30, len(chords) - 1},
	}
	for _, tt := range tests {
		if got := chordFor(tt.hue); got != tt.want {
			t.Errorf("chordFor(%v) = %d, want %d", tt.hue, got, tt.want)
		}
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestState() (*state, *fakeClock) {
	c := &fakeClock{t: time.Unix(1000, 0)}
	s := newState()
	s.now = c.now
	return s, c
}

// readLevels reads n buffers of 1024 frames and returns the level after each.
func readLevels(r *padReader, n int) []float64 {
	buf := make([]byte, 1024*8)
	out := make([]float64, n)
	for i := range out {
		if got, _ := r.Read(buf); got != len(buf) {
			panic("short read")
		}
		out[i] = r.level
	}
	return out
}

func TestReaderGlidesTowardTarget(t *testing.T) {
	s, _ := newTestState()
	s.observe(&starfield.Uniforms{MouseActiveFactor: 1, TwinkleIntensity: 1})
	r := &padReader{st: s}

	levels := readLevels(r, 60)
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			t.Fatalf("level fell at buffer %d: %v -> %v", i, levels[i-1], levels[i])
		}
	}
	// 60 buffers is about 1.4 s, a little over two glide constants.
	if last := levels[len(levels)-1]; last < 0.8 || last >= 1 {
		t.Errorf("level after 1.4s = %v, want in [0.8, 1)", last)
	}
}

func TestReaderFadesWhenFramesStop(t *testing.T) {
	s, clock := newTestState()
	s.observe(&starfield.Uniforms{MouseActiveFactor: 1, TwinkleIntensity: 1})
	r := &padReader{st: s, level: 1}

	clock.t = clock.t.Add(time.Second)
	levels := readLevels(r, 60)
	if last := levels[len(levels)-1]; last > 0.2 {
		t.Errorf("level = %v after frames stopped, want near silence", last)
	}
}

func TestReaderSilentBeforeFirstFrame(t *testing.T) {
	s, _ := newTestState()
	r := &padReader{st: s}
	buf := make([]byte, 256*8)
	r.Read(buf)
	for i := 0; i < 256; i++ {
		l := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8:]))
		rt := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8+4:]))
		if l != 0 || rt != 0 {
			t.Fatalf("sample %d = (%v, %v), want silence", i, l, rt)
		}
	}
}

func TestReaderEmptyBuffer(t *testing.T) {
	s, _ := newTestState()
	r := &padReader{st: s}
	if n, err := r.Read(make([]byte, 7)); n != 0 || err != nil {
		t.Errorf("Read(7 bytes) = %d, %v", n, err)
	}
}

func TestSoftSatBounded(t *testing.T) {
	for _, x := range []float64{-100, -2, -1, -0.5, 0, 0.5, 1, 2, 100} {
		if y := softSat(x); y < -1 || y > 1 {
			t.Errorf("softSat(%v) = %v, outside [-1,1]", x, y)
		}
	}
}

type fakePlayer struct {
	mu      sync.Mutex
	playing bool
	closed  bool
	volume  float64
}

func (f *fakePlayer) SetVolume(v float64) { f.mu.Lock(); f.volume = v; f.mu.Unlock() }
func (f *fakePlayer) Play() { f.mu.Lock(); f.playing = true; f.mu.Unlock() }
func (f *fakePlayer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing, f.closed = false, true
	return nil
}

func fakePad() (*Pad, chan struct{}, *[]*fakePlayer) {
	ready := make(chan struct{})
	var mu sync.Mutex
	players := new([]*fakePlayer)
	p := &Pad{
		ready: ready,
		st:    newState(),
		newPlayer: func(io.Reader) player {
			f := &fakePlayer{}
			mu.Lock()
			*players = append(*players, f)
			mu.Unlock()
			return f
		},
	}
	return p, ready, players
}

func TestStartThenClose(t *testing.T) {
	p, ready, players := fakePad()
	close(ready)
	p.Start(0.5)
	p.Start(0.3)
	if len(*players) != 2 || !(*players)[0].closed || !(*players)[1].playing || (*players)[1].volume != 0.3 {
		t.Fatalf("restart did not replace the player: %+v", *players)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if !(*players)[1].closed {
		t.Error("Close left the player open")
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestCloseBeforeDeviceReady(t *testing.T) {
	p, ready, players := fakePad()
	done := make(chan struct{})
	go func() {
		p.Start(0.5)
		close(done)
	}()
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	close(ready)
	<-done
	if len(*players) != 0 {
		t.Errorf("Start after Close created %d players", len(*players))
	}
}

func TestStartCloseConcurrently(t *testing.T) {
	for i := 0; i < 50; i++ {
		p, ready, players := fakePad()
		close(ready)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); p.Start(0.5) }()
		go func() { defer wg.Done(); p.Close() }()
		wg.Wait()
		for _, f := range *players {
			if !f.closed {
				t.Fatalf("iteration %d: player left playing after Close", i)
			}
		}
	}
}
