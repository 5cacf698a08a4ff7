// Command galaxy-snap renders one frame of the starfield to a PNG without a
// display.
package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/ogier/pflag"
	"golang.org/x/image/draw"

	"galaxy/internal/cli"
	"galaxy/internal/galaxy"
	"galaxy/internal/soft"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "galaxy-snap: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("galaxy-snap", pflag.ExitOnError)
	cfg := cli.Bind(fs)
	width := fs.Int("width", 1280, "image width")
	height := fs.Int("height", 720, "image height")
	at := fs.Float64("time", 0, "animated seconds to render at")
	ss := fs.Int("supersample", 1, "render at N times the size and downscale")
	out := fs.StringP("out", "o", "galaxy.png", "output file")
	if err := cli.Parse(fs, args); err != nil {
		return err
	}
	galaxy.SetLogger(cfg.Logger())

	if *width <= 0 || *height <= 0 || *ss < 1 {
		return errors.New("width, height and supersample must be positive")
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	frame, err := snap(params, *width * *ss, *height * *ss, *at)
	if err != nil {
		return err
	}

	var img image.Image = frame
	if *ss > 1 {
		dst := image.NewNRGBA(image.Rect(0, 0, *width, *height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), frame, frame.Bounds(), draw.Src, nil)
		img = dst
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", *out, err)
	}
	return f.Close()
}

// snap runs a galaxy on a soft host for one frame at t seconds.
func snap(params galaxy.Params, width, height int, t float64) (*image.NRGBA, error) {
	h := soft.New(width, height)
	g := galaxy.New(h.Galaxy(), params)
	if err := g.Attach(); err != nil {
		return nil, err
	}
	defer g.Detach()

	h.SetVisible(true)
	if g.State() != galaxy.Running {
		return nil, galaxy.ErrNoGraphics
	}
	h.Advance(0)
	if t > 0 {
		h.Advance(t)
	}
	if g.Halted() || h.Frame() == nil {
		return nil, errors.New("render failed")
	}
	return h.Frame(), nil
}
