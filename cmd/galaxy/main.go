// Command galaxy shows the starfield in a desktop window.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/ogier/pflag"

	"galaxy/internal/ambience"
	"galaxy/internal/cli"
	"galaxy/internal/galaxy"
	"galaxy/internal/glhost"
	"galaxy/internal/preset"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "galaxy: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	runtime.LockOSThread()

	fs := pflag.NewFlagSet("galaxy", pflag.ExitOnError)
	cfg := cli.Bind(fs)
	width := fs.Int("width", glhost.WindowWidth, "window width")
	height := fs.Int("height", glhost.WindowHeight, "window height")
	floating := fs.Bool("floating", false, "keep the window above others")
	withAmbience := fs.Bool("ambience", false, "play an ambient pad that follows the pointer")
	volume := fs.Float64("volume", 0.08, "ambience volume")
	if err := cli.Parse(fs, args); err != nil {
		return err
	}

	logger := cfg.Logger()
	galaxy.SetLogger(logger)

	params, err := cfg.Params()
	if err != nil {
		return err
	}

	win, err := glhost.Open(glhost.Options{
		Width:       *width,
		Height:      *height,
		Transparent: params.Transparent,
		Floating:    *floating,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	opts := []galaxy.Option{galaxy.WithPixelRatio(win.PixelRatio())}
	if *withAmbience {
		pad, err := ambience.Open()
		if err != nil {
			logger.Warn("audio init failed, continuing without sound", "err", err)
		} else {
			defer pad.Close()
			go func() {
				time.Sleep(100 * time.Millisecond) // let the audio context initialize
				pad.Start(*volume)
			}()
			opts = append(opts, galaxy.WithFrameHook(pad.Observe))
		}
	}

	g := galaxy.New(win.Host(), params, opts...)
	if err := g.Attach(); err != nil {
		return err
	}
	defer g.Detach()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		win.RequestClose()
	}()

	if cfg.Preset != "" {
		go func() {
			if err := preset.WatchParams(ctx, cfg.Preset, cfg.Load, g.SetParams); err != nil {
				logger.Warn("live reload disabled", "err", err)
			}
		}()
	}

	win.Run()
	return nil
}
