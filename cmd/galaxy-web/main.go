// Command galaxy-web runs the starfield on Ebitengine. Built with
// GOOS=js GOARCH=wasm it runs inside a web page.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ogier/pflag"

	"galaxy/internal/cli"
	"galaxy/internal/ebitenhost"
	"galaxy/internal/galaxy"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "galaxy-web: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("galaxy-web", pflag.ExitOnError)
	cfg := cli.Bind(fs)
	width := fs.Int("width", 1280, "window width")
	height := fs.Int("height", 720, "window height")
	if err := cli.Parse(fs, args); err != nil {
		return err
	}
	galaxy.SetLogger(cfg.Logger())

	params, err := cfg.Params()
	if err != nil {
		return err
	}

	h := ebitenhost.New()
	h.VisibleUnfocused = runtime.GOOS != "js"

	ratio := 1.0
	if m := ebiten.Monitor(); m != nil {
		ratio = m.DeviceScaleFactor()
	}
	g := galaxy.New(h.Galaxy(), params, galaxy.WithPixelRatio(ratio))
	if err := g.Attach(); err != nil {
		return err
	}
	defer g.Detach()

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("galaxy")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGameWithOptions(h, h.RunOptions(params.Transparent))
}
