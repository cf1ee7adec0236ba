// Command backdrop-snapshot renders the background headlessly and writes the
// final frame as a PNG composited over the page colour.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"

	"backdrop/internal/app"
	"backdrop/internal/background"
	"backdrop/internal/config"
	"backdrop/internal/core"
	"backdrop/internal/frame"
	"backdrop/internal/render"
)

func main() {
	cfg := config.NewConfig()
	cfg.Bind(flag.CommandLine)
	frames := flag.Int("frames", 120, "frames to advance before capturing")
	out := flag.String("out", "backdrop.png", "output PNG path")
	params := flag.Bool("params", false, "print the parameter snapshot and exit")
	flag.Parse()
	if err := cfg.Load(); err != nil {
		log.Fatal(err)
	}

	size := core.Size{W: cfg.Width, H: cfg.Height}
	loop := frame.NewLoop(size)
	surface := render.NewCanvasSurface(size)
	engine := background.New(cfg.Engine)
	if err := engine.Start(app.NewHost(loop, surface)); err != nil {
		log.Fatal(err)
	}
	defer engine.Stop()

	if *params {
		printParams(engine.Parameters())
		return
	}

	for i := 0; i < *frames; i++ {
		loop.Tick()
	}

	img := composite(surface.Image(), engine.Theme().Background, cfg.Opacity)
	if err := writePNG(*out, img); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%dx%d, %d frames, seed %d)\n", *out, size.W, size.H, engine.Frames(), cfg.Engine.Seed)
}

// composite lays the layer over an opaque page at the given opacity.
func composite(layer *image.RGBA, page color.NRGBA, opacity float64) *image.RGBA {
	dst := image.NewRGBA(layer.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(page), image.Point{}, draw.Src)
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, dst.Bounds(), layer, layer.Bounds().Min, mask, image.Point{}, draw.Over)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func printParams(snap core.ParameterSnapshot) {
	for _, group := range snap.Groups {
		fmt.Printf("%s\n", group.Name)
		if group.Summary != "" {
			fmt.Printf("  (%s)\n", group.Summary)
		}
		for _, p := range group.Params {
			fmt.Printf("  %-20s %-10s %s\n", p.Key, p.Value, p.Description)
		}
	}
}
