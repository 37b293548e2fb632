package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/fogleman/gg"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render a scene with Monte Carlo path tracing"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "scene",
			Value: "default",
			Usage: "built-in scene id or path to a .json scene file",
		},
		cli.StringFlag{
			Name:  "output",
			Value: "out.png",
			Usage: "PNG file to write",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "image width in pixels (default: scene setting)",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "image height in pixels (default: scene setting)",
		},
		cli.IntFlag{
			Name:  "samples",
			Usage: "samples per pixel (default: scene setting)",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "base random seed (default: scene setting)",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "number of render workers, 0 uses every CPU",
		},
		cli.Float64Flag{
			Name:  "fov",
			Usage: "horizontal field of view in degrees (default: scene setting)",
		},
		cli.BoolFlag{
			Name:  "list",
			Usage: "list built-in scenes and exit",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("list") {
		for _, info := range scene.ListBuiltinScenes() {
			fmt.Printf("  %-10s %s\n", info.ID, info.Description)
		}
		return nil
	}

	selectedScene, err := createScene(c.String("scene"))
	if err != nil {
		return err
	}
	applyFlags(c, selectedScene)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	raytracer := renderer.NewRaytracer(selectedScene, renderer.NewDefaultLogger())
	fb, _, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}

	output := c.String("output")
	if err := savePNG(output, fb); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", output)
	return nil
}

// createScene resolves a built-in scene id or loads a scene file
func createScene(name string) (*scene.Scene, error) {
	if loaders.IsSceneFile(name) {
		return loaders.LoadScene(name)
	}
	return scene.NewBuiltinScene(name)
}

// applyFlags overrides scene sampling settings with the flags that were given
func applyFlags(c *cli.Context, s *scene.Scene) {
	config := &s.SamplingConfig
	if c.IsSet("width") {
		config.Width = c.Int("width")
	}
	if c.IsSet("height") {
		config.Height = c.Int("height")
	}
	if c.IsSet("samples") {
		config.SamplesPerPixel = c.Int("samples")
	}
	if c.IsSet("seed") {
		config.Seed = c.Int64("seed")
	}
	if c.IsSet("workers") {
		config.NumWorkers = c.Int("workers")
	}
	if c.IsSet("fov") {
		config.HorizontalFOV = c.Float64("fov") * math.Pi / 180
	}
}

// savePNG clamps the framebuffer to 8 bits and writes it as a PNG
func savePNG(filename string, fb *renderer.Framebuffer) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := gg.NewContextForRGBA(fb.ToRGBA()).SavePNG(filename); err != nil {
		return fmt.Errorf("failed to save PNG: %w", err)
	}
	return nil
}
