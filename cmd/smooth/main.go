// Command smooth runs edge-preserving diffusion over image files.
//
// Usage:
//
//	smooth [flags] input.png [more inputs...]
//
// Each input is written to the output directory as <name>-smooth.png.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/diffuse"
)

func main() {
	var (
		strategy   = flag.String("strategy", "tensor", "diffusion strategy: tensor or scalar")
		iterations = flag.Int("iterations", 0, "update passes, 1-20 (0 keeps the strategy default)")
		strength   = flag.Float64("strength", -1, "diffusion strength, 0-20 (negative keeps the default)")
		edgeThresh = flag.Float64("edge-threshold", 0.9, "tensor: across-edge suppression, 0-2")
		aniso      = flag.Float64("anisotropy", 0.3, "tensor: isotropic vs edge-aligned blend, 0-1")
		sigma      = flag.Float64("sigma", 1.0, "tensor: structure tensor smoothing scale, 0.5-2")
		dt         = flag.Float64("dt", 0.1, "tensor: time step, 0.01-0.25")
		alpha      = flag.Float64("alpha", 0.6, "scalar: strength in homogeneous regions, 0-1")
		kappa      = flag.Float64("kappa", 4, "scalar: edge sensitivity, 1-50")
		deltaT     = flag.Float64("delta-t", 0.3, "scalar: time step, 0.01-0.5")
		gradScale  = flag.Float64("gradient-scale", 255, "scalar: gradient units per unit intensity")
		neighbors  = flag.Int("neighbors", 4, "scalar: neighbor directions, 4 or 8")
		scaleDiag  = flag.Bool("scale-diagonal", false, "scalar: also scale the diagonal conductance argument")
		edge       = flag.String("edge", "clamp", "edge policy: clamp, wrap or none")
		workers    = flag.Int("workers", 0, "tile workers per image (0 = GOMAXPROCS)")
		jobs       = flag.Int("j", 1, "images processed concurrently")
		outDir     = flag.String("o", ".", "output directory")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	diffuse.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := buildConfig(*strategy, *edge)
	if err != nil {
		log.Fatal(err)
	}
	if *iterations > 0 {
		cfg.Iterations = *iterations
	}
	if *strength >= 0 {
		cfg.Strength = float32(*strength)
	}
	cfg.EdgeThreshold = float32(*edgeThresh)
	cfg.Anisotropy = float32(*aniso)
	cfg.TensorSigma = float32(*sigma)
	cfg.DT = float32(*dt)
	cfg.Alpha = float32(*alpha)
	cfg.Kappa = float32(*kappa)
	cfg.DeltaT = float32(*deltaT)
	cfg.GradientScale = float32(*gradScale)
	cfg.Neighbors = *neighbors
	cfg.ScaleDiagonalConductance = *scaleDiag

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	limit := max(1, *jobs)
	perImage := *workers
	if perImage <= 0 && limit > 1 {
		perImage = max(1, runtime.GOMAXPROCS(0)/limit)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, in := range flag.Args() {
		g.Go(func() error {
			return smoothFile(ctx, cfg, perImage, in, *outDir)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

// buildConfig returns the default config for the named strategy with the
// edge policy applied.
func buildConfig(strategy, edge string) (diffuse.Config, error) {
	s, err := diffuse.ParseStrategy(strategy)
	if err != nil {
		return diffuse.Config{}, err
	}
	cfg := diffuse.DefaultTensorConfig()
	if s == diffuse.StrategyScalar {
		cfg = diffuse.DefaultScalarConfig()
	}
	cfg.EdgeMode, err = diffuse.ParseEdgeMode(edge)
	return cfg, err
}

// outputPath maps dir and input "a/b/photo.jpg" to "dir/photo-smooth.png".
func outputPath(dir, input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"-smooth.png")
}

func smoothFile(ctx context.Context, cfg diffuse.Config, workers int, input, dir string) error {
	img, err := diffuse.LoadImage(input)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	eng, err := diffuse.NewEngine(cfg, diffuse.WithWorkers(workers))
	if err != nil {
		return err
	}
	defer eng.Close()

	start := time.Now()
	out, err := eng.Run(ctx, img)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	path := outputPath(dir, input)
	if err := out.SavePNG(path); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("%s -> %s (%dx%d, %v, %s)\n", input, path, img.Width(), img.Height(),
		cfg.Strategy, time.Since(start).Round(time.Millisecond))
	return nil
}
