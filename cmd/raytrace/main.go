// Copyright © 2015-2016 Galvanized Logic. All rights reserved.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command raytrace loads a scene file, renders it with the CPU or GPU
// backend, and writes the result as a PNG. It is the CLI collaborator
// the core (scene/bvh/shade/cpu/gpu) deliberately knows nothing about,
// in the spirit of eg/eg.go's example-selector main.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gazed/raytracer/bvh"
	"github.com/gazed/raytracer/config"
	"github.com/gazed/raytracer/cpu"
	"github.com/gazed/raytracer/gpu"
	"github.com/gazed/raytracer/image"
	"github.com/gazed/raytracer/imgdiff"
	"github.com/gazed/raytracer/scene"
	"github.com/gazed/raytracer/scenefile"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run implements main's logic as a function returning an exit code,
// so tests can drive it without os.Exit tearing down the process.
func run(args []string) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fs := flag.NewFlagSet("raytrace", flag.ContinueOnError)
	scenePath := fs.String("scene", "", "path to the scene description file (required)")
	backendFlag := fs.String("backend", "", "rendering backend: cpu or gpu (default: from config, or cpu)")
	outPath := fs.String("out", "", "output PNG path (default: the scene file's output directive)")
	configPath := fs.String("config", "raytrace.yaml", "path to an optional render config file")
	goldPath := fs.String("golden", "", "path to a gold PNG to compare the render against (within config's tolerance)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "raytrace: -scene is required")
		fs.Usage()
		return 2
	}

	var opts []config.Option
	if *backendFlag != "" {
		opts = append(opts, config.WithBackend(config.Backend(*backendFlag)))
	}
	cfg, err := config.Load(*configPath, opts...)
	if err != nil {
		logger.Error("could not load config", "path", *configPath, "err", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		return 1
	}

	f, err := os.Open(*scenePath)
	if err != nil {
		logger.Error("could not open scene file", "path", *scenePath, "err", err)
		return 1
	}
	sc, err := scenefile.Parse(f)
	f.Close()
	if err != nil {
		var perr *scenefile.ParseError
		if errors.As(err, &perr) {
			logger.Error("scene file parse error", "line", perr.Line, "err", perr.Message)
		} else {
			logger.Error("could not parse scene file", "err", err)
		}
		return 1
	}
	if err := sc.Validate(); err != nil {
		logger.Error("invalid scene", "err", err)
		return 1
	}

	out := sc.OutputPath
	if *outPath != "" {
		out = *outPath
	}
	if out == "" {
		fmt.Fprintln(os.Stderr, "raytrace: no output path (scene file has no 'output' directive and -out was not given)")
		return 2
	}

	start := time.Now()
	img, backendUsed, err := render(&sc, cfg, logger)
	if err != nil {
		logger.Error("render failed", "err", err)
		return 1
	}
	elapsed := time.Since(start)

	if err := writePNG(img, out); err != nil {
		logger.Error("could not write output", "path", out, "err", err)
		return 1
	}

	if *goldPath != "" {
		result, err := compareToGolden(img, *goldPath, cfg.Tolerance)
		if err != nil {
			logger.Error("could not compare against golden image", "path", *goldPath, "err", err)
			return 1
		}
		if result.DiffCount > 0 {
			logger.Error("render does not match golden image within tolerance",
				"path", *goldPath, "tolerance", cfg.Tolerance, "diff_pixels", result.DiffCount)
			return 1
		}
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stdout, "rendered %d pixels with the %s backend in %s -> %s\n",
		sc.Width*sc.Height, backendUsed, elapsed.Round(time.Millisecond), out)
	return 0
}

// render dispatches to the configured backend, falling back to the
// CPU backend on a GPU render error when cfg.GPUFallback is set,
// matching the spec's "render errors in the GPU backend may fall back
// to the CPU backend if the caller requests it" policy.
func render(sc *scene.Scene, cfg config.Config, logger *slog.Logger) (*image.Image, config.Backend, error) {
	if cfg.Backend == config.GPU {
		img, err := gpu.Render(sc)
		if err == nil {
			return img, config.GPU, nil
		}
		if !cfg.GPUFallback {
			return nil, "", err
		}
		logger.Warn("gpu render failed, falling back to cpu", "err", err)
	}
	tree := bvh.Build(sc.Primitives)
	sc.Primitives = tree.Primitives()
	return cpu.Render(sc, tree, cfg.Workers), config.CPU, nil
}

func writePNG(img *image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()
	if err := image.Encode(img, f); err != nil {
		return fmt.Errorf("could not encode %s: %w", path, err)
	}
	return nil
}

// compareToGolden decodes the PNG at goldPath and diffs it against img
// using imgdiff.Compare, the CLI's collaborator for the spec's
// gold-image testable properties.
func compareToGolden(img *image.Image, goldPath string, tolerance uint8) (imgdiff.Result, error) {
	f, err := os.Open(goldPath)
	if err != nil {
		return imgdiff.Result{}, fmt.Errorf("could not open %s: %w", goldPath, err)
	}
	defer f.Close()
	gold, err := image.Decode(f)
	if err != nil {
		return imgdiff.Result{}, fmt.Errorf("could not decode %s: %w", goldPath, err)
	}
	return imgdiff.Compare(img, gold, tolerance)
}
