package main

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/jo-hoe/pngreduce/internal/pipeline"
)

const usage = "Usage: reduce <input.png> <output.png>"

func main() {
	if len(os.Args) != 3 {
		fmt.Println(usage)
		os.Exit(1)
	}

	// Keep pipeline logging off the CLI output; the summary line owns stdout
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(os.Args[1], os.Args[2], os.Stdout); err != nil {
		log.Printf("failed to reduce %s: %v", os.Args[1], err)
		panic(err)
	}
}

// run reads a PNG from inputPath, halves both dimensions with the default
// resampling filter, re-encodes at best compression and writes the result
// to outputPath. The summary line goes to out.
func run(inputPath, outputPath string, out io.Writer) error {
	imageData, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", inputPath, err)
	}

	config, err := png.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return fmt.Errorf("failed to decode PNG image %s: %w", inputPath, err)
	}

	reduced, err := pipeline.ExecuteCommands(imageData, []pipeline.CommandConfig{
		{Name: "ReduceCommand", Params: map[string]any{"factor": 2, "filter": pipeline.DefaultFilter}},
		{Name: "OptimizeCommand", Params: map[string]any{}},
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, reduced, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputPath, err)
	}

	fmt.Fprintf(out, "Reduced %s -> %s (%dx%d to %dx%d)\n",
		inputPath, outputPath,
		config.Width, config.Height,
		config.Width/2, config.Height/2)
	return nil
}
