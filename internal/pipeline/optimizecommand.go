package pipeline

import (
	"fmt"
	"image/png"
	"log/slog"
)

var compressionLevels = map[string]png.CompressionLevel{
	"best":    png.BestCompression,
	"default": png.DefaultCompression,
	"speed":   png.BestSpeed,
}

// OptimizeParams represents typed parameters for the optimize command
type OptimizeParams struct {
	Level string
}

// NewOptimizeParamsFromMap creates OptimizeParams from a generic map.
// The level parameter is optional and defaults to "best".
func NewOptimizeParamsFromMap(params map[string]any) (*OptimizeParams, error) {
	level := GetStringParam(params, "level", "best")
	if _, ok := compressionLevels[level]; !ok {
		return nil, fmt.Errorf("unknown compression level: %s", level)
	}

	return &OptimizeParams{Level: level}, nil
}

// OptimizeCommand re-encodes a PNG at the configured compression level
// to shrink the file without touching the pixels.
type OptimizeCommand struct {
	name   string
	params *OptimizeParams
}

// NewOptimizeCommand creates a new optimize command from configuration parameters
func NewOptimizeCommand(params map[string]any) (Command, error) {
	typedParams, err := NewOptimizeParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &OptimizeCommand{
		name:   "OptimizeCommand",
		params: typedParams,
	}, nil
}

// Name returns the command name
func (c *OptimizeCommand) Name() string {
	return c.name
}

// Execute decodes the PNG and re-encodes it at the configured compression level
func (c *OptimizeCommand) Execute(imageData []byte) ([]byte, error) {
	slog.Debug("OptimizeCommand: decoding image",
		"input_size_bytes", len(imageData),
		"level", c.params.Level)

	img, err := decodePNG(imageData)
	if err != nil {
		slog.Error("OptimizeCommand: failed to decode PNG image", "error", err)
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	out, err := encodePNG(img, compressionLevels[c.params.Level])
	if err != nil {
		slog.Error("OptimizeCommand: failed to re-encode image", "error", err)
		return nil, fmt.Errorf("failed to re-encode PNG image: %w", err)
	}

	slog.Debug("OptimizeCommand: re-encoding complete",
		"output_size_bytes", len(out))

	return out, nil
}

// GetLevel returns the configured compression level name
func (c *OptimizeCommand) GetLevel() string {
	return c.params.Level
}

// GetParams returns the typed parameters
func (c *OptimizeCommand) GetParams() *OptimizeParams {
	return c.params
}

func init() {
	// Register the command in the default registry
	if err := DefaultRegistry.Register("OptimizeCommand", NewOptimizeCommand); err != nil {
		panic(fmt.Sprintf("failed to register OptimizeCommand: %v", err))
	}
}
