package pipeline

import (
	"fmt"
	"image/png"
	"log/slog"
)

// ReduceParams represents typed parameters for the reduce command
type ReduceParams struct {
	Factor int
	Filter string
}

// NewReduceParamsFromMap creates ReduceParams from a generic map.
// Both parameters are optional: factor defaults to 2 (halving) and
// filter to the default resampling filter.
func NewReduceParamsFromMap(params map[string]any) (*ReduceParams, error) {
	factor := GetIntParam(params, "factor", 2)
	filter := GetStringParam(params, "filter", DefaultFilter)

	if factor < 2 {
		return nil, fmt.Errorf("factor must be at least 2, got %d", factor)
	}
	if _, err := ScalerByName(filter); err != nil {
		return nil, err
	}

	return &ReduceParams{
		Factor: factor,
		Filter: filter,
	}, nil
}

// ReduceCommand shrinks a PNG by an integer factor on both axes.
// Target dimensions are computed with floor division; a source axis
// smaller than the factor yields a zero target, which the resampling
// layer rejects.
type ReduceCommand struct {
	name   string
	params *ReduceParams
}

// NewReduceCommand creates a new reduce command from configuration parameters
func NewReduceCommand(params map[string]any) (Command, error) {
	typedParams, err := NewReduceParamsFromMap(params)
	if err != nil {
		return nil, err
	}

	return &ReduceCommand{
		name:   "ReduceCommand",
		params: typedParams,
	}, nil
}

// NewReduceCommandWithParams creates a new reduce command from concrete typed parameters
func NewReduceCommandWithParams(factor int, filter string) (*ReduceCommand, error) {
	if factor < 2 {
		return nil, fmt.Errorf("factor must be at least 2, got %d", factor)
	}
	if _, err := ScalerByName(filter); err != nil {
		return nil, err
	}

	return &ReduceCommand{
		name: "ReduceCommand",
		params: &ReduceParams{
			Factor: factor,
			Filter: filter,
		},
	}, nil
}

// Name returns the command name
func (c *ReduceCommand) Name() string {
	return c.name
}

// Execute decodes the PNG, resamples it to the floor-divided dimensions and re-encodes it
func (c *ReduceCommand) Execute(imageData []byte) ([]byte, error) {
	slog.Debug("ReduceCommand: decoding image",
		"input_size_bytes", len(imageData))

	img, err := decodePNG(imageData)
	if err != nil {
		slog.Error("ReduceCommand: failed to decode PNG image", "error", err)
		return nil, fmt.Errorf("failed to decode PNG image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	reducedWidth := originalWidth / c.params.Factor
	reducedHeight := originalHeight / c.params.Factor

	slog.Debug("ReduceCommand: resampling",
		"original_width", originalWidth,
		"original_height", originalHeight,
		"reduced_width", reducedWidth,
		"reduced_height", reducedHeight,
		"factor", c.params.Factor,
		"filter", c.params.Filter)

	scaler, err := ScalerByName(c.params.Filter)
	if err != nil {
		return nil, err
	}

	reduced, err := scaler.Scale(img, reducedWidth, reducedHeight)
	if err != nil {
		slog.Error("ReduceCommand: resampling failed",
			"error", err,
			"reduced_width", reducedWidth,
			"reduced_height", reducedHeight)
		return nil, fmt.Errorf("failed to resample image: %w", err)
	}

	out, err := encodePNG(reduced, png.DefaultCompression)
	if err != nil {
		slog.Error("ReduceCommand: failed to encode reduced image", "error", err)
		return nil, fmt.Errorf("failed to encode reduced PNG image: %w", err)
	}

	slog.Debug("ReduceCommand: reduction complete",
		"output_size_bytes", len(out))

	return out, nil
}

// GetFactor returns the configured reduction factor
func (c *ReduceCommand) GetFactor() int {
	return c.params.Factor
}

// GetFilter returns the configured resampling filter name
func (c *ReduceCommand) GetFilter() string {
	return c.params.Filter
}

// GetParams returns the typed parameters
func (c *ReduceCommand) GetParams() *ReduceParams {
	return c.params
}

func init() {
	// Register the command in the default registry
	if err := DefaultRegistry.Register("ReduceCommand", NewReduceCommand); err != nil {
		panic(fmt.Sprintf("failed to register ReduceCommand: %v", err))
	}
}
