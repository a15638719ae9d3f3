package pipeline

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// DefaultFilter is the resampling filter used when none is configured.
const DefaultFilter = "lanczos"

// Scaler resamples an image to the given target dimensions.
// Implementations reject non-positive target dimensions.
type Scaler interface {
	Scale(src image.Image, width, height int) (image.Image, error)
}

// lanczosScaler downsamples with the Lanczos kernel from disintegration/imaging.
type lanczosScaler struct{}

func (lanczosScaler) Scale(src image.Image, width, height int) (image.Image, error) {
	if err := checkTargetSize(width, height); err != nil {
		return nil, err
	}
	return imaging.Resize(src, width, height, imaging.Lanczos), nil
}

// kernelScaler wraps one of the golang.org/x/image/draw scaler kernels.
type kernelScaler struct {
	scaler xdraw.Scaler
}

func (s kernelScaler) Scale(src image.Image, width, height int) (image.Image, error) {
	if err := checkTargetSize(width, height); err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	s.scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

func checkTargetSize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid target dimensions %dx%d: both must be at least 1", width, height)
	}
	return nil
}

var scalers = map[string]Scaler{
	"lanczos":    lanczosScaler{},
	"catmullrom": kernelScaler{scaler: xdraw.CatmullRom},
	"bilinear":   kernelScaler{scaler: xdraw.BiLinear},
	"nearest":    kernelScaler{scaler: xdraw.NearestNeighbor},
}

// ScalerByName returns the scaler registered under the given filter name
func ScalerByName(name string) (Scaler, error) {
	scaler, ok := scalers[name]
	if !ok {
		return nil, fmt.Errorf("unknown resampling filter: %s", name)
	}
	return scaler, nil
}

// FilterNames returns the names of all available resampling filters, sorted
func FilterNames() []string {
	names := make([]string, 0, len(scalers))
	for name := range scalers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
