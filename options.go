package paperdoll

import "github.com/gogpu/paperdoll/internal/raster"

// Interpolation selects the resampling filter used when a constrained
// candidate is resized into its slot region.
type Interpolation = raster.InterpolationMode

// Resampling filters.
const (
	// InterpNearest selects the closest pixel (no interpolation).
	// The right choice for pixel-art fragments.
	InterpNearest = raster.InterpNearest

	// InterpBilinear interpolates between 4 neighboring pixels.
	// This is the default.
	InterpBilinear = raster.InterpBilinear
)

// Option configures a Factory during creation.
//
// Example:
//
//	// Defaults: bilinear resampling, no render cache
//	pd := paperdoll.NewFactory()
//
//	// Pixel-art assets with a small render cache
//	pd := paperdoll.NewFactory(
//	    paperdoll.WithInterpolation(paperdoll.InterpNearest),
//	    paperdoll.WithRenderCache(8),
//	)
type Option func(*factoryOptions)

// factoryOptions holds optional configuration for Factory creation.
type factoryOptions struct {
	interp         Interpolation
	renderCacheCap int
}

// defaultOptions returns the default factory options.
func defaultOptions() factoryOptions {
	return factoryOptions{
		interp:         InterpBilinear,
		renderCacheCap: 0, // caching disabled
	}
}

// WithInterpolation sets the resampling filter for constrained placement.
func WithInterpolation(m Interpolation) Option {
	return func(o *factoryOptions) {
		o.interp = m
	}
}

// WithRenderCache enables memoization of rendered canvases, keeping up to
// capacity entries. Cached canvases are keyed by doll id and model version;
// any edit invalidates them naturally. Cached renders return a clone, so
// callers may modify the result freely.
func WithRenderCache(capacity int) Option {
	return func(o *factoryOptions) {
		o.renderCacheCap = capacity
	}
}
