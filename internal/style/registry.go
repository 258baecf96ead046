package style

import "fmt"

// PipelineKind selects which pipeline a style runs. The generic chain
// covers every cartoon variant; the NPR kinds have their own stage order
// that diverges too much from smooth-edge-quantize-compose to be worth
// forcing into one shape.
type PipelineKind int

const (
	KindGeneric PipelineKind = iota
	KindSketch
	KindOil
	KindWatercolor
)

// Config is the immutable parameter record for one named style. Configs
// are created at registry initialization and never mutated; the engine
// reads them concurrently without synchronization.
type Config struct {
	Name string
	Kind PipelineKind

	// Generic chain parameters.
	Smooth        SmoothParams
	Edges         EdgeParams
	Quant         QuantParams
	Enhance       EnhanceParams
	Sharpen       SharpenParams
	LocalContrast bool

	// NPR parameters, used by the matching Kind only.
	Sketch SketchParams
	Oil    OilParams
	Water  WatercolorParams
}

// Registry maps style names to their configs. It is populated once at
// process start and read-only afterwards; Resolve and Styles are safe for
// concurrent use once registration is done.
type Registry struct {
	byName map[string]Config
	names  []string // registration order, drives the public style listing
}

// NewRegistry returns a registry preloaded with the built-in styles:
// four cartoon variants of the generic chain ordered fast to slow, and
// the three NPR stylizers.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Config)}
	for _, cfg := range builtinStyles() {
		r.Register(cfg)
	}
	return r
}

// Register adds or replaces a style. Replacing keeps the style's position
// in the listing, so parameter tuning does not reorder the public list.
func (r *Registry) Register(cfg Config) {
	if _, exists := r.byName[cfg.Name]; !exists {
		r.names = append(r.names, cfg.Name)
	}
	r.byName[cfg.Name] = cfg
}

// Resolve returns the config for a style name.
func (r *Registry) Resolve(name string) (Config, error) {
	cfg, ok := r.byName[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return cfg, nil
}

// Styles returns the registered style names in a stable order.
func (r *Registry) Styles() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// builtinStyles is the style table. The four generic variants differ only
// in smoothing strength, cluster count and edge-fusion breadth; adding a
// variant is a new entry here, not a new code path.
func builtinStyles() []Config {
	return []Config{
		{
			Name:   "classic",
			Kind:   KindGeneric,
			Smooth: SmoothParams{Radius: 4, ColorSigma: 300, SpaceSigma: 300, Passes: 2},
			Edges: EdgeParams{
				Methods: []EdgeMethodParams{
					{Method: EdgeAdaptiveMean, MedianSize: 7, Block: 9, C: 2},
				},
				Fusion: FuseAND,
			},
			Quant:   QuantParams{K: 12},
			Enhance: EnhanceParams{SatScale: 1.2},
			Sharpen: SharpenParams{Mode: SharpenKernel},
		},
		{
			Name:   "smooth",
			Kind:   KindGeneric,
			Smooth: SmoothParams{Radius: 7, ColorSigma: 120, SpaceSigma: 120, Passes: 2},
			Edges: EdgeParams{
				Methods: []EdgeMethodParams{
					{Method: EdgeAdaptiveMean, MedianSize: 7, Block: 9, C: 5},
				},
				Fusion: FuseAND,
			},
			Quant: QuantParams{K: 6},
		},
		{
			Name:   "edge-heavy",
			Kind:   KindGeneric,
			Smooth: SmoothParams{Radius: 4, ColorSigma: 250, SpaceSigma: 250, Passes: 1},
			Edges: EdgeParams{
				Methods: []EdgeMethodParams{
					{Method: EdgeCanny, Low: 50, High: 150},
					{Method: EdgeAdaptiveMean, MedianSize: 5, Block: 9, C: 2},
				},
				Fusion:      FuseOR,
				CloseRadius: 1,
			},
			Quant:   QuantParams{K: 14},
			Enhance: EnhanceParams{SatScale: 1.3, ValScale: 1.1},
		},
		{
			Name:   "ultra",
			Kind:   KindGeneric,
			Smooth: SmoothParams{Radius: 4, ColorSigma: 75, SpaceSigma: 75, Passes: 3},
			Edges: EdgeParams{
				Methods: []EdgeMethodParams{
					{Method: EdgeGradient, Threshold: 50},
					{Method: EdgeAdaptiveMean, MedianSize: 7, Block: 11, C: 2},
					{Method: EdgeCanny, Low: 30, High: 100, Dilate: true},
				},
				Fusion:      FuseAND,
				CloseRadius: 1,
			},
			Quant:         QuantParams{K: 16},
			Enhance:       EnhanceParams{SatScale: 1.4, LightScale: 1.05},
			Sharpen:       SharpenParams{Mode: SharpenUnsharp, Radius: 2.0, Amount: 0.5},
			LocalContrast: true,
		},
		{
			Name: "pencil-sketch",
			Kind: KindSketch,
			Sketch: SketchParams{
				BlurRadius: 8,
				Smooth:     SmoothParams{Radius: 3, ColorSigma: 40, SpaceSigma: 40, Passes: 1},
			},
		},
		{
			Name: "pencil-sketch-color",
			Kind: KindSketch,
			Sketch: SketchParams{
				Color:      true,
				BlurRadius: 8,
				Smooth:     SmoothParams{Radius: 3, ColorSigma: 40, SpaceSigma: 40, Passes: 1},
			},
		},
		{
			Name: "oil-painting",
			Kind: KindOil,
			Oil:  OilParams{Radius: 4},
		},
		{
			Name: "watercolor",
			Kind: KindWatercolor,
			Water: WatercolorParams{
				Smooth:     SmoothParams{Radius: 5, ColorSigma: 150, SpaceSigma: 150, Passes: 1},
				OilRadius:  3,
				BlurRadius: 2.0,
				SatBoost:   0.2,
			},
		},
	}
}
