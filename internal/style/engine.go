package style

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/toonvert/toonvert/internal/frame"
)

// MaxBatchItems caps the number of frames one batch request may carry.
// The cap is enforced before any item is processed.
const MaxBatchItems = 10

// Engine runs styles from a registry. Convert is a pure function of its
// inputs apart from unseeded quantization, so a single Engine is shared
// across all requests.
type Engine struct {
	reg     *Registry
	workers int
}

// NewEngine returns an engine over reg. workers bounds batch concurrency;
// values below 1 fall back to GOMAXPROCS.
func NewEngine(reg *Registry, workers int) *Engine {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{reg: reg, workers: workers}
}

// Styles returns the names the engine can convert to.
func (e *Engine) Styles() []string {
	return e.reg.Styles()
}

// Convert renders f in the named style. The input frame is never
// modified. Any failure, including a panic inside a stage, comes back as
// a ProcessingError wrapping the cause.
func (e *Engine) Convert(f *frame.Frame, styleName string) (out *frame.Frame, err error) {
	cfg, err := e.reg.Resolve(styleName)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = newProcessingError(styleName, fmt.Errorf("panic: %v", r))
		}
	}()
	out, err = e.run(f, cfg)
	if err != nil {
		return nil, newProcessingError(styleName, err)
	}
	return out, nil
}

func (e *Engine) run(f *frame.Frame, cfg Config) (*frame.Frame, error) {
	switch cfg.Kind {
	case KindSketch:
		return PencilSketch(f, cfg.Sketch)
	case KindOil:
		return OilPainting(f, cfg.Oil), nil
	case KindWatercolor:
		return Watercolor(f, cfg.Water), nil
	default:
		return e.runGeneric(f, cfg)
	}
}

// runGeneric is the cartoon chain. Edges come from the original frame so
// line placement does not drift with smoothing strength; quantization
// runs on the smoothed frame where flat regions cluster cleanly.
func (e *Engine) runGeneric(f *frame.Frame, cfg Config) (*frame.Frame, error) {
	smoothed := Smooth(f, cfg.Smooth)
	mask := ExtractEdges(f, cfg.Edges)
	quantized, _ := Quantize(smoothed, cfg.Quant)

	enhanced, err := Enhance(quantized, cfg.Enhance)
	if err != nil {
		return nil, err
	}
	out, err := Compose(enhanced, mask, cfg.Sharpen)
	if err != nil {
		return nil, err
	}
	if cfg.LocalContrast {
		out, err = LocalContrast(out, 0, 0)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// BatchItem is one entry of a batch conversion. An item may arrive
// pre-failed (Err set) when its upstream decode already rejected it; the
// engine passes the failure through without touching the other items.
type BatchItem struct {
	ID    string
	Frame *frame.Frame
	Err   error
}

// BatchResult pairs an item ID with its converted frame or its error.
// Exactly one of Frame and Err is set.
type BatchResult struct {
	ID    string
	Frame *frame.Frame
	Err   error
}

// ConvertBatch converts every item to the named style. An oversized batch
// or an unknown style fails the whole call before any work starts; after
// that, failures stay per-item and the remaining items still convert.
// Results keep the input order.
func (e *Engine) ConvertBatch(items []BatchItem, styleName string) ([]BatchResult, error) {
	if len(items) > MaxBatchItems {
		return nil, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(items), MaxBatchItems)
	}
	if _, err := e.reg.Resolve(styleName); err != nil {
		return nil, err
	}

	results := make([]BatchResult, len(items))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i, item := range items {
		results[i].ID = item.ID
		if item.Err != nil {
			results[i].Err = newProcessingError(styleName, item.Err)
			continue
		}
		wg.Add(1)
		go func(i int, f *frame.Frame) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i].Frame, results[i].Err = e.Convert(f, styleName)
		}(i, item.Frame)
	}
	wg.Wait()
	return results, nil
}
