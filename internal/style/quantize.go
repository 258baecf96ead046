package style

import (
	"math"
	"math/rand"
	"time"

	"github.com/toonvert/toonvert/internal/frame"
)

// QuantParams configures the color quantization stage.
type QuantParams struct {
	// K is the number of cluster centers. Clamped to [1, pixel count].
	K int

	// MaxIterations bounds the refinement loop of a single run.
	// 0 means the default of 100.
	MaxIterations int

	// Epsilon stops a run once no center moved farther than this.
	// 0 means the default of 0.2.
	Epsilon float64

	// Restarts is how many independent runs to perform; the run with the
	// lowest total distortion wins. 0 means the default of 10.
	Restarts int

	// Seed fixes the pseudo-random center initialization for
	// reproducible output. 0 draws a fresh seed per call, so repeated
	// conversions of the same input may differ.
	Seed int64
}

// Palette is the result of clustering: the k color centers and, for every
// pixel of the source frame, the index of the center it was assigned to.
type Palette struct {
	Centers [][3]uint8
	Labels  []int
}

// Quantize reduces a color frame's palette by k-means clustering in RGB.
// Pixels are points in the 3-dimensional color cube; centers are
// initialized from randomly chosen pixels and refined by alternating
// nearest-center assignment with center recomputation until movement
// falls below Epsilon or MaxIterations is hit. The whole run repeats
// Restarts times and the lowest-distortion result is kept.
//
// The returned frame has every pixel replaced by its center's color. When
// the image holds fewer distinct colors than K, clusters collapse onto
// duplicate centers; an empty cluster keeps its previous position rather
// than being respawned. Degeneracy is silent, never an error.
func Quantize(f *frame.Frame, p QuantParams) (*frame.Frame, *Palette) {
	w, h := f.Width, f.Height
	n := w * h

	k := p.K
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	maxIter := p.MaxIterations
	if maxIter <= 0 {
		maxIter = 100
	}
	epsilon := p.Epsilon
	if epsilon <= 0 {
		epsilon = 0.2
	}
	restarts := p.Restarts
	if restarts <= 0 {
		restarts = 10
	}
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	points := make([][3]float64, n)
	for i := 0; i < n; i++ {
		points[i] = [3]float64{
			float64(f.Pix[i*3+0]),
			float64(f.Pix[i*3+1]),
			float64(f.Pix[i*3+2]),
		}
	}

	bestDistortion := math.Inf(1)
	var bestCenters [][3]float64
	var bestLabels []int

	for r := 0; r < restarts; r++ {
		centers, labels, distortion := kmeansRun(points, k, maxIter, epsilon, rng)
		if distortion < bestDistortion {
			bestDistortion = distortion
			bestCenters = centers
			bestLabels = labels
		}
	}

	pal := &Palette{
		Centers: make([][3]uint8, k),
		Labels:  bestLabels,
	}
	for i, c := range bestCenters {
		pal.Centers[i] = [3]uint8{
			frame.ClampU8(c[0]),
			frame.ClampU8(c[1]),
			frame.ClampU8(c[2]),
		}
	}

	out := frame.NewRGB(w, h)
	for i, label := range bestLabels {
		c := pal.Centers[label]
		out.Pix[i*3+0] = c[0]
		out.Pix[i*3+1] = c[1]
		out.Pix[i*3+2] = c[2]
	}
	return out, pal
}

// kmeansRun performs one seeded run: random pixel centers, then
// assign/recompute until convergence. Returns the centers, per-pixel
// labels and the summed squared distance of the final assignment.
func kmeansRun(points [][3]float64, k, maxIter int, epsilon float64, rng *rand.Rand) ([][3]float64, []int, float64) {
	centers := make([][3]float64, k)
	for i := range centers {
		centers[i] = points[rng.Intn(len(points))]
	}

	labels := make([]int, len(points))
	sums := make([][3]float64, k)
	counts := make([]int, k)

	for iter := 0; iter < maxIter; iter++ {
		for i := range sums {
			sums[i] = [3]float64{}
			counts[i] = 0
		}

		for i, pt := range points {
			best := 0
			bestDist := math.Inf(1)
			for j, c := range centers {
				d := sqDist(pt, c)
				if d < bestDist {
					bestDist = d
					best = j
				}
			}
			labels[i] = best
			sums[best][0] += pt[0]
			sums[best][1] += pt[1]
			sums[best][2] += pt[2]
			counts[best]++
		}

		moved := 0.0
		for j := range centers {
			if counts[j] == 0 {
				continue
			}
			next := [3]float64{
				sums[j][0] / float64(counts[j]),
				sums[j][1] / float64(counts[j]),
				sums[j][2] / float64(counts[j]),
			}
			if shift := math.Sqrt(sqDist(centers[j], next)); shift > moved {
				moved = shift
			}
			centers[j] = next
		}
		if moved < epsilon {
			break
		}
	}

	var distortion float64
	for i, pt := range points {
		distortion += sqDist(pt, centers[labels[i]])
	}
	return centers, labels, distortion
}

func sqDist(a, b [3]float64) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return dr*dr + dg*dg + db*db
}
