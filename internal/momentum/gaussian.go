package momentum

import (
	"math"
	"sort"

	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// GaussianSmooth convolves xs with a normalised Gaussian of width sigma truncated
// at four standard deviations. Edges reflect the series (d c b a | a b c d) so the
// tails are not pulled towards zero. The output has the input's length.
func GaussianSmooth(xs []float64, sigma float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	if sigma <= 0 {
		copy(out, xs)
		return out
	}

	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2
	for i := range xs {
		var sum float64
		for k := -radius; k <= radius; k++ {
			sum += kernel[k+radius] * xs[reflect(i+k, len(xs))]
		}
		out[i] = sum
	}
	return out
}

func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	var total float64
	for k := -radius; k <= radius; k++ {
		w := math.Exp(-0.5 * float64(k*k) / (sigma * sigma))
		kernel[k+radius] = w
		total += w
	}
	for i := range kernel {
		kernel[i] /= total
	}
	return kernel
}

// reflect maps an out-of-range index back into [0, n) by mirroring about the
// outer edge of the first and last samples.
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

func sortMarkers(ms []model.GoalMarker) {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].Minute < ms[j].Minute
	})
}
