package usecase

import (
	"math"
	"strconv"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// Histogram layout constants.
const (
	// HistogramBuckets is the number of bounded buckets before the open-ended one
	HistogramBuckets = 5

	// HistogramStepUnit is the granularity bucket widths are rounded up to
	HistogramStepUnit = 50
)

// defaultBucketEdges are the price edges shown before any result is known.
var defaultBucketEdges = []float64{0, 300, 500, 700, 1000}

// Histogram groups flights into price buckets: five contiguous half-open
// buckets whose width is a multiple of 50, then an open-ended bucket.
// Buckets with no flights are dropped. Empty input returns the default
// buckets with zero counts.
func Histogram(flights []domain.Flight) []domain.PriceBucket {
	if len(flights) == 0 {
		return DefaultHistogram()
	}

	minPrice, maxPrice := priceSpan(flights)
	step := histogramStep(minPrice, maxPrice)
	base := math.Floor(minPrice/step) * step

	buckets := make([]domain.PriceBucket, 0, HistogramBuckets+1)
	for i := 0; i < HistogramBuckets; i++ {
		lo := base + float64(i)*step
		buckets = append(buckets, newBucket(lo, lo+step))
	}
	buckets = append(buckets, newOpenBucket(base+HistogramBuckets*step))

	for _, f := range flights {
		for i := range buckets {
			if buckets[i].Contains(f.Price) {
				buckets[i].Count++
				break
			}
		}
	}

	result := buckets[:0]
	for _, b := range buckets {
		if b.Count > 0 {
			result = append(result, b)
		}
	}
	return result
}

// DefaultHistogram returns the fixed zero-count buckets used for an empty result set.
func DefaultHistogram() []domain.PriceBucket {
	buckets := make([]domain.PriceBucket, 0, len(defaultBucketEdges))
	for i := 0; i < len(defaultBucketEdges)-1; i++ {
		buckets = append(buckets, newBucket(defaultBucketEdges[i], defaultBucketEdges[i+1]))
	}
	return append(buckets, newOpenBucket(defaultBucketEdges[len(defaultBucketEdges)-1]))
}

// histogramStep rounds a fifth of the price span up to a multiple of 50, never below 50.
func histogramStep(minPrice, maxPrice float64) float64 {
	raw := (maxPrice - minPrice) / HistogramBuckets
	step := math.Ceil(raw/HistogramStepUnit) * HistogramStepUnit
	if step < HistogramStepUnit {
		step = HistogramStepUnit
	}
	return step
}

func newBucket(lo, hi float64) domain.PriceBucket {
	upper := hi
	return domain.PriceBucket{
		Label: "$" + formatAmount(lo) + "-$" + formatAmount(hi),
		Min:   lo,
		Max:   &upper,
	}
}

func newOpenBucket(lo float64) domain.PriceBucket {
	return domain.PriceBucket{
		Label: "$" + formatAmount(lo) + "+",
		Min:   lo,
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
