package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/test/testutil"
)

type bucketSummary struct {
	label string
	count int
}

func summarize(buckets []domain.PriceBucket) []bucketSummary {
	out := make([]bucketSummary, len(buckets))
	for i, b := range buckets {
		out[i] = bucketSummary{label: b.Label, count: b.Count}
	}
	return out
}

func flightsPriced(prices ...float64) []domain.Flight {
	flights := make([]domain.Flight, len(prices))
	for i, p := range prices {
		flights[i] = testutil.NewFlight(string(rune('a'+i)), "KLM", p, 0, 400)
	}
	return flights
}

// TestHistogram_Empty tests the default buckets returned for an empty result set.
func TestHistogram_Empty(t *testing.T) {
	expected := []bucketSummary{
		{"$0-$300", 0},
		{"$300-$500", 0},
		{"$500-$700", 0},
		{"$700-$1000", 0},
		{"$1000+", 0},
	}

	assert.Equal(t, expected, summarize(Histogram(nil)))
	assert.Equal(t, expected, summarize(Histogram([]domain.Flight{})))
	assert.Equal(t, expected, summarize(DefaultHistogram()))
}

// TestHistogram_Buckets tests the dynamic bucket layout.
func TestHistogram_Buckets(t *testing.T) {
	tests := []struct {
		name     string
		prices   []float64
		expected []bucketSummary
	}{
		{
			name:   "three spread prices",
			prices: []float64{120, 340, 999},
			expected: []bucketSummary{
				{"$0-$200", 1},
				{"$200-$400", 1},
				{"$800-$1000", 1},
			},
		},
		{
			name:     "identical prices use the minimum step",
			prices:   []float64{200, 200, 200},
			expected: []bucketSummary{{"$200-$250", 3}},
		},
		{
			name:   "maximum lands in the open-ended bucket",
			prices: []float64{100, 350},
			expected: []bucketSummary{
				{"$100-$150", 1},
				{"$350+", 1},
			},
		},
		{
			name:   "fractional prices",
			prices: []float64{12.5, 60},
			expected: []bucketSummary{
				{"$0-$50", 1},
				{"$50-$100", 1},
			},
		},
		{
			name:   "step rounds up to a multiple of 50",
			prices: []float64{1000, 1260, 1500, 1510},
			expected: []bucketSummary{
				{"$900-$1050", 1},
				{"$1200-$1350", 1},
				{"$1500-$1650", 2},
			},
		},
		{
			name:     "single flight",
			prices:   []float64{725},
			expected: []bucketSummary{{"$700-$750", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Histogram(flightsPriced(tt.prices...))
			assert.Equal(t, tt.expected, summarize(result))
		})
	}
}

// TestHistogram_BucketBounds tests the numeric bounds of bounded and open buckets.
func TestHistogram_BucketBounds(t *testing.T) {
	result := Histogram(flightsPriced(100, 350))

	require.Len(t, result, 2)
	assert.Equal(t, 100.0, result[0].Min)
	require.NotNil(t, result[0].Max)
	assert.Equal(t, 150.0, *result[0].Max)

	assert.Equal(t, 350.0, result[1].Min)
	assert.Nil(t, result[1].Max)
}

// TestHistogram_CountsSumToInput tests that every flight lands in exactly one bucket.
func TestHistogram_CountsSumToInput(t *testing.T) {
	prices := []float64{45, 99.99, 100, 149, 150, 333, 480, 512.4, 870, 1201, 1999}

	result := Histogram(flightsPriced(prices...))

	total := 0
	for _, b := range result {
		assert.Positive(t, b.Count, "zero-count bucket %s should be dropped", b.Label)
		total += b.Count
	}
	assert.Equal(t, len(prices), total)
}

// TestHistogram_AscendingAndDisjoint tests bucket ordering.
func TestHistogram_AscendingAndDisjoint(t *testing.T) {
	result := Histogram(flightsPriced(10, 220, 480, 800, 1100, 1400))

	for i := 1; i < len(result); i++ {
		prev := result[i-1]
		require.NotNil(t, prev.Max, "only the last bucket may be open-ended")
		assert.LessOrEqual(t, *prev.Max, result[i].Min)
	}
}

// TestHistogram_ReflectsInput tests that the histogram follows the flights passed in.
func TestHistogram_ReflectsInput(t *testing.T) {
	flights := flightsPriced(120, 340, 999)

	filtered := Apply(flights, domain.FilterState{PriceRange: domain.PriceRange{Min: 0, Max: 500}}, domain.SortByPrice)

	assert.Equal(t, []bucketSummary{
		{"$100-$150", 1},
		{"$300-$350", 1},
	}, summarize(Histogram(filtered)))
}

// TestHistogramStep tests the step rounding and its floor.
func TestHistogramStep(t *testing.T) {
	tests := []struct {
		min, max float64
		expected float64
	}{
		{100, 100, 50},
		{0, 10, 50},
		{0, 250, 50},
		{0, 251, 100},
		{120, 999, 200},
		{0, 5000, 1000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, histogramStep(tt.min, tt.max), "span %v..%v", tt.min, tt.max)
	}
}
