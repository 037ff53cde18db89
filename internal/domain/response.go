package domain

// PriceBucket is one bar of the price histogram: a half-open interval [Min, Max).
type PriceBucket struct {
	// Label is the display label (e.g., "$100-$150" or "$350+")
	Label string `json:"label"`

	// Min is the inclusive lower bound
	Min float64 `json:"min"`

	// Max is the exclusive upper bound; nil for the open-ended final bucket
	Max *float64 `json:"max,omitempty"`

	// Count is the number of flights priced within the bucket
	Count int `json:"count"`
}

// Contains reports whether price falls within the bucket.
func (b PriceBucket) Contains(price float64) bool {
	if price < b.Min {
		return false
	}
	return b.Max == nil || price < *b.Max
}

// PriceBounds is the observed price span of a result set.
type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SearchResponse represents a filtered, sorted and aggregated view of one search.
type SearchResponse struct {
	// SearchCriteria contains the original search parameters
	SearchCriteria SearchCriteria `json:"searchCriteria"`

	// Metadata contains information about the search execution
	Metadata SearchMetadata `json:"metadata"`

	// Flights contains the flights after filtering and sorting
	Flights []Flight `json:"flights"`

	// Histogram summarizes the filtered flights by price
	Histogram []PriceBucket `json:"histogram"`
}

// SearchMetadata contains metadata about the search and the derived view.
type SearchMetadata struct {
	// TotalResults is the number of normalized flights before filtering
	TotalResults int `json:"totalResults"`

	// FilteredResults is the number of flights in the view
	FilteredResults int `json:"filteredResults"`

	// SearchTimeMs is the upstream search duration in milliseconds
	SearchTimeMs int64 `json:"searchTimeMs"`

	// AvailableAirlines lists the airline names present in the unfiltered result set
	AvailableAirlines []string `json:"availableAirlines"`

	// PriceBounds is the price span of the unfiltered result set
	PriceBounds PriceBounds `json:"priceBounds"`
}

// NewSearchResponse creates a SearchResponse and fills the count fields from the given slices.
func NewSearchResponse(criteria SearchCriteria, flights []Flight, histogram []PriceBucket, metadata SearchMetadata) SearchResponse {
	if flights == nil {
		flights = []Flight{}
	}
	if histogram == nil {
		histogram = []PriceBucket{}
	}
	if metadata.AvailableAirlines == nil {
		metadata.AvailableAirlines = []string{}
	}
	metadata.FilteredResults = len(flights)

	return SearchResponse{
		SearchCriteria: criteria,
		Metadata:       metadata,
		Flights:        flights,
		Histogram:      histogram,
	}
}
