// Package http provides the HTTP handler layer for the flight offer API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// SearchFlightsRequest represents the request body for a flight search.
type SearchFlightsRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK")
	Origin string `json:"origin" example:"JFK"`

	// Destination is the IATA code of the arrival airport (e.g., "LHR")
	Destination string `json:"destination" example:"LHR"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate" example:"2025-12-15"`

	// ReturnDate is an optional return date in YYYY-MM-DD format
	ReturnDate string `json:"returnDate,omitempty" example:"2025-12-22"`

	// Passengers is the number of adult passengers (1-9, default 1)
	Passengers int `json:"passengers" example:"1"`

	// Filters contains optional filtering criteria
	Filters *FilterDTO `json:"filters,omitempty"`

	// SortBy specifies how to sort results: price or duration
	SortBy string `json:"sortBy,omitempty" example:"price"`
}

// FilterDTO represents optional filters for a flight view.
// Example: {"minPrice": 100, "maxPrice": 500, "stops": [0, 1], "airlines": ["BRITISH AIRWAYS"]}
type FilterDTO struct {
	// MinPrice keeps flights priced at or above this amount
	MinPrice *float64 `json:"minPrice,omitempty" example:"100"`

	// MaxPrice keeps flights priced at or below this amount
	MaxPrice *float64 `json:"maxPrice,omitempty" example:"500"`

	// Stops keeps flights with these stop counts; 2 means two or more
	Stops []int `json:"stops,omitempty" example:"0,1"`

	// Airlines keeps flights operated by these airline display names
	Airlines []string `json:"airlines,omitempty" example:"BRITISH AIRWAYS"`
}

// ViewQuery holds the filter and sort query parameters of a session view.
type ViewQuery struct {
	Filters FilterDTO
	SortBy  string
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Valid sort options.
var validSortOptions = map[string]bool{
	"price":    true,
	"duration": true,
	"":         true, // Empty is valid (defaults to price)
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the search request and returns any validation errors.
// Airport codes are normalized to uppercase.
func (r *SearchFlightsRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateOrigin(errs)
	r.validateDestination(errs)
	r.validateOriginDestinationDifferent(errs)
	r.validateDates(errs)
	r.validatePassengers(errs)
	validateSortBy(errs, r.SortBy)
	if r.Filters != nil {
		validateFilters(errs, "filters.", r.Filters)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchFlightsRequest) validateOrigin(errs *ValidationErrors) {
	if r.Origin == "" {
		errs.Add("origin", "origin is required")
		return
	}

	origin := strings.ToUpper(strings.TrimSpace(r.Origin))
	if !airportCodePattern.MatchString(origin) {
		errs.Add("origin", "origin must be a valid 3-letter IATA airport code")
		return
	}
	r.Origin = origin
}

func (r *SearchFlightsRequest) validateDestination(errs *ValidationErrors) {
	if r.Destination == "" {
		errs.Add("destination", "destination is required")
		return
	}

	dest := strings.ToUpper(strings.TrimSpace(r.Destination))
	if !airportCodePattern.MatchString(dest) {
		errs.Add("destination", "destination must be a valid 3-letter IATA airport code")
		return
	}
	r.Destination = dest
}

func (r *SearchFlightsRequest) validateOriginDestinationDifferent(errs *ValidationErrors) {
	if r.Origin != "" && r.Destination != "" &&
		strings.EqualFold(r.Origin, r.Destination) {
		errs.Add("destination", "origin and destination must be different")
	}
}

func (r *SearchFlightsRequest) validateDates(errs *ValidationErrors) {
	departure, ok := parseDateField(errs, "departureDate", r.DepartureDate, true)
	if r.ReturnDate == "" {
		return
	}

	ret, retOK := parseDateField(errs, "returnDate", r.ReturnDate, false)
	if ok && retOK && ret.Before(departure) {
		errs.Add("returnDate", "returnDate must not be before departureDate")
	}
}

func parseDateField(errs *ValidationErrors, field, value string, required bool) (time.Time, bool) {
	if value == "" {
		if required {
			errs.Add(field, field+" is required")
		}
		return time.Time{}, false
	}
	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		errs.Add(field, field+" is not a valid date")
		return time.Time{}, false
	}
	return t, true
}

func (r *SearchFlightsRequest) validatePassengers(errs *ValidationErrors) {
	// Zero means the default of one passenger.
	if r.Passengers < 0 {
		errs.Add("passengers", fmt.Sprintf("passengers must be at least %d", domain.MinPassengers))
		return
	}
	if r.Passengers > domain.MaxPassengers {
		errs.Add("passengers", fmt.Sprintf("passengers cannot exceed %d", domain.MaxPassengers))
	}
}

func validateSortBy(errs *ValidationErrors, sortBy string) {
	if !validSortOptions[strings.ToLower(sortBy)] {
		errs.Add("sortBy", "sortBy must be one of: price, duration")
	}
}

func validateFilters(errs *ValidationErrors, prefix string, f *FilterDTO) {
	if f.MinPrice != nil && (*f.MinPrice < 0 || math.IsNaN(*f.MinPrice)) {
		errs.Add(prefix+"minPrice", "minPrice must be a non-negative number")
	}
	if f.MaxPrice != nil && (*f.MaxPrice < 0 || math.IsNaN(*f.MaxPrice)) {
		errs.Add(prefix+"maxPrice", "maxPrice must be a non-negative number")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		errs.Add(prefix+"maxPrice", "maxPrice must be greater than or equal to minPrice")
	}

	for i, s := range f.Stops {
		if s < 0 || s > domain.StopsTwoOrMore {
			errs.Add(fmt.Sprintf("%sstops[%d]", prefix, i), "stops values must be 0, 1 or 2")
		}
	}

	for i, name := range f.Airlines {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			errs.Add(fmt.Sprintf("%sairlines[%d]", prefix, i), "airline name must not be empty")
		}
		f.Airlines[i] = trimmed
	}
}

// ParseViewQuery reads the view query parameters: minPrice, maxPrice,
// stops (comma-separated or repeated), airlines (comma-separated or repeated)
// and sortBy.
func ParseViewQuery(c echo.Context) (*ViewQuery, error) {
	errs := &ValidationErrors{}
	q := &ViewQuery{SortBy: c.QueryParam("sortBy")}

	q.Filters.MinPrice = parsePriceParam(errs, "minPrice", c.QueryParam("minPrice"))
	q.Filters.MaxPrice = parsePriceParam(errs, "maxPrice", c.QueryParam("maxPrice"))

	for _, v := range splitListParam(c.QueryParams()["stops"]) {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Add("stops", fmt.Sprintf("stops value %q is not a number", v))
			continue
		}
		q.Filters.Stops = append(q.Filters.Stops, n)
	}
	q.Filters.Airlines = splitListParam(c.QueryParams()["airlines"])

	validateSortBy(errs, q.SortBy)
	validateFilters(errs, "", &q.Filters)

	if errs.HasErrors() {
		return nil, errs
	}
	return q, nil
}

func parsePriceParam(errs *ValidationErrors, name, raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) {
		errs.Add(name, name+" must be a number")
		return nil
	}
	return &v
}

// splitListParam flattens repeated and comma-separated values, dropping blanks.
func splitListParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
