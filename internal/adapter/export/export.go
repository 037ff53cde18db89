// Package export writes flight views in downloadable formats.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jszwec/csvutil"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// CSVContentType is the media type of CSV exports.
const CSVContentType = "text/csv; charset=utf-8"

// FlightRow is one CSV record. Prices keep two decimals.
type FlightRow struct {
	ID              string `csv:"id"`
	Airline         string `csv:"airline"`
	AirlineCode     string `csv:"airline_code"`
	Origin          string `csv:"origin"`
	Destination     string `csv:"destination"`
	DepartureTime   string `csv:"departure_time"`
	ArrivalTime     string `csv:"arrival_time"`
	Duration        string `csv:"duration"`
	DurationMinutes int    `csv:"duration_minutes"`
	Stops           int    `csv:"stops"`
	Price           string `csv:"price"`
}

// NewFlightRow converts a flight into its CSV record.
func NewFlightRow(f domain.Flight) FlightRow {
	return FlightRow{
		ID:              f.ID,
		Airline:         f.Airline,
		AirlineCode:     f.AirlineCode,
		Origin:          f.Origin,
		Destination:     f.Destination,
		DepartureTime:   f.DepartureTime,
		ArrivalTime:     f.ArrivalTime,
		Duration:        f.Duration,
		DurationMinutes: f.DurationMinutes,
		Stops:           f.Stops,
		Price:           strconv.FormatFloat(f.Price, 'f', 2, 64),
	}
}

// WriteCSV writes flights as CSV with a header row, in the given order.
// An empty view still produces the header.
func WriteCSV(w io.Writer, flights []domain.Flight) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(FlightRow{}); err != nil {
		return fmt.Errorf("encode csv header: %w", err)
	}
	for _, f := range flights {
		if err := enc.Encode(NewFlightRow(f)); err != nil {
			return fmt.Errorf("encode flight %q: %w", f.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// FlightsCSV renders flights as a CSV document in memory.
func FlightsCSV(flights []domain.Flight) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, flights); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
