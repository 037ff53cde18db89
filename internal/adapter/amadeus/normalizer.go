package amadeus

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/timeutil"
)

// durationTokenRegex matches ISO-8601 durations such as "PT7H25M", "PT45M" or "P1DT2H".
var durationTokenRegex = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?)?$`)

// Normalize converts one upstream offer into a Flight. Only the first itinerary
// is represented. Instants without an offset are read in loc, and clock times
// are rendered in loc.
func Normalize(offer Offer, carriers map[string]string, loc *time.Location) (domain.Flight, error) {
	if err := offer.Validate(); err != nil {
		return domain.Flight{}, err
	}
	if loc == nil {
		loc = time.UTC
	}

	itinerary := offer.Itineraries[0]
	first := itinerary.Segments[0]
	last := itinerary.Segments[len(itinerary.Segments)-1]

	departure, err := timeutil.ParseInstant(first.Departure.At, loc)
	if err != nil {
		return domain.Flight{}, domain.NewMalformedOfferError(offer.ID, "departure: %v", err)
	}
	arrival, err := timeutil.ParseInstant(last.Arrival.At, loc)
	if err != nil {
		return domain.Flight{}, domain.NewMalformedOfferError(offer.ID, "arrival: %v", err)
	}

	elapsed := int(math.Floor(arrival.Sub(departure).Minutes()))
	if elapsed < 0 {
		return domain.Flight{}, domain.NewMalformedOfferError(offer.ID, "arrival %s precedes departure %s", last.Arrival.At, first.Departure.At)
	}

	price, err := parsePrice(offer.Price.amount())
	if err != nil {
		return domain.Flight{}, domain.NewMalformedOfferError(offer.ID, "%v", err)
	}

	code := offer.carrierCode()
	name := carriers[code]
	if name == "" {
		name = code
	}

	duration, ok := formatDurationToken(itinerary.Duration)
	if !ok {
		duration = domain.FormatMinutes(elapsed)
	}

	return domain.Flight{
		ID:              offer.ID,
		Airline:         name,
		AirlineCode:     code,
		Origin:          first.Departure.IATACode,
		Destination:     last.Arrival.IATACode,
		DepartureTime:   timeutil.FormatClockTime(departure, loc),
		ArrivalTime:     timeutil.FormatClockTime(arrival, loc),
		Duration:        duration,
		DurationMinutes: elapsed,
		Stops:           len(itinerary.Segments) - 1,
		Price:           price,
	}, nil
}

// normalizeAll decodes and normalizes raw offers, skipping malformed ones and
// duplicate IDs. It returns the flights in upstream order and the skip count.
func normalizeAll(raw []json.RawMessage, carriers map[string]string, loc *time.Location, log *logger.Logger) ([]domain.Flight, int) {
	flights := make([]domain.Flight, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	skipped := 0

	for i, msg := range raw {
		var offer Offer
		if err := json.Unmarshal(msg, &offer); err != nil {
			skipped++
			log.Warn().Int("index", i).Err(err).Msg("Skipping undecodable offer")
			continue
		}

		flight, err := Normalize(offer, carriers, loc)
		if err != nil {
			skipped++
			log.Warn().Int("index", i).Err(err).Msg("Skipping malformed offer")
			continue
		}

		if _, dup := seen[flight.ID]; dup {
			skipped++
			log.Warn().Str("offer_id", flight.ID).Msg("Skipping duplicate offer id")
			continue
		}
		seen[flight.ID] = struct{}{}
		flights = append(flights, flight)
	}

	return flights, skipped
}

// formatDurationToken renders an ISO-8601 duration as "Xh Ym", "Xh" or "Ym",
// keeping only the components the token carries. Day components fold into hours.
func formatDurationToken(token string) (string, bool) {
	m := durationTokenRegex.FindStringSubmatch(token)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return "", false
	}

	days, _ := strconv.Atoi(m[1])
	hours, _ := strconv.Atoi(m[2])
	mins, _ := strconv.Atoi(m[3])
	hasHours := m[1] != "" || m[2] != ""
	hasMins := m[3] != ""

	switch {
	case hasHours && hasMins:
		return domain.FormatHoursMinutes(days*24+hours, mins), true
	case hasHours:
		return strconv.Itoa(days*24+hours) + "h", true
	default:
		return strconv.Itoa(mins) + "m", true
	}
}

// parsePrice parses a decimal amount that must be finite and non-negative.
func parsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, fmt.Errorf("price %q is not a finite non-negative number", s)
	}
	return price, nil
}
