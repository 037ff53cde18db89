// Package domain contains the core business entities and rules for the flight offer explorer.
// These entities are upstream-agnostic: nothing shaped like the third-party payload leaks past the normalizer.
package domain

import "strconv"

// Flight represents a single normalized flight offer.
// A Flight is created only by the offer normalizer and is never mutated afterwards;
// filtering and sorting produce new slices.
type Flight struct {
	// ID is the opaque offer identifier sourced from upstream, unique within one result set
	ID string `json:"id"`

	// Airline is the resolved carrier display name (falls back to AirlineCode)
	Airline string `json:"airline"`

	// AirlineCode is the upstream carrier code (e.g., "BA")
	AirlineCode string `json:"airlineCode"`

	// Origin is the IATA code of the first segment's departure airport
	Origin string `json:"origin"`

	// Destination is the IATA code of the last segment's arrival airport
	Destination string `json:"destination"`

	// DepartureTime is the clock-time rendering of the first departure instant (e.g., "08:05")
	DepartureTime string `json:"departureTime"`

	// ArrivalTime is the clock-time rendering of the last arrival instant
	ArrivalTime string `json:"arrivalTime"`

	// Duration is the human-readable elapsed time derived from the upstream duration token (e.g., "7h 25m")
	Duration string `json:"duration"`

	// DurationMinutes is the wall-clock minutes between first departure and last arrival
	DurationMinutes int `json:"durationMinutes"`

	// Stops is the number of intermediate segments (0 = non-stop)
	Stops int `json:"stops"`

	// Price is the total offer price in the search currency
	Price float64 `json:"price"`
}

// FormatMinutes renders a minute count as "Xh Ym", "Xh" or "Ym".
func FormatMinutes(totalMinutes int) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	switch {
	case hours > 0 && mins > 0:
		return FormatHoursMinutes(hours, mins)
	case hours > 0:
		return strconv.Itoa(hours) + "h"
	default:
		return strconv.Itoa(mins) + "m"
	}
}

// FormatHoursMinutes renders hours and minutes as "Xh Ym".
func FormatHoursMinutes(hours, mins int) string {
	return strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "m"
}
