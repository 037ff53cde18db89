package amadeus

import (
	"encoding/json"
	"strings"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// tokenResponse is the OAuth2 client-credentials response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// searchEnvelope is the flight-offers response body. Offers are kept raw so
// that one offer with an unexpected shape does not fail the whole search.
type searchEnvelope struct {
	Data         []json.RawMessage `json:"data"`
	Dictionaries Dictionaries      `json:"dictionaries"`
}

// Dictionaries holds the lookup tables returned alongside the offers.
type Dictionaries struct {
	// Carriers maps carrier codes to display names (e.g., "BA" -> "BRITISH AIRWAYS")
	Carriers map[string]string `json:"carriers"`
}

// Offer is one priced flight offer as returned by the upstream API.
type Offer struct {
	ID                     string      `json:"id"`
	Itineraries            []Itinerary `json:"itineraries"`
	Price                  OfferPrice  `json:"price"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes"`
}

// Itinerary is one directional journey of an offer.
type Itinerary struct {
	// Duration is an ISO-8601 duration token (e.g., "PT7H25M")
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// Segment is one flight leg.
type Segment struct {
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
}

// Endpoint is a segment's departure or arrival point.
type Endpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	// At is a local ISO-8601 date-time, usually without offset (e.g., "2025-12-15T08:05:00")
	At string `json:"at"`
}

// OfferPrice carries decimal amounts as strings.
type OfferPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
}

// Validate checks the structural requirements of an offer before normalization.
func (o Offer) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return domain.NewMalformedOfferError("", "offer has no id")
	}
	if len(o.Itineraries) == 0 {
		return domain.NewMalformedOfferError(o.ID, "offer has no itineraries")
	}
	segments := o.Itineraries[0].Segments
	if len(segments) == 0 {
		return domain.NewMalformedOfferError(o.ID, "first itinerary has no segments")
	}
	if segments[0].Departure.IATACode == "" || segments[0].Departure.At == "" {
		return domain.NewMalformedOfferError(o.ID, "first segment has no departure")
	}
	last := segments[len(segments)-1]
	if last.Arrival.IATACode == "" || last.Arrival.At == "" {
		return domain.NewMalformedOfferError(o.ID, "last segment has no arrival")
	}
	if o.carrierCode() == "" {
		return domain.NewMalformedOfferError(o.ID, "offer has no carrier code")
	}
	if o.Price.amount() == "" {
		return domain.NewMalformedOfferError(o.ID, "offer has no price")
	}
	return nil
}

// carrierCode returns the first validating airline, falling back to the first segment's carrier.
func (o Offer) carrierCode() string {
	for _, code := range o.ValidatingAirlineCodes {
		if code = strings.TrimSpace(code); code != "" {
			return code
		}
	}
	if len(o.Itineraries) > 0 && len(o.Itineraries[0].Segments) > 0 {
		return strings.TrimSpace(o.Itineraries[0].Segments[0].CarrierCode)
	}
	return ""
}

// amount returns grandTotal, falling back to total.
func (p OfferPrice) amount() string {
	if s := strings.TrimSpace(p.GrandTotal); s != "" {
		return s
	}
	return strings.TrimSpace(p.Total)
}
