package http

import (
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
)

// SessionResponse describes a search session.
type SessionResponse struct {
	ID             string                 `json:"id" example:"5f0c7d7e-8a4b-4c43-9c55-0f7e7f1b9f2a"`
	CreatedAt      time.Time              `json:"createdAt"`
	SearchedAt     *time.Time             `json:"searchedAt,omitempty"`
	Generation     uint64                 `json:"generation" example:"1"`
	Searching      bool                   `json:"searching"`
	Results        int                    `json:"results" example:"3"`
	LastError      string                 `json:"lastError,omitempty"`
	SearchCriteria *domain.SearchCriteria `json:"searchCriteria,omitempty"`
}

// HistogramResponse is the price histogram of a session view.
type HistogramResponse struct {
	// Buckets are the non-empty price buckets in ascending order
	Buckets []domain.PriceBucket `json:"buckets"`

	// FlightCount is the number of flights in the view
	FlightCount int `json:"flightCount" example:"3"`
}

// ToSessionResponse converts a session snapshot to a SessionResponse.
func ToSessionResponse(state usecase.SessionState) SessionResponse {
	resp := SessionResponse{
		ID:             state.ID,
		CreatedAt:      state.CreatedAt,
		Generation:     state.Generation,
		Searching:      state.Searching,
		Results:        state.Results,
		SearchCriteria: state.Criteria,
	}
	if !state.SearchedAt.IsZero() {
		searchedAt := state.SearchedAt
		resp.SearchedAt = &searchedAt
	}
	if state.LastError != nil {
		resp.LastError = state.LastError.Error()
	}
	return resp
}

// ToHistogramResponse extracts the histogram of a view.
func ToHistogramResponse(resp *domain.SearchResponse) HistogramResponse {
	return HistogramResponse{
		Buckets:     resp.Histogram,
		FlightCount: len(resp.Flights),
	}
}
