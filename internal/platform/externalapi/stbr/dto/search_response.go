// Package dto defines data transfer objects for the STBR backend endpoints.
package dto

// SymbolMatch is one entry of the search_symbol bestMatches array.
// The field names follow the upstream symbol search provider.
type SymbolMatch struct {
	Symbol string `json:"1. symbol"`
	Name   string `json:"2. name"`
}

// SearchResponse represents the JSON response from the search_symbol endpoint.
type SearchResponse struct {
	BestMatches []SymbolMatch `json:"bestMatches"`
	Error       string        `json:"error,omitempty"`
}

// ErrorResponse is the body the backend sends alongside non-2xx statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}
