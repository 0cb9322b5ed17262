// Package api contains the request and response contracts of the dataclean
// HTTP API. Version v1 is the current stable API.
package api

import "encoding/json"

// CleanJSONRequest is the body of POST /api/clean/json and
// POST /api/validate/json. Records is kept raw so that column order is taken
// from the payload.
type CleanJSONRequest struct {
	Records json.RawMessage `json:"records" validate:"required"`
}

// CleanOptions are the query parameters accepted by the clean endpoints.
type CleanOptions struct {
	Format string `json:"format" query:"format" validate:"omitempty,oneof=json csv"`
}
