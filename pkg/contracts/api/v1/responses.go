package api

import (
	"dataclean/pkg/contracts/domain"
)

// CleanResponse is returned by the clean endpoints. Data holds the cleaned
// records in column order.
type CleanResponse struct {
	Report domain.ValidationReport `json:"report"`
	Data   any                     `json:"data"`
}

// ValidateResponse is returned by the validate endpoints.
type ValidateResponse = domain.ValidationReport
