// Package api - Request and response types
package api

import (
	"ghcost/core/catalog"
	"ghcost/core/input"
	"ghcost/core/output"
	"ghcost/core/types"
)

// EstimateResponse is the response of POST /v1/estimate
type EstimateResponse struct {
	RequestID string `json:"request_id"`
	output.Report
}

// PlansResponse lists the catalog plans in order
type PlansResponse struct {
	Currency types.Currency  `json:"currency"`
	Plans    []*catalog.Plan `json:"plans"`
}

// FeaturesResponse lists the feature availability matrix
type FeaturesResponse struct {
	Features []*catalog.Feature `json:"features"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	RequestID string    `json:"request_id,omitempty"`
	Error     ErrorBody `json:"error"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Violations []input.Violation `json:"violations,omitempty"`
}
