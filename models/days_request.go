package models

import "benefits-server/dayparser"

// ParseDaysRequest is the body of POST /v1/days/parse.
type ParseDaysRequest struct {
	Text string `json:"text"`
}

// ParseDaysResponse reports how a single text was understood.
type ParseDaysResponse struct {
	Availability *dayparser.DayAvailability `json:"availability"`
	Match        *dayparser.PatternMatch    `json:"match,omitempty"`
	Confidence   float64                    `json:"confidence"`
	DayNames     []string                   `json:"day_names"`
	HasAnyDay    bool                       `json:"has_any_day"`
}

// ResolveDaysResponse is returned by POST /v1/days/resolve.
type ResolveDaysResponse struct {
	Availability *dayparser.DayAvailability `json:"availability"`
	DayNames     []string                   `json:"day_names"`
	HasAnyDay    bool                       `json:"has_any_day"`
}
