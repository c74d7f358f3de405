package models

import (
	"benefits-server/dayparser"
	"benefits-server/models/benefit"
)

// BenefitWithDays pairs a stored benefit with the availability resolved from
// its text fields at request time.
type BenefitWithDays struct {
	Benefit  benefit.Benefit            `json:"benefit"`
	Days     *dayparser.DayAvailability `json:"days"`
	DayNames []string                   `json:"day_names"`
}

// WeekdayCoverage counts usable benefits per day, Monday first.
type WeekdayCoverage struct {
	Total   int    `json:"total"`
	Unknown int    `json:"unknown"`
	Days    [7]int `json:"days"`
}
