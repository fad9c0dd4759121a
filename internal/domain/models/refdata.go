package models

import "github.com/shopspring/decimal"

// Itinerary is a sailing as published by the booking API.
type Itinerary struct {
	Route     string `json:"route"`
	ShipName  string `json:"ship_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CabinPricing holds per-person prices for one (ship, route) pair.
type CabinPricing struct {
	ShipName       string          `json:"ship_name"`
	Route          string          `json:"route"`
	InteriorPrice  decimal.Decimal `json:"interior_price"`
	OceanViewPrice decimal.Decimal `json:"ocean_view_price"`
	BalconyPrice   decimal.Decimal `json:"balcony_price"`
	SuitePrice     decimal.Decimal `json:"suite_price"`
}

// CabinAvailability is advisory display data, refreshed per destination.
type CabinAvailability struct {
	CabinType     string `json:"cabin_type"`
	Available     int    `json:"available"`
	TotalCapacity int    `json:"total_capacity"`
}

// CabinOption is one entry of the step-2 cabin selector: a cabin type
// annotated with its unit price and live availability. Available is nil
// when the availability feed had no row for the type; absence of data is
// treated as bookable.
type CabinOption struct {
	CabinType CabinType       `json:"cabinType"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Available *int            `json:"available,omitempty"`
	Disabled  bool            `json:"disabled"`
}
