package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"cruisebooking/internal/domain/models"
)

// childFareRate: children travel at half the per-person cabin price.
var childFareRate = decimal.New(5, -1)

// PriceBook is a request-scoped snapshot of the fetched reference tables.
// It is built, consulted and discarded within one handler call, so a slow
// fetch can never overwrite data for a newer destination.
type PriceBook struct {
	Itineraries []models.Itinerary
	Pricing     []models.CabinPricing
}

// ItineraryFor resolves a destination route to its sailing.
func (b PriceBook) ItineraryFor(route string) (models.Itinerary, bool) {
	for _, it := range b.Itineraries {
		if sameRoute(it.Route, route) {
			return it, true
		}
	}
	return models.Itinerary{}, false
}

// UnitPrice is the per-person price for a cabin type on a route: itinerary
// route -> ship, then the (ship, route) pricing row, then the cabin column.
// Zero when any lookup misses.
func (b PriceBook) UnitPrice(route string, cabin models.CabinType) decimal.Decimal {
	it, ok := b.ItineraryFor(route)
	if !ok {
		return decimal.Zero
	}
	for _, row := range b.Pricing {
		if !sameRoute(row.Route, route) || !strings.EqualFold(strings.TrimSpace(row.ShipName), strings.TrimSpace(it.ShipName)) {
			continue
		}
		switch normalizeCabin(string(cabin)) {
		case "interior":
			return row.InteriorPrice
		case "oceanview":
			return row.OceanViewPrice
		case "balcony":
			return row.BalconyPrice
		case "suite":
			return row.SuitePrice
		}
		return decimal.Zero
	}
	return decimal.Zero
}

// TotalPrice computes adults*unit + children*unit*0.5. No rounding is
// applied; formatting is display-only.
func (b PriceBook) TotalPrice(route string, cabin models.CabinType, adults, children int) decimal.Decimal {
	unit := b.UnitPrice(route, cabin)
	if unit.IsZero() {
		return decimal.Zero
	}
	adultTotal := unit.Mul(decimal.NewFromInt(int64(adults)))
	childTotal := unit.Mul(decimal.NewFromInt(int64(children))).Mul(childFareRate)
	return adultTotal.Add(childTotal)
}

// BuildCabinOptions annotates each cabin type with its unit price and the
// availability feed. An option is disabled only when a row exists for the
// type and reports zero; absence of data is treated as bookable.
func (b PriceBook) BuildCabinOptions(route string, availability []models.CabinAvailability) []models.CabinOption {
	options := make([]models.CabinOption, 0, len(models.AllCabinTypes()))
	for _, cabin := range models.AllCabinTypes() {
		opt := models.CabinOption{
			CabinType: cabin,
			UnitPrice: b.UnitPrice(route, cabin),
		}
		for _, row := range availability {
			if normalizeCabin(row.CabinType) != normalizeCabin(string(cabin)) {
				continue
			}
			available := row.Available
			opt.Available = &available
			opt.Disabled = available == 0
			break
		}
		options = append(options, opt)
	}
	return options
}

// ParseCabinType maps user/feed spellings ("Ocean View", "ocean_view",
// "OceanView") onto the canonical enum. Empty input stays empty.
func ParseCabinType(raw string) (models.CabinType, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", true
	}
	for _, cabin := range models.AllCabinTypes() {
		if normalizeCabin(raw) == normalizeCabin(string(cabin)) {
			return cabin, true
		}
	}
	return "", false
}

func sameRoute(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func normalizeCabin(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}
