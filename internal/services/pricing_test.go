package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"cruisebooking/internal/domain/models"
)

func testPriceBook() PriceBook {
	return PriceBook{
		Itineraries: []models.Itinerary{
			{Route: "Greece", ShipName: "Serendip Majesty", StartDate: "2026-06-01", EndDate: "2026-06-08"},
			{Route: "Norway Fjords", ShipName: "Serendip Aurora", StartDate: "2026-07-04", EndDate: "2026-07-14"},
		},
		Pricing: []models.CabinPricing{
			{
				ShipName:       "Serendip Majesty",
				Route:          "Greece",
				InteriorPrice:  decimal.NewFromInt(100),
				OceanViewPrice: decimal.NewFromInt(150),
				BalconyPrice:   decimal.NewFromInt(220),
				SuitePrice:     decimal.NewFromInt(400),
			},
		},
	}
}

func TestUnitPriceLookup(t *testing.T) {
	book := testPriceBook()

	assert.True(t, book.UnitPrice("Greece", models.CabinInterior).Equal(decimal.NewFromInt(100)))
	assert.True(t, book.UnitPrice("Greece", models.CabinOceanView).Equal(decimal.NewFromInt(150)))
	assert.True(t, book.UnitPrice("Greece", models.CabinBalcony).Equal(decimal.NewFromInt(220)))
	assert.True(t, book.UnitPrice("Greece", models.CabinSuite).Equal(decimal.NewFromInt(400)))

	// Route matching is case-insensitive.
	assert.True(t, book.UnitPrice("greece", models.CabinInterior).Equal(decimal.NewFromInt(100)))
}

func TestUnitPriceMisses(t *testing.T) {
	book := testPriceBook()

	// Unknown destination.
	assert.True(t, book.UnitPrice("Atlantis", models.CabinInterior).IsZero())
	// Itinerary exists but no pricing row for its ship.
	assert.True(t, book.UnitPrice("Norway Fjords", models.CabinInterior).IsZero())
	// Empty cabin type.
	assert.True(t, book.UnitPrice("Greece", "").IsZero())
}

func TestTotalPriceFormula(t *testing.T) {
	book := testPriceBook()

	// 2 adults + 1 child at interior 100 => 2*100 + 1*100*0.5 = 250.
	total := book.TotalPrice("Greece", models.CabinInterior, 2, 1)
	assert.True(t, total.Equal(decimal.NewFromInt(250)), "got %s", total)

	// Children travel at half fare for every cabin type.
	for _, cabin := range models.AllCabinTypes() {
		unit := book.UnitPrice("Greece", cabin)
		expected := unit.Mul(decimal.NewFromInt(3)).Add(unit.Mul(decimal.NewFromInt(1)).Mul(decimal.New(5, -1)))
		assert.True(t, book.TotalPrice("Greece", cabin, 3, 1).Equal(expected), "cabin=%s", cabin)
	}

	// Idempotent given unchanged inputs.
	again := book.TotalPrice("Greece", models.CabinInterior, 2, 1)
	assert.True(t, total.Equal(again))

	// Zero when the pricing row cannot be resolved.
	assert.True(t, book.TotalPrice("Atlantis", models.CabinInterior, 2, 1).IsZero())
}

func TestBuildCabinOptions(t *testing.T) {
	book := testPriceBook()
	availability := []models.CabinAvailability{
		{CabinType: "Interior", Available: 5, TotalCapacity: 20},
		{CabinType: "ocean_view", Available: 0, TotalCapacity: 10},
	}

	options := book.BuildCabinOptions("Greece", availability)
	assert.Len(t, options, 4)

	byType := map[models.CabinType]models.CabinOption{}
	for _, opt := range options {
		byType[opt.CabinType] = opt
	}

	interior := byType[models.CabinInterior]
	assert.NotNil(t, interior.Available)
	assert.Equal(t, 5, *interior.Available)
	assert.False(t, interior.Disabled)

	// Feed spelling "ocean_view" maps onto the Ocean View option; zero
	// availability disables it.
	ocean := byType[models.CabinOceanView]
	assert.NotNil(t, ocean.Available)
	assert.Equal(t, 0, *ocean.Available)
	assert.True(t, ocean.Disabled)

	// No availability row: treated as bookable.
	balcony := byType[models.CabinBalcony]
	assert.Nil(t, balcony.Available)
	assert.False(t, balcony.Disabled)
}

func TestParseCabinType(t *testing.T) {
	cases := map[string]models.CabinType{
		"Interior":   models.CabinInterior,
		"ocean view": models.CabinOceanView,
		"Ocean_View": models.CabinOceanView,
		"OceanView":  models.CabinOceanView,
		"BALCONY":    models.CabinBalcony,
		"suite":      models.CabinSuite,
		"":           "",
	}
	for raw, want := range cases {
		got, ok := ParseCabinType(raw)
		assert.True(t, ok, "raw=%q", raw)
		assert.Equal(t, want, got, "raw=%q", raw)
	}

	_, ok := ParseCabinType("presidential")
	assert.False(t, ok)
}
