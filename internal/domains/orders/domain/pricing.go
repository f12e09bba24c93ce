package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Pricing constants in INR. Tier rates decrease as the banner grows
// (economies of scale); add-ons are flat and independent of tier and
// material.
var (
	tierBoundarySmall  = decimal.RequireFromString("0.5")
	tierBoundaryMedium = decimal.RequireFromString("2.0")
	tierBoundaryLarge  = decimal.RequireFromString("5.0")

	rateSmall  = decimal.NewFromInt(800)
	rateMedium = decimal.NewFromInt(600)
	rateLarge  = decimal.NewFromInt(450)
	rateXLarge = decimal.NewFromInt(350)

	materialMultipliers = map[Material]decimal.Decimal{
		MaterialVinyl:  decimal.RequireFromString("1.0"),
		MaterialFlex:   decimal.RequireFromString("0.8"),
		MaterialFabric: decimal.RequireFromString("1.4"),
		MaterialMesh:   decimal.RequireFromString("1.2"),
	}

	grommetsCharge   = decimal.NewFromInt(200)
	laminationCharge = decimal.NewFromInt(300)

	// MinimumOrderPrice is a floor applied after all other charges,
	// never a ceiling.
	MinimumOrderPrice = decimal.NewFromInt(150)
)

// ErrNonPositivePrice indicates the computed price came out at or below
// zero, which can only happen through a constants misconfiguration and is
// surfaced as a validation failure rather than clamped.
var ErrNonPositivePrice = errors.New("calculated price must be greater than zero")

// Price computes the charge for one banner configuration. It is pure and
// deterministic: fixed-point decimal arithmetic throughout, no clock, no
// randomness. Invalid configurations are rejected, not defaulted.
func Price(cfg BannerConfig) (decimal.Decimal, error) {
	if err := cfg.Validate(); err != nil {
		return decimal.Decimal{}, err
	}

	// Exact area in square meters: cm² scaled by 10⁻⁴.
	area := decimal.NewFromInt(int64(cfg.WidthCm) * int64(cfg.HeightCm)).Shift(-4)

	price := area.Mul(tierRate(area))
	price = price.Mul(materialMultipliers[cfg.Material])

	if cfg.Grommets {
		price = price.Add(grommetsCharge)
	}
	if cfg.Lamination {
		price = price.Add(laminationCharge)
	}

	if price.LessThan(MinimumOrderPrice) {
		price = MinimumOrderPrice
	}
	if price.Sign() <= 0 {
		return decimal.Decimal{}, ErrNonPositivePrice
	}
	return price, nil
}

// tierRate selects the per-sqm rate; boundaries are inclusive on the
// cheaper side, first match wins.
func tierRate(area decimal.Decimal) decimal.Decimal {
	switch {
	case area.LessThanOrEqual(tierBoundarySmall):
		return rateSmall
	case area.LessThanOrEqual(tierBoundaryMedium):
		return rateMedium
	case area.LessThanOrEqual(tierBoundaryLarge):
		return rateLarge
	default:
		return rateXLarge
	}
}

// Tier describes one pricing bracket for the published rate sheet.
type Tier struct {
	Name       string
	MaxAreaSqm string
	RatePerSqm decimal.Decimal
}

// Tiers returns the rate sheet in ascending area order. The last tier is
// unbounded.
func Tiers() []Tier {
	return []Tier{
		{Name: "Small", MaxAreaSqm: "0.5", RatePerSqm: rateSmall},
		{Name: "Medium", MaxAreaSqm: "2.0", RatePerSqm: rateMedium},
		{Name: "Large", MaxAreaSqm: "5.0", RatePerSqm: rateLarge},
		{Name: "Extra Large", MaxAreaSqm: "", RatePerSqm: rateXLarge},
	}
}

// MaterialMultipliers exposes a copy of the per-material scaling factors.
func MaterialMultipliers() map[Material]decimal.Decimal {
	out := make(map[Material]decimal.Decimal, len(materialMultipliers))
	for k, v := range materialMultipliers {
		out[k] = v
	}
	return out
}

// AddonCharges returns the flat surcharges for grommets and lamination.
func AddonCharges() (grommets, lamination decimal.Decimal) {
	return grommetsCharge, laminationCharge
}
