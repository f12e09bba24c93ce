package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustPrice(t *testing.T, cfg BannerConfig) decimal.Decimal {
	t.Helper()
	price, err := Price(cfg)
	require.NoError(t, err)
	return price
}

func TestPrice_SmallVinylWithGrommets(t *testing.T) {
	// 100x50cm = 0.5 sqm, small tier: 0.5 * 800 * 1.0 + 200 grommets.
	price := mustPrice(t, BannerConfig{WidthCm: 100, HeightCm: 50, Material: MaterialVinyl, Grommets: true})
	require.True(t, price.Equal(decimal.NewFromInt(600)), "got %s", price)
}

func TestPrice_MinimumFloor(t *testing.T) {
	// 10x10cm vinyl computes to 8 INR, well below the floor.
	price := mustPrice(t, BannerConfig{WidthCm: 10, HeightCm: 10, Material: MaterialVinyl})
	require.True(t, price.Equal(MinimumOrderPrice), "got %s", price)
}

func TestPrice_TierBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		width  int
		height int
		want   string
	}{
		// Exactly 0.5 sqm stays in the small (cheaper per-decision) tier.
		{"at small boundary", 100, 50, "400"},
		// 0.51 sqm crosses into the medium tier rate.
		{"above small boundary", 100, 51, "306"},
		// Exactly 2.0 sqm stays medium: 2.0 * 600.
		{"at medium boundary", 200, 100, "1200"},
		// 2.01 sqm uses the large rate: 2.01 * 450.
		{"above medium boundary", 201, 100, "904.5"},
		// Exactly 5.0 sqm stays large: 5.0 * 450.
		{"at large boundary", 250, 200, "2250"},
		// 5.02 sqm is extra large: 5.02 * 350.
		{"above large boundary", 251, 200, "1757"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			price := mustPrice(t, BannerConfig{WidthCm: tc.width, HeightCm: tc.height, Material: MaterialVinyl})
			require.True(t, price.Equal(decimal.RequireFromString(tc.want)), "got %s want %s", price, tc.want)
		})
	}
}

func TestPrice_MonotonicWithinTier(t *testing.T) {
	// Larger banner, same tier and material, never cheaper.
	prev := decimal.Zero
	for width := 100; width <= 140; width += 10 {
		// Heights fixed at 100cm keep the area in the medium tier (1.0-1.4 sqm).
		price := mustPrice(t, BannerConfig{WidthCm: width, HeightCm: 100, Material: MaterialFlex})
		require.True(t, price.GreaterThanOrEqual(prev), "price decreased at width %d: %s < %s", width, price, prev)
		prev = price
	}
}

func TestPrice_MaterialMultipliers(t *testing.T) {
	base := BannerConfig{WidthCm: 100, HeightCm: 100, Material: MaterialVinyl} // 1.0 sqm, medium tier, 600 base
	cases := map[Material]string{
		MaterialVinyl:  "600",
		MaterialFlex:   "480",
		MaterialFabric: "840",
		MaterialMesh:   "720",
	}
	for material, want := range cases {
		cfg := base
		cfg.Material = material
		price := mustPrice(t, cfg)
		require.True(t, price.Equal(decimal.RequireFromString(want)), "%s: got %s want %s", material, price, want)
	}
}

func TestPrice_AddonsAreFlatAndAdditive(t *testing.T) {
	cfg := BannerConfig{WidthCm: 100, HeightCm: 100, Material: MaterialFabric}
	plain := mustPrice(t, cfg)

	cfg.Grommets = true
	withGrommets := mustPrice(t, cfg)
	require.True(t, withGrommets.Sub(plain).Equal(decimal.NewFromInt(200)))

	cfg.Lamination = true
	withBoth := mustPrice(t, cfg)
	require.True(t, withBoth.Sub(withGrommets).Equal(decimal.NewFromInt(300)))
}

func TestPrice_RejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  BannerConfig
		want error
	}{
		{"width too small", BannerConfig{WidthCm: 9, HeightCm: 100, Material: MaterialVinyl}, ErrInvalidWidth},
		{"width too large", BannerConfig{WidthCm: 1001, HeightCm: 100, Material: MaterialVinyl}, ErrInvalidWidth},
		{"height too small", BannerConfig{WidthCm: 100, HeightCm: 9, Material: MaterialVinyl}, ErrInvalidHeight},
		{"unknown material", BannerConfig{WidthCm: 100, HeightCm: 100, Material: "canvas"}, ErrUnknownMaterial},
		{"empty material", BannerConfig{WidthCm: 100, HeightCm: 100}, ErrUnknownMaterial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Price(tc.cfg)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPrice_Deterministic(t *testing.T) {
	cfg := BannerConfig{WidthCm: 123, HeightCm: 457, Material: MaterialMesh, Grommets: true, Lamination: true}
	first := mustPrice(t, cfg)
	for i := 0; i < 10; i++ {
		require.True(t, mustPrice(t, cfg).Equal(first))
	}
}
