package calc

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOhm(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	cases := []struct {
		name string
		in   OhmInput
		want OhmResult
	}{
		{
			name: "volts and amps",
			in:   OhmInput{Volts: 24, Amps: 2},
			want: OhmResult{Volts: 24, Amps: 2, Ohms: 12, Watts: 48},
		},
		{
			name: "volts and ohms",
			in:   OhmInput{Volts: 120, Ohms: 60},
			want: OhmResult{Volts: 120, Amps: 2, Ohms: 60, Watts: 240},
		},
		{
			name: "volts and watts",
			in:   OhmInput{Volts: 480, Watts: 960},
			want: OhmResult{Volts: 480, Amps: 2, Ohms: 240, Watts: 960},
		},
		{
			name: "amps and ohms",
			in:   OhmInput{Amps: 4, Ohms: 6},
			want: OhmResult{Volts: 24, Amps: 4, Ohms: 6, Watts: 96},
		},
		{
			name: "amps and watts",
			in:   OhmInput{Amps: 10, Watts: 240},
			want: OhmResult{Volts: 24, Amps: 10, Ohms: 2.4, Watts: 240},
		},
		{
			name: "ohms and watts",
			in:   OhmInput{Ohms: 100, Watts: 400},
			want: OhmResult{Volts: 200, Amps: 2, Ohms: 100, Watts: 400},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Ohm(tc.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got, approx); diff != "" {
				t.Errorf("Ohm() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("rejects wrong number of knowns", func(t *testing.T) {
		_, err := Ohm(OhmInput{Volts: 24})
		assert.ErrorIs(t, err, ErrBadInput)

		_, err = Ohm(OhmInput{Volts: 24, Amps: 1, Ohms: 24})
		assert.ErrorIs(t, err, ErrBadInput)
	})

	t.Run("rejects negatives and non-finite", func(t *testing.T) {
		_, err := Ohm(OhmInput{Volts: -5, Amps: 2})
		assert.ErrorIs(t, err, ErrBadInput)

		_, err = Ohm(OhmInput{Volts: math.NaN(), Amps: 2})
		assert.ErrorIs(t, err, ErrBadInput)
	})
}

func TestThermal(t *testing.T) {
	t.Run("passive enclosure needs no cooling", func(t *testing.T) {
		r, err := Thermal(ThermalInput{
			InternalWatts: 100,
			SurfaceAreaM2: 4,
			AmbientC:      25,
			MaxInternalC:  40,
		})
		require.NoError(t, err)
		// 5.5 * 4 * 15 = 330 W passive capacity.
		assert.InDelta(t, 330, r.PassiveWatts, 1e-9)
		assert.False(t, r.NeedsCooling)
		assert.Zero(t, r.FanCFM)
	})

	t.Run("overloaded enclosure sizes a fan", func(t *testing.T) {
		r, err := Thermal(ThermalInput{
			InternalWatts: 800,
			SurfaceAreaM2: 2,
			AmbientC:      30,
			MaxInternalC:  40,
		})
		require.NoError(t, err)
		assert.True(t, r.NeedsCooling)
		assert.Greater(t, r.FanCFM, 0.0)
		assert.InDelta(t, 800*3.412, r.ACBtuPerHr, 1e-9)
	})

	t.Run("ambient above limit rejected", func(t *testing.T) {
		_, err := Thermal(ThermalInput{
			InternalWatts: 100,
			SurfaceAreaM2: 2,
			AmbientC:      45,
			MaxInternalC:  40,
		})
		assert.ErrorIs(t, err, ErrBadInput)
	})
}

func TestEncoder(t *testing.T) {
	t.Run("ballscrew axis", func(t *testing.T) {
		// 1024 PPR x4 quadrature, direct coupled, 5 mm lead.
		r, err := Encoder(EncoderInput{PPR: 1024, Quadrature: 4, GearRatio: 1, UnitsPerRev: 5})
		require.NoError(t, err)
		assert.InDelta(t, 4096.0, r.CountsPerRev, 1e-9)
		assert.InDelta(t, 819.2, r.CountsPerUnit, 1e-9)
		assert.InDelta(t, 1.0/819.2, r.UnitsPerCount, 1e-12)
	})

	t.Run("position mapping round trips", func(t *testing.T) {
		r, err := Encoder(EncoderInput{PPR: 360, Quadrature: 2, GearRatio: 3, UnitsPerRev: 360})
		require.NoError(t, err)

		m, err := r.PositionMapping(720)
		require.NoError(t, err)

		eng, err := m.ToEng(m.RawMax / 2)
		require.NoError(t, err)
		assert.InDelta(t, 360, eng, 1e-9)
	})

	t.Run("invalid quadrature rejected", func(t *testing.T) {
		_, err := Encoder(EncoderInput{PPR: 1024, Quadrature: 3, GearRatio: 1, UnitsPerRev: 5})
		assert.ErrorIs(t, err, ErrBadInput)
	})
}

func TestPowerSupply(t *testing.T) {
	t.Run("steady load with headroom", func(t *testing.T) {
		r, err := PowerSupply(PSUInput{
			Loads: []PSULoad{
				{Name: "PLC", Amps: 0.5},
				{Name: "IO", Amps: 1.5},
				{Name: "sensors", Amps: 0.1, Quantity: 10},
			},
		})
		require.NoError(t, err)
		assert.InDelta(t, 3.0, r.SteadyAmps, 1e-9)
		assert.InDelta(t, 3.6, r.RequiredAmps, 1e-9)
		assert.Equal(t, 3.8, r.RecommendedAmps)
	})

	t.Run("inrush dominates", func(t *testing.T) {
		r, err := PowerSupply(PSUInput{
			Loads: []PSULoad{
				{Name: "valve bank", Amps: 2, InrushMultiplier: 3},
			},
		})
		require.NoError(t, err)
		assert.InDelta(t, 6.0, r.PeakAmps, 1e-9)
		assert.Equal(t, 10.0, r.RecommendedAmps)
	})

	t.Run("empty load list rejected", func(t *testing.T) {
		_, err := PowerSupply(PSUInput{})
		assert.ErrorIs(t, err, ErrBadInput)
	})

	t.Run("oversized load rejected with guidance", func(t *testing.T) {
		_, err := PowerSupply(PSUInput{Loads: []PSULoad{{Name: "mega", Amps: 100}}})
		assert.ErrorIs(t, err, ErrBadInput)
	})
}
