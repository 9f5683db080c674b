package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plcortex/internal/reference"
)

func loadTables(t *testing.T) *reference.Tables {
	t.Helper()
	tables, err := reference.Load("")
	require.NoError(t, err)
	return tables
}

func TestVoltageDrop(t *testing.T) {
	tables := loadTables(t)

	t.Run("single phase 12 AWG", func(t *testing.T) {
		r, err := VoltageDrop(VoltageDropInput{
			SystemVolts: 120,
			LoadAmps:    16,
			RunFeet:     100,
			WireSize:    "12",
		}, tables)
		require.NoError(t, err)
		// 2 * 12.9 * 16 * 100 / 6530 = 6.32 V
		assert.InDelta(t, 6.32, r.DropVolts, 0.01)
		assert.InDelta(t, 5.27, r.DropPercent, 0.01)
	})

	t.Run("three phase uses sqrt3", func(t *testing.T) {
		single, err := VoltageDrop(VoltageDropInput{
			SystemVolts: 480, LoadAmps: 20, RunFeet: 200, WireSize: "10",
		}, tables)
		require.NoError(t, err)

		three, err := VoltageDrop(VoltageDropInput{
			SystemVolts: 480, LoadAmps: 20, RunFeet: 200, WireSize: "10", ThreePhase: true,
		}, tables)
		require.NoError(t, err)
		assert.Less(t, three.DropVolts, single.DropVolts)
	})

	t.Run("unknown conductor rejected", func(t *testing.T) {
		_, err := VoltageDrop(VoltageDropInput{
			SystemVolts: 120, LoadAmps: 16, RunFeet: 100, WireSize: "13",
		}, tables)
		assert.Error(t, err)
	})
}

func TestWireSize(t *testing.T) {
	tables := loadTables(t)

	t.Run("short run sized by ampacity", func(t *testing.T) {
		r, err := WireSize(WireSizeInput{
			SystemVolts:    480,
			LoadAmps:       28,
			RunFeet:        20,
			TempRating:     75,
			MaxDropPercent: 3,
			ThreePhase:     true,
		}, tables)
		require.NoError(t, err)
		assert.Equal(t, "10", r.Size)
		assert.False(t, r.UpsizedForDrop)
	})

	t.Run("long run upsized for drop", func(t *testing.T) {
		r, err := WireSize(WireSizeInput{
			SystemVolts:    120,
			LoadAmps:       16,
			RunFeet:        250,
			TempRating:     75,
			MaxDropPercent: 3,
		}, tables)
		require.NoError(t, err)
		assert.True(t, r.UpsizedForDrop)
		assert.NotEqual(t, "14", r.Size)
		assert.LessOrEqual(t, r.DropPercent, 3.0)
	})

	t.Run("impossible drop limit rejected", func(t *testing.T) {
		_, err := WireSize(WireSizeInput{
			SystemVolts:    24,
			LoadAmps:       300,
			RunFeet:        5000,
			TempRating:     90,
			MaxDropPercent: 0.5,
		}, tables)
		assert.ErrorIs(t, err, ErrBadInput)
	})

	t.Run("nil tables rejected", func(t *testing.T) {
		_, err := WireSize(WireSizeInput{
			SystemVolts: 120, LoadAmps: 16, RunFeet: 50, TempRating: 75, MaxDropPercent: 3,
		}, nil)
		assert.ErrorIs(t, err, ErrBadInput)
	})
}

func TestMotor(t *testing.T) {
	tables := loadTables(t)

	t.Run("conveyor drive", func(t *testing.T) {
		// 40 Nm at 1750 rpm = 7.33 kW = 9.8 HP; x1.15 SF -> 15 HP frame.
		r, err := Motor(MotorInput{
			LoadTorqueNm: 40,
			SpeedRPM:     1750,
			Voltage:      460,
			Phase:        3,
		}, tables)
		require.NoError(t, err)
		assert.InDelta(t, 7.33, r.RequiredKW, 0.01)
		assert.Equal(t, 15.0, r.RecommendedHP)
		assert.Equal(t, 21.0, r.FullLoadAmps)
	})

	t.Run("unit service factor picks the smaller frame", func(t *testing.T) {
		r, err := Motor(MotorInput{
			LoadTorqueNm:  40,
			SpeedRPM:      1750,
			ServiceFactor: 1.0,
			Voltage:       460,
			Phase:         3,
		}, tables)
		require.NoError(t, err)
		assert.Equal(t, 10.0, r.RecommendedHP)
	})

	t.Run("oversized load rejected", func(t *testing.T) {
		_, err := Motor(MotorInput{LoadTorqueNm: 5000, SpeedRPM: 1800, Voltage: 460, Phase: 3}, tables)
		assert.ErrorIs(t, err, ErrBadInput)
	})

	t.Run("sub-unity service factor rejected", func(t *testing.T) {
		_, err := Motor(MotorInput{LoadTorqueNm: 40, SpeedRPM: 1750, ServiceFactor: 0.8, Voltage: 460, Phase: 3}, tables)
		assert.ErrorIs(t, err, ErrBadInput)
	})
}

func TestAnalog(t *testing.T) {
	t.Run("explicit endpoints", func(t *testing.T) {
		r, err := Analog(AnalogInput{
			RawMin: 4000, RawMax: 20000,
			EngMin: 0, EngMax: 60,
		})
		require.NoError(t, err)
		assert.Len(t, r.Points, 5)
		assert.InDelta(t, 30.0, r.Points[2].Eng, 1e-9, "midpoint")
		assert.InDelta(t, 3.0, r.Alarms.LowEng, 1e-9)
		assert.InDelta(t, 57.0, r.Alarms.HighEng, 1e-9)
	})

	t.Run("preset supplies raw range", func(t *testing.T) {
		r, err := Analog(AnalogInput{
			Preset: "s7-420ma",
			EngMin: 0, EngMax: 100,
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, r.Mapping.RawMin)
		assert.Equal(t, 27648.0, r.Mapping.RawMax)
	})

	t.Run("explicit endpoints beat preset", func(t *testing.T) {
		r, err := Analog(AnalogInput{
			Preset: "s7-420ma",
			RawMin: 1000, RawMax: 5000,
			EngMin: 0, EngMax: 100,
		})
		require.NoError(t, err)
		assert.Equal(t, 1000.0, r.Mapping.RawMin)
	})

	t.Run("unknown preset rejected", func(t *testing.T) {
		_, err := Analog(AnalogInput{Preset: "plc9000", EngMin: 0, EngMax: 1})
		assert.ErrorIs(t, err, ErrBadInput)
	})

	t.Run("degenerate range rejected", func(t *testing.T) {
		_, err := Analog(AnalogInput{RawMin: 5, RawMax: 5, EngMin: 0, EngMax: 10})
		assert.ErrorIs(t, err, ErrBadInput)
	})
}
