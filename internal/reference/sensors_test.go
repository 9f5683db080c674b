package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSensors(t *testing.T) {
	tables, err := Load("")
	require.NoError(t, err)

	t.Run("measurand filter", func(t *testing.T) {
		matches := tables.SelectSensors(SensorCriteria{Measurand: "level"})
		require.NotEmpty(t, matches)
		for _, s := range matches {
			assert.Equal(t, "level", s.Measurand)
		}
	})

	t.Run("environment keeps exact and general-duty", func(t *testing.T) {
		matches := tables.SelectSensors(SensorCriteria{
			Measurand:   "level",
			Environment: "hazardous",
		})
		require.NotEmpty(t, matches)

		// Exact matches sort first.
		assert.True(t, matches[0].SuitsEnvironment("hazardous"))
		for _, s := range matches {
			assert.True(t, s.SuitsEnvironment("hazardous") || s.SuitsEnvironment("general"))
		}
	})

	t.Run("output substring match", func(t *testing.T) {
		matches := tables.SelectSensors(SensorCriteria{
			Measurand: "flow",
			Output:    "hart",
		})
		require.NotEmpty(t, matches)
		for _, s := range matches {
			assert.Contains(t, s.Output, "HART")
		}
	})

	t.Run("distance excludes short-range and contact devices", func(t *testing.T) {
		matches := tables.SelectSensors(SensorCriteria{
			Measurand: "distance",
			DistanceM: 50,
		})
		require.Len(t, matches, 1)
		assert.Equal(t, "laser", matches[0].Technology)

		matches = tables.SelectSensors(SensorCriteria{
			Measurand: "level",
			DistanceM: 12,
		})
		for _, s := range matches {
			assert.GreaterOrEqual(t, s.MaxRangeM, 12.0)
		}
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, tables.SelectSensors(SensorCriteria{Measurand: "humidity"}))
	})
}

func TestSensorCatalogFacets(t *testing.T) {
	tables, err := Load("")
	require.NoError(t, err)

	measurands := tables.Measurands()
	assert.Contains(t, measurands, "temperature")
	assert.Contains(t, measurands, "level")
	assert.Contains(t, measurands, "proximity")
	assert.IsNonDecreasing(t, measurands)

	environments := tables.Environments()
	assert.Contains(t, environments, "general")
	assert.Contains(t, environments, "washdown")
	assert.Contains(t, environments, "hazardous")
}
