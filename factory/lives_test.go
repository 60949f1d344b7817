package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/depreciation-engine/factory"
)

func TestUsefulLives_EmbeddedTable(t *testing.T) {
	lives := factory.UsefulLives()

	assert.Equal(t, []string{"US GAAP", "IFRS", "Indian GAAP"}, lives.Standards())
	assert.Equal(t, 5, lives.DefaultYears())
	assert.Len(t, lives.AssetTypes(), 10)

	years, ok := lives.Suggest("US GAAP", "Building")
	assert.True(t, ok)
	assert.Equal(t, 40, years)

	years, ok = factory.SuggestUsefulLife("Indian GAAP", "Vehicle")
	assert.True(t, ok)
	assert.Equal(t, 8, years)
}

func TestUsefulLives_Fallback(t *testing.T) {
	_, ok := factory.SuggestUsefulLife("IFRS", "Software")
	assert.False(t, ok)
	assert.Equal(t, 5, factory.DefaultUsefulLife("IFRS", "Software"))
	assert.Equal(t, 5, factory.DefaultUsefulLife("Local GAAP", "Building"))
}

func TestUsefulLives_EntriesAreCopies(t *testing.T) {
	lives := factory.UsefulLives()

	entries := lives.Entries()
	entries["IFRS"]["Building"] = 1

	years, _ := lives.Suggest("IFRS", "Building")
	assert.Equal(t, 30, years)
	assert.Equal(t, []string{"Building", "Furniture", "Machinery", "Vehicle"}, lives.TabulatedTypes("IFRS"))
	assert.True(t, lives.HasStandard("IFRS"))
	assert.False(t, lives.HasStandard("Local GAAP"))
}

func TestParseUsefulLives_Validation(t *testing.T) {
	_, err := factory.ParseUsefulLives([]byte(`default_years: 0`))
	assert.Error(t, err)

	_, err = factory.ParseUsefulLives([]byte(`
default_years: 5
standards:
  - name: A
    lives: {Building: 0}
`))
	assert.Error(t, err)

	_, err = factory.ParseUsefulLives([]byte(`
default_years: 5
standards:
  - name: A
  - name: A
`))
	assert.Error(t, err)

	table, err := factory.ParseUsefulLives([]byte(`
default_years: 3
standards:
  - name: Local
    lives: {Robot: 12}
asset_types: [Robot]
`))
	require.NoError(t, err)
	assert.Equal(t, 12, table.SuggestOrDefault("Local", "Robot"))
	assert.Equal(t, 3, table.SuggestOrDefault("Local", "Drone"))

	f := factory.NewAssetFactoryWithTable(table)
	batch, err := f.ParseRequest([]byte(`{"assets": [{"standard": "Local", "asset_type": "Robot", "cost": 1, "salvage": 0, "in_service_date": "2024-01-01"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 12, batch.Assets[0].UsefulLifeYears)
}
