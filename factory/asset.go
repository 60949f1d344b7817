/*
Package factory converts JSON asset definitions into calculation inputs.

PURPOSE:
  Front-ends (the HTTP API, the CLI reading a file) describe assets as JSON
  the way the input form collects them. The factory validates that JSON,
  fills in defaults - the suggested useful life for the chosen accounting
  standard and asset type, a positional name - and produces
  depreciation.AssetInput values. It also owns the static useful-life table
  and the display currencies.

JSON SCHEMA:
  {
    "provision_as_of": "2025-12-31",      // optional, YYYY-MM-DD
    "currency": "INR",                    // optional, display only
    "assets": [
      {
        "name": "Delivery van",
        "standard": "IFRS",
        "asset_type": "Vehicle",
        "cost": 10000,                    // number or "10000.00"
        "salvage": 1000,
        "in_service_date": "2024-01-15",
        "useful_life_years": 5,           // optional: suggested from table
        "mode": "monthly"                 // monthly | yearly (default)
      }
    ]
  }

VALIDATION:
  Rejected (ValidationError, wraps generic.ErrInvalidAsset):
    negative cost or salvage, missing/malformed dates, useful life < 1,
    unknown mode.
  Accepted with a warning downstream:
    salvage above cost, in-service date after the provision date.
  Names are free text and never rejected.

USAGE:
  f := factory.NewAssetFactory()
  batch, err := f.ParseRequest(body)
  schedules := depreciation.BuildSchedules(batch.Assets)

SEE ALSO:
  - lives.go: Useful-life lookup table
  - currency.go: Display currencies
  - depreciation/schedule.go: Consumes AssetInput
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/warp/depreciation-engine/depreciation"
	"github.com/warp/depreciation-engine/generic"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RequestJSON is one generate request.
type RequestJSON struct {
	Assets        []AssetJSON `json:"assets"`
	ProvisionAsOf string      `json:"provision_as_of,omitempty"`
	Currency      string      `json:"currency,omitempty"`
}

// AssetJSON is one asset of a request.
type AssetJSON struct {
	Name            string        `json:"name"`
	Standard        string        `json:"standard,omitempty"`
	AssetType       string        `json:"asset_type,omitempty"`
	Cost            generic.Money `json:"cost"`
	Salvage         generic.Money `json:"salvage"`
	InServiceDate   string        `json:"in_service_date"`
	UsefulLifeYears *int          `json:"useful_life_years,omitempty"`
	Mode            string        `json:"mode,omitempty"`
}

// Batch is a parsed request, ready for depreciation.BuildSchedules.
type Batch struct {
	Assets        []depreciation.AssetInput
	ProvisionAsOf *generic.TimePoint
	Currency      Currency
}

// =============================================================================
// ASSET FACTORY
// =============================================================================

// AssetFactory converts JSON assets to calculation inputs.
type AssetFactory struct {
	lives *UsefulLifeTable
}

// NewAssetFactory uses the shared useful-life table.
func NewAssetFactory() *AssetFactory {
	return &AssetFactory{lives: UsefulLives()}
}

// NewAssetFactoryWithTable uses a caller-supplied table.
func NewAssetFactoryWithTable(t *UsefulLifeTable) *AssetFactory {
	return &AssetFactory{lives: t}
}

// Lives returns the useful-life table used for defaults.
func (f *AssetFactory) Lives() *UsefulLifeTable {
	return f.lives
}

// ParseRequest decodes and validates a request body.
func (f *AssetFactory) ParseRequest(data []byte) (*Batch, error) {
	var rj RequestJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return nil, fmt.Errorf("failed to parse request JSON: %w", err)
	}
	return f.FromJSON(rj)
}

// FromJSON validates a decoded request.
func (f *AssetFactory) FromJSON(rj RequestJSON) (*Batch, error) {
	if len(rj.Assets) == 0 {
		return nil, generic.ErrNoAssets
	}

	batch := &Batch{
		Assets:   make([]depreciation.AssetInput, 0, len(rj.Assets)),
		Currency: LookupCurrency(rj.Currency),
	}

	if strings.TrimSpace(rj.ProvisionAsOf) != "" {
		asOf, err := generic.ParseDate(strings.TrimSpace(rj.ProvisionAsOf))
		if err != nil {
			return nil, &generic.ValidationError{Field: "provision_as_of", Message: "use YYYY-MM-DD"}
		}
		batch.ProvisionAsOf = &asOf
	}

	for i, aj := range rj.Assets {
		asset, err := f.AssetFromJSON(aj, i)
		if err != nil {
			return nil, err
		}
		asset.ProvisionAsOf = batch.ProvisionAsOf
		batch.Assets = append(batch.Assets, asset)
	}
	return batch, nil
}

// AssetFromJSON validates one asset. index is its position in the request,
// used for the default name and for error messages.
func (f *AssetFactory) AssetFromJSON(aj AssetJSON, index int) (depreciation.AssetInput, error) {
	name := aj.Name
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Asset_%d", index+1)
	}
	invalid := func(field, msg string) error {
		return &generic.ValidationError{Asset: fmt.Sprintf("#%d (%s)", index+1, name), Field: field, Message: msg}
	}

	if aj.Cost.IsNegative() {
		return depreciation.AssetInput{}, invalid("cost", "must be >= 0")
	}
	if aj.Salvage.IsNegative() {
		return depreciation.AssetInput{}, invalid("salvage", "must be >= 0")
	}

	inService, err := generic.ParseDate(strings.TrimSpace(aj.InServiceDate))
	if err != nil {
		return depreciation.AssetInput{}, invalid("in_service_date", "use YYYY-MM-DD")
	}

	mode, err := generic.ParseMode(aj.Mode)
	if err != nil {
		return depreciation.AssetInput{}, invalid("mode", err.Error())
	}

	life := f.lives.SuggestOrDefault(aj.Standard, aj.AssetType)
	if aj.UsefulLifeYears != nil {
		life = *aj.UsefulLifeYears
	}
	if life < 1 {
		return depreciation.AssetInput{}, invalid("useful_life_years", "must be >= 1")
	}
	if life > generic.MaxUsefulLifeYears {
		return depreciation.AssetInput{}, invalid("useful_life_years",
			fmt.Sprintf("must be <= %d", generic.MaxUsefulLifeYears))
	}

	return depreciation.AssetInput{
		Name:            name,
		Standard:        aj.Standard,
		AssetType:       aj.AssetType,
		Cost:            aj.Cost,
		Salvage:         aj.Salvage,
		InServiceDate:   inService,
		UsefulLifeYears: life,
		Mode:            mode,
	}, nil
}

// ToJSON converts a batch back to its canonical request form.
func (f *AssetFactory) ToJSON(batch *Batch) RequestJSON {
	rj := RequestJSON{
		Assets:   make([]AssetJSON, 0, len(batch.Assets)),
		Currency: batch.Currency.Code,
	}
	if batch.ProvisionAsOf != nil {
		rj.ProvisionAsOf = batch.ProvisionAsOf.String()
	}
	for _, a := range batch.Assets {
		life := a.UsefulLifeYears
		rj.Assets = append(rj.Assets, AssetJSON{
			Name:            a.Name,
			Standard:        a.Standard,
			AssetType:       a.AssetType,
			Cost:            a.Cost,
			Salvage:         a.Salvage,
			InServiceDate:   a.InServiceDate.String(),
			UsefulLifeYears: &life,
			Mode:            string(a.Mode),
		})
	}
	return rj
}
