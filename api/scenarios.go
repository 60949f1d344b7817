/*
scenarios.go - Demo portfolios for testing and demonstrations

PURPOSE:

	Provides ready-made requests that exercise specific behaviours of the
	calculator. Running a scenario goes through exactly the same path as
	POST /api/schedules: the JSON is parsed by the asset factory, the
	schedules are built and aggregated, and the run is cached.

AVAILABLE SCENARIOS:

	yearly-basic:        10000 cost, 1000 salvage, 5 years, yearly
	monthly-one-year:    1 year monthly from 2024-01-15, 750.00 per month
	provision-cutoff:    same asset provisioned as of 2024-06-20
	salvage-over-cost:   salvage above cost, all periods zero
	future-asset:        in service after the provision date
	mixed-portfolio:     monthly and yearly assets across standards (INR)

HOW SCENARIOS WORK:
 1. Look up the scenario by ID
 2. Parse its request JSON via factory.AssetFactory
 3. Build, aggregate and cache like any other generate request

USAGE VIA API:

	GET  /api/scenarios
	POST /api/scenarios/provision-cutoff/run

ADDING NEW SCENARIOS:
 1. Add an entry to the 'scenarios' slice with ID, name, description
 2. Write its request as JSON in the same schema clients send

SEE ALSO:
  - handlers.go: generate, shared with CreateSchedule
  - factory/asset.go: Request JSON schema
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/warp/depreciation-engine/factory"
	"github.com/warp/depreciation-engine/generic"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ScenarioDTO
	Request string
}

var scenarios = []scenario{
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "yearly-basic",
			Name:        "Yearly Basic",
			Description: "10,000 cost, 1,000 salvage, 5 years yearly: 1,800.00 per year",
		},
		Request: `{
			"assets": [{
				"name": "Machine",
				"cost": 10000,
				"salvage": 1000,
				"in_service_date": "2024-01-01",
				"useful_life_years": 5,
				"mode": "yearly"
			}]
		}`,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "monthly-one-year",
			Name:        "Monthly, One Year",
			Description: "1-year monthly schedule from 2024-01-15: 750.00 per month",
		},
		Request: `{
			"assets": [{
				"name": "Laptop",
				"cost": 10000,
				"salvage": 1000,
				"in_service_date": "2024-01-15",
				"useful_life_years": 1,
				"mode": "monthly"
			}]
		}`,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "provision-cutoff",
			Name:        "Provision Cutoff",
			Description: "Monthly schedule provisioned as of 2024-06-20: Jan-Jun, 4,500.00",
		},
		Request: `{
			"provision_as_of": "2024-06-20",
			"assets": [{
				"name": "Laptop",
				"cost": 10000,
				"salvage": 1000,
				"in_service_date": "2024-01-15",
				"useful_life_years": 1,
				"mode": "monthly"
			}]
		}`,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "salvage-over-cost",
			Name:        "Salvage Over Cost",
			Description: "Salvage above cost: depreciable base clamps to zero",
		},
		Request: `{
			"assets": [{
				"name": "Artwork",
				"cost": 5000,
				"salvage": 6000,
				"in_service_date": "2024-01-01",
				"useful_life_years": 5,
				"mode": "yearly"
			}]
		}`,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "future-asset",
			Name:        "Future Asset",
			Description: "In service 2030-01-01, provisioned as of 2025-01-01: empty schedule",
		},
		Request: `{
			"provision_as_of": "2025-01-01",
			"assets": [{
				"name": "Warehouse",
				"cost": 250000,
				"salvage": 25000,
				"in_service_date": "2030-01-01",
				"useful_life_years": 20,
				"mode": "yearly"
			}]
		}`,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "mixed-portfolio",
			Name:        "Mixed Portfolio",
			Description: "Monthly and yearly assets with suggested lives, displayed in INR",
		},
		Request: `{
			"currency": "INR",
			"provision_as_of": "2025-12-31",
			"assets": [
				{
					"name": "Delivery van",
					"standard": "Indian GAAP",
					"asset_type": "Vehicle",
					"cost": 850000,
					"salvage": 50000,
					"in_service_date": "2024-04-01",
					"mode": "yearly"
				},
				{
					"name": "Design workstation",
					"standard": "IFRS",
					"asset_type": "Computer Equipment",
					"cost": 180000,
					"salvage": 0,
					"in_service_date": "2025-01-10",
					"mode": "monthly"
				},
				{
					"name": "Office chairs",
					"standard": "US GAAP",
					"asset_type": "Furniture",
					"cost": 42000,
					"salvage": 2000,
					"in_service_date": "2025-07-01",
					"mode": "monthly"
				}
			]
		}`,
	},
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return scenario{}, false
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = s.ScenarioDTO
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RunScenario generates and caches the report of a predefined scenario.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sc, ok := findScenario(id)
	if !ok {
		writeError(w, http.StatusNotFound, "scenario_not_found", "Unknown scenario", generic.ErrScenarioNotFound)
		return
	}

	batch, err := h.scenarioBatch(sc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "Failed to load scenario", err)
		return
	}

	report, err := h.generate(r.Context(), batch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "Failed to generate schedule", err)
		return
	}

	h.Log.WithField("scenario", sc.ID).Info("scenario run")
	writeJSON(w, http.StatusCreated, report)
}

func (h *Handler) scenarioBatch(sc scenario) (*factory.Batch, error) {
	var rj factory.RequestJSON
	if err := json.Unmarshal([]byte(sc.Request), &rj); err != nil {
		return nil, err
	}
	return h.Factory.FromJSON(rj)
}
