package factory

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// USEFUL-LIFE LOOKUP
// =============================================================================

//go:embed useful_lives.yaml
var usefulLivesYAML []byte

type usefulLivesDoc struct {
	DefaultYears int           `yaml:"default_years"`
	Standards    []standardDoc `yaml:"standards"`
	AssetTypes   []string      `yaml:"asset_types"`
}

type standardDoc struct {
	Name  string         `yaml:"name"`
	Lives map[string]int `yaml:"lives"`
}

// UsefulLifeTable maps accounting standard -> asset type -> suggested life
// in years. It is built once from the embedded document and never mutated;
// accessors hand out copies.
type UsefulLifeTable struct {
	defaultYears int
	standards    []string
	assetTypes   []string
	lives        map[string]map[string]int
}

var (
	lifeTable     *UsefulLifeTable
	lifeTableErr  error
	lifeTableOnce sync.Once
)

// UsefulLives returns the shared table. The embedded document is compiled
// into the binary, so a parse failure is a build defect and panics.
func UsefulLives() *UsefulLifeTable {
	lifeTableOnce.Do(func() {
		lifeTable, lifeTableErr = ParseUsefulLives(usefulLivesYAML)
	})
	if lifeTableErr != nil {
		panic(fmt.Sprintf("factory: embedded useful-life table: %v", lifeTableErr))
	}
	return lifeTable
}

// ParseUsefulLives builds a table from a YAML document shaped like
// useful_lives.yaml.
func ParseUsefulLives(data []byte) (*UsefulLifeTable, error) {
	var doc usefulLivesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse useful-life table: %w", err)
	}
	if doc.DefaultYears < 1 {
		return nil, fmt.Errorf("parse useful-life table: default_years must be >= 1, got %d", doc.DefaultYears)
	}

	t := &UsefulLifeTable{
		defaultYears: doc.DefaultYears,
		assetTypes:   append([]string(nil), doc.AssetTypes...),
		lives:        make(map[string]map[string]int, len(doc.Standards)),
	}
	for _, s := range doc.Standards {
		if _, dup := t.lives[s.Name]; dup {
			return nil, fmt.Errorf("parse useful-life table: duplicate standard %q", s.Name)
		}
		lives := make(map[string]int, len(s.Lives))
		for assetType, years := range s.Lives {
			if years < 1 {
				return nil, fmt.Errorf("parse useful-life table: %s/%s must be >= 1, got %d", s.Name, assetType, years)
			}
			lives[assetType] = years
		}
		t.standards = append(t.standards, s.Name)
		t.lives[s.Name] = lives
	}
	return t, nil
}

// Suggest returns the tabulated life for standard and asset type.
func (t *UsefulLifeTable) Suggest(standard, assetType string) (int, bool) {
	years, ok := t.lives[standard][assetType]
	return years, ok
}

// SuggestOrDefault falls back to the default life for pairs the table does
// not cover.
func (t *UsefulLifeTable) SuggestOrDefault(standard, assetType string) int {
	if years, ok := t.Suggest(standard, assetType); ok {
		return years
	}
	return t.defaultYears
}

func (t *UsefulLifeTable) DefaultYears() int { return t.defaultYears }

// Standards lists the standards in document order.
func (t *UsefulLifeTable) Standards() []string { return append([]string(nil), t.standards...) }

// AssetTypes lists the selectable asset types in document order.
func (t *UsefulLifeTable) AssetTypes() []string { return append([]string(nil), t.assetTypes...) }

// HasStandard reports whether the table knows the standard.
func (t *UsefulLifeTable) HasStandard(standard string) bool {
	_, ok := t.lives[standard]
	return ok
}

// Entries returns a copy of the table for display.
func (t *UsefulLifeTable) Entries() map[string]map[string]int {
	out := make(map[string]map[string]int, len(t.lives))
	for s, lives := range t.lives {
		cp := make(map[string]int, len(lives))
		for k, v := range lives {
			cp[k] = v
		}
		out[s] = cp
	}
	return out
}

// TabulatedTypes lists the asset types with an entry under standard, sorted.
func (t *UsefulLifeTable) TabulatedTypes(standard string) []string {
	var types []string
	for assetType := range t.lives[standard] {
		types = append(types, assetType)
	}
	sort.Strings(types)
	return types
}

// SuggestUsefulLife looks a pair up in the shared table.
func SuggestUsefulLife(standard, assetType string) (int, bool) {
	return UsefulLives().Suggest(standard, assetType)
}

// DefaultUsefulLife looks a pair up in the shared table, falling back to
// the default life.
func DefaultUsefulLife(standard, assetType string) int {
	return UsefulLives().SuggestOrDefault(standard, assetType)
}
