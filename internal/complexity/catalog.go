// Package complexity converts a complexity tier and factor selections into
// labor hours.
package complexity

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/toiture-lv/quote-api/internal/domain"
)

// FactorKey identifies one of the eight complexity factors
type FactorKey string

const (
	FactorRoofPitch        FactorKey = "roof_pitch"
	FactorAccessDifficulty FactorKey = "access_difficulty"
	FactorDemolition       FactorKey = "demolition"
	FactorPenetrations     FactorKey = "penetrations_count"
	FactorSecurity         FactorKey = "security"
	FactorMaterialRemoval  FactorKey = "material_removal"
	FactorRoofSections     FactorKey = "roof_sections_count"
	FactorPreviousLayers   FactorKey = "previous_layers_count"
)

// AllFactors lists every factor a catalog must define, in evaluation order
var AllFactors = []FactorKey{
	FactorRoofPitch,
	FactorAccessDifficulty,
	FactorDemolition,
	FactorPenetrations,
	FactorSecurity,
	FactorMaterialRemoval,
	FactorRoofSections,
	FactorPreviousLayers,
}

// Kind is the shape of a factor's hours rule
type Kind int

const (
	// KindSingleChoice contributes the hours of the one chosen option
	KindSingleChoice Kind = iota + 1
	// KindMultiSelect contributes the hours of every checked option
	KindMultiSelect
	// KindPerItem contributes count * HoursPerItem
	KindPerItem
	// KindAboveBaseline contributes max(0, count-Baseline) * HoursPerItem
	KindAboveBaseline
)

var kindNames = map[Kind]string{
	KindSingleChoice:  "single_choice",
	KindMultiSelect:   "multi_select",
	KindPerItem:       "per_item",
	KindAboveBaseline: "above_baseline",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown factor kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown factor kind %q", string(text))
}

// expectedKind pins each factor to its rule shape
var expectedKind = map[FactorKey]Kind{
	FactorRoofPitch:        KindSingleChoice,
	FactorAccessDifficulty: KindMultiSelect,
	FactorDemolition:       KindSingleChoice,
	FactorPenetrations:     KindPerItem,
	FactorSecurity:         KindMultiSelect,
	FactorMaterialRemoval:  KindSingleChoice,
	FactorRoofSections:     KindAboveBaseline,
	FactorPreviousLayers:   KindAboveBaseline,
}

// Option is one selectable value of a choice factor
type Option struct {
	Name  string  `json:"name" mapstructure:"name"`
	Hours float64 `json:"hours" mapstructure:"hours"`
}

// Factor describes one complexity dimension. Options is used by choice kinds,
// HoursPerItem and Baseline by count kinds.
type Factor struct {
	Key  FactorKey `json:"key" mapstructure:"key"`
	Kind Kind      `json:"kind" mapstructure:"kind"`
	// Label is the breakdown key. Multi-select factors use it as a prefix.
	Label        string   `json:"label" mapstructure:"label"`
	Options      []Option `json:"options,omitempty" mapstructure:"options"`
	HoursPerItem float64  `json:"hours_per_item,omitempty" mapstructure:"hours_per_item"`
	Baseline     int      `json:"baseline,omitempty" mapstructure:"baseline"`
}

func (f Factor) option(name string) (Option, bool) {
	for _, o := range f.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Tier is a complexity level with its base hours and documented score range
type Tier struct {
	Level     int     `json:"level" mapstructure:"level"`
	BaseHours float64 `json:"base_hours" mapstructure:"base_hours"`
	ScoreMin  int     `json:"score_min" mapstructure:"score_min"`
	ScoreMax  int     `json:"score_max" mapstructure:"score_max"`
}

// Catalog is a versioned set of tiers and factors
type Catalog struct {
	Version string   `json:"version" mapstructure:"version"`
	Tiers   []Tier   `json:"tiers" mapstructure:"tiers"`
	Factors []Factor `json:"factors" mapstructure:"factors"`
}

// DefaultCatalog returns the built-in catalog
func DefaultCatalog() *Catalog {
	return &Catalog{
		Version: "2024-01",
		Tiers: []Tier{
			{Level: 1, BaseHours: 0, ScoreMin: 0, ScoreMax: 16},
			{Level: 2, BaseHours: 4, ScoreMin: 17, ScoreMax: 33},
			{Level: 3, BaseHours: 8, ScoreMin: 34, ScoreMax: 50},
			{Level: 4, BaseHours: 16, ScoreMin: 51, ScoreMax: 66},
			{Level: 5, BaseHours: 24, ScoreMin: 67, ScoreMax: 83},
			{Level: 6, BaseHours: 40, ScoreMin: 84, ScoreMax: 100},
		},
		Factors: []Factor{
			{
				Key: FactorRoofPitch, Kind: KindSingleChoice, Label: "roof_pitch",
				Options: []Option{{"flat", 0}, {"low", 1}, {"medium", 2}, {"steep", 4}, {"very_steep", 8}},
			},
			{
				Key: FactorAccessDifficulty, Kind: KindMultiSelect, Label: "access",
				Options: []Option{
					{"no_crane", 6}, {"narrow_driveway", 2}, {"street_blocking", 3},
					{"high_elevation", 4}, {"difficult_terrain", 2}, {"no_material_drop", 3},
				},
			},
			{
				Key: FactorDemolition, Kind: KindSingleChoice, Label: "demolition",
				Options: []Option{{"none", 0}, {"single_layer", 2}, {"multi_layer", 6}, {"structural", 10}},
			},
			{Key: FactorPenetrations, Kind: KindPerItem, Label: "penetrations", HoursPerItem: 0.5},
			{
				Key: FactorSecurity, Kind: KindMultiSelect, Label: "security",
				Options: []Option{{"harness", 1}, {"scaffolding", 4}, {"guardrails", 2}, {"winter_safety", 3}},
			},
			{
				Key: FactorMaterialRemoval, Kind: KindSingleChoice, Label: "material_removal",
				Options: []Option{{"none", 0}, {"standard", 2}, {"heavy", 4}, {"hazardous", 6}},
			},
			{Key: FactorRoofSections, Kind: KindAboveBaseline, Label: "roof_sections", HoursPerItem: 1, Baseline: 2},
			{Key: FactorPreviousLayers, Kind: KindAboveBaseline, Label: "previous_layers", HoursPerItem: 2, Baseline: 1},
		},
	}
}

// LoadCatalog reads a catalog file and validates it. The format follows
// the file extension (json, yaml, toml).
func LoadCatalog(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read complexity catalog: %w", err)
	}

	var cat Catalog
	// Factor kinds are names in the file
	hook := viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())
	if err := v.Unmarshal(&cat, hook); err != nil {
		return nil, fmt.Errorf("failed to parse complexity catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks that every factor is defined exactly once with its expected
// kind and that no hours value is negative.
func (c *Catalog) Validate() error {
	seen := make(map[FactorKey]bool, len(c.Factors))
	for _, f := range c.Factors {
		want, known := expectedKind[f.Key]
		if !known {
			return domain.Validationf("catalog: unknown factor %q", f.Key)
		}
		if seen[f.Key] {
			return domain.Validationf("catalog: factor %q defined twice", f.Key)
		}
		seen[f.Key] = true
		if f.Kind != want {
			return domain.Validationf("catalog: factor %q must be %s, got %s", f.Key, want, f.Kind)
		}
		if f.Label == "" {
			return domain.Validationf("catalog: factor %q has no label", f.Key)
		}
		if f.HoursPerItem < 0 || f.Baseline < 0 {
			return domain.Validationf("catalog: factor %q has a negative rule", f.Key)
		}
		for _, o := range f.Options {
			if o.Hours < 0 {
				return domain.Validationf("catalog: option %s.%s has negative hours", f.Key, o.Name)
			}
		}
	}
	for _, key := range AllFactors {
		if !seen[key] {
			return domain.Validationf("catalog: factor %q missing", key)
		}
	}
	if len(c.Tiers) == 0 {
		return domain.Validationf("catalog: no tiers defined")
	}
	for _, t := range c.Tiers {
		if t.BaseHours < 0 || t.ScoreMin > t.ScoreMax {
			return domain.Validationf("catalog: tier %d is malformed", t.Level)
		}
	}
	return nil
}

// Tier returns the tier at the given level
func (c *Catalog) Tier(level int) (Tier, error) {
	for _, t := range c.Tiers {
		if t.Level == level {
			return t, nil
		}
	}
	return Tier{}, domain.Validationf("unknown complexity tier %d", level)
}

// TierScore returns the midpoint of a tier's score range
func (c *Catalog) TierScore(level int) (int, error) {
	t, err := c.Tier(level)
	if err != nil {
		return 0, err
	}
	return t.ScoreMin + (t.ScoreMax-t.ScoreMin)/2, nil
}
