package catalog

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Rarity represents the rarity of a trophy
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Definition defines a single trophy. Definitions are immutable after load.
type Definition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Rarity      Rarity
	Requirement string
	Order       int
	Enabled     bool
	Condition   Condition
}

// UnmarshalJSON dispatches condition_data into the variant selected by
// condition_type.
func (d *Definition) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            string          `json:"id"`
		Name          string          `json:"name"`
		Description   string          `json:"description"`
		Icon          string          `json:"icon"`
		Rarity        Rarity          `json:"rarity"`
		Requirement   string          `json:"requirement"`
		Order         int             `json:"order"`
		Enabled       bool            `json:"enabled"`
		ConditionType string          `json:"condition_type"`
		ConditionData json.RawMessage `json:"condition_data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	cond, err := decodeCondition(raw.ConditionType, raw.ConditionData)
	if err != nil {
		return fmt.Errorf("trophy %q: decoding %s condition: %w", raw.ID, raw.ConditionType, err)
	}

	d.ID = raw.ID
	d.Name = raw.Name
	d.Description = raw.Description
	d.Icon = raw.Icon
	d.Rarity = raw.Rarity
	d.Requirement = raw.Requirement
	d.Order = raw.Order
	d.Enabled = raw.Enabled
	d.Condition = cond
	return nil
}

// Parse decodes a catalog document, drops disabled definitions and sorts
// the remainder by display order. Disabled definitions never participate
// in evaluation or completion math.
func Parse(data []byte) ([]Definition, error) {
	var defs []Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parsing trophy catalog: %w", err)
	}

	defs = lo.Filter(defs, func(d Definition, _ int) bool {
		return d.Enabled
	})
	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].Order < defs[j].Order
	})
	return defs, nil
}

// IDs returns the definition IDs in display order.
func IDs(defs []Definition) []string {
	return lo.Map(defs, func(d Definition, _ int) string {
		return d.ID
	})
}
