package nscp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLoadCase is returned for a load tag outside the NSCP load cases
var ErrUnknownLoadCase = errors.New("unknown load case")

// LoadCase identifies the source of a nodal load
type LoadCase string

// Load cases recognized by NSCP 2015 Section 203.3
const (
	Dead       LoadCase = "D"  // D - Dead load
	Live       LoadCase = "L"  // L - Live load
	Roof       LoadCase = "Lr" // Lr - Roof live load
	Wind       LoadCase = "W"  // W - Wind load
	Earthquake LoadCase = "E"  // E - Earthquake load
	Rain       LoadCase = "R"  // R - Rain load
)

// LoadCases lists every load case in code order
var LoadCases = []LoadCase{Dead, Live, Roof, Wind, Earthquake, Rain}

// ParseLoadCase normalizes a load case tag. An empty tag is a dead load.
func ParseLoadCase(tag string) (LoadCase, error) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "", "D", "DEAD":
		return Dead, nil
	case "L", "LIVE":
		return Live, nil
	case "LR", "ROOF":
		return Roof, nil
	case "W", "WIND":
		return Wind, nil
	case "E", "EARTHQUAKE":
		return Earthquake, nil
	case "R", "RAIN":
		return Rain, nil
	}
	return "", fmt.Errorf("%w %q (expected D, L, Lr, W, E or R)", ErrUnknownLoadCase, tag)
}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	// Load factors for each load type
	Dead       float64 `json:"-"` // D - Dead load
	Live       float64 `json:"-"` // L - Live load
	Roof       float64 `json:"-"` // Lr - Roof live load
	Wind       float64 `json:"-"` // W - Wind load
	Earthquake float64 `json:"-"` // E - Earthquake load
	Rain       float64 `json:"-"` // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations.
// Equations with "or" alternatives are split into one combination per
// alternative (2a/2b, 3a-3d, 4a/4b), so no combination applies both sides.
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2a",
		Description: "1.2D + 1.6L + 0.5Lr",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
	},
	{
		ID:          "2b",
		Description: "1.2D + 1.6L + 0.5R",
		Dead:        1.2,
		Live:        1.6,
		Rain:        0.5,
	},
	{
		ID:          "3a",
		Description: "1.2D + 1.6Lr + 1.0L",
		Dead:        1.2,
		Roof:        1.6,
		Live:        1.0,
	},
	{
		ID:          "3b",
		Description: "1.2D + 1.6Lr + 0.5W",
		Dead:        1.2,
		Roof:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "3c",
		Description: "1.2D + 1.6R + 1.0L",
		Dead:        1.2,
		Rain:        1.6,
		Live:        1.0,
	},
	{
		ID:          "3d",
		Description: "1.2D + 1.6R + 0.5W",
		Dead:        1.2,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4a",
		Description: "1.2D + 1.0W + 1.0L + 0.5Lr",
		Dead:        1.2,
		Wind:        1.0,
		Live:        1.0,
		Roof:        0.5,
	},
	{
		ID:          "4b",
		Description: "1.2D + 1.0W + 1.0L + 0.5R",
		Dead:        1.2,
		Wind:        1.0,
		Live:        1.0,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// Combination returns the combination with the given id from combos
func Combination(combos []LoadCombination, id string) (LoadCombination, bool) {
	for _, lc := range combos {
		if lc.ID == id {
			return lc, true
		}
	}
	return LoadCombination{}, false
}

// SimplifiedCombinations for common gravity-only frames
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// Factor returns the load factor the combination applies to a load case
func (lc LoadCombination) Factor(c LoadCase) float64 {
	switch c {
	case Dead:
		return lc.Dead
	case Live:
		return lc.Live
	case Roof:
		return lc.Roof
	case Wind:
		return lc.Wind
	case Earthquake:
		return lc.Earthquake
	case Rain:
		return lc.Rain
	}
	return 0
}
