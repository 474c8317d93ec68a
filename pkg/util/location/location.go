package location

import "strings"

// Mode selects the fallback policy for unmapped Hawaii cities. The policy is
// chosen once per import run and applied uniformly.
type Mode string

const (
	// ModeOpen leaves Island empty when the city is unmapped; the row is then
	// filtered out downstream.
	ModeOpen Mode = "open"
	// ModeStrict defaults unmapped Hawaii locations to Honolulu on Oahu.
	ModeStrict Mode = "strict"
)

// Place is a normalized (city, state, island) triple.
type Place struct {
	City   string
	State  string
	Island string
}

// defaultCityIslands maps Hawaii cities to their island. Exact, case-sensitive
// match; no geocoding, no fuzzy matching.
var defaultCityIslands = map[string]string{
	"Honolulu":      "Oahu",
	"Aiea":          "Oahu",
	"Pearl City":    "Oahu",
	"Kaneohe":       "Oahu",
	"Kailua":        "Oahu",
	"Mililani":      "Oahu",
	"Mililani Town": "Oahu",
	"Waipahu":       "Oahu",
	"Ewa Beach":     "Oahu",
	"Kapolei":       "Oahu",
	"Waianae":       "Oahu",
	"Haleiwa":       "Oahu",
	"Waimanalo":     "Oahu",
	"Hilo":          "Big Island",
	"Kailua-Kona":   "Big Island",
	"Kona":          "Big Island",
	"Waimea":        "Big Island",
	"Holualoa":      "Big Island",
	"Honokaa":       "Big Island",
	"Kahului":       "Maui",
	"Wailuku":       "Maui",
	"Kihei":         "Maui",
	"Lahaina":       "Maui",
	"Makawao":       "Maui",
	"Kula":          "Maui",
	"Lihue":         "Kauai",
	"Kapaa":         "Kauai",
	"Kilauea":       "Kauai",
	"Hanalei":       "Kauai",
	"Kaunakakai":    "Molokai",
	"Lanai City":    "Lanai",
}

// Resolver maps free-text locations to normalized places.
type Resolver struct {
	table map[string]string
	mode  Mode
}

// NewResolver creates a resolver with the built-in city table.
func NewResolver(mode Mode) *Resolver {
	return NewResolverWithTable(defaultCityIslands, mode)
}

// NewResolverWithTable creates a resolver with a caller-supplied city table, so
// the mapping can be extended without redeploying logic.
func NewResolverWithTable(table map[string]string, mode Mode) *Resolver {
	return &Resolver{table: table, mode: mode}
}

// Resolve splits the first two comma-separated segments into city and state and
// derives the island from the city table. Empty input yields an empty Place.
func (r *Resolver) Resolve(raw string) Place {
	if strings.TrimSpace(raw) == "" {
		return Place{}
	}

	parts := strings.Split(raw, ",")
	city := strings.TrimSpace(parts[0])
	state := ""
	if len(parts) > 1 {
		state = strings.TrimSpace(parts[1])
	}

	island := ""
	if city != "" {
		island = r.table[city]
	}

	if island == "" && r.mode == ModeStrict && state == "Hawaii" {
		island = "Oahu"
		if city == "" {
			city = "Honolulu"
		}
	}

	return Place{City: city, State: state, Island: island}
}

// DefaultTable returns a copy of the built-in city table.
func DefaultTable() map[string]string {
	table := make(map[string]string, len(defaultCityIslands))
	for city, island := range defaultCityIslands {
		table[city] = island
	}
	return table
}
