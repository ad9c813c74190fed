package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chrisharrington/irrigo/internal/model/entities"
)

var ErrUnknownSoil = errors.New("unknown soil")

// Water-holding capacity (mm per m of root depth) and steady-state
// infiltration (mm/hr) per USDA textural class, midpoints of published ranges.
var soils = map[string]entities.Soil{
	"sand":       {Name: "sand", AWHCMmPerM: 70, InfiltrationMmPerHr: 50},
	"loamy-sand": {Name: "loamy sand", AWHCMmPerM: 90, InfiltrationMmPerHr: 30},
	"sandy-loam": {Name: "sandy loam", AWHCMmPerM: 120, InfiltrationMmPerHr: 22},
	"loam":       {Name: "loam", AWHCMmPerM: 150, InfiltrationMmPerHr: 25},
	"silt-loam":  {Name: "silt loam", AWHCMmPerM: 170, InfiltrationMmPerHr: 13},
	"clay-loam":  {Name: "clay loam", AWHCMmPerM: 165, InfiltrationMmPerHr: 8},
	"silty-clay": {Name: "silty clay", AWHCMmPerM: 160, InfiltrationMmPerHr: 5},
	"clay":       {Name: "clay", AWHCMmPerM: 170, InfiltrationMmPerHr: 4},
}

// SoilByID returns the soil record for an identifier.
func SoilByID(id string) (entities.Soil, error) {
	s, ok := soils[id]
	if !ok {
		return entities.Soil{}, fmt.Errorf("%w: %q", ErrUnknownSoil, id)
	}
	return s, nil
}

// SoilIDs lists the known identifiers in a stable order.
func SoilIDs() []string {
	ids := make([]string, 0, len(soils))
	for id := range soils {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
