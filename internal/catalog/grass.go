// Package catalog holds the static agronomic lookup tables the planner
// resolves zone references against. The scheduling kernel never performs
// lookups itself; a failed lookup stops here.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chrisharrington/irrigo/internal/model/entities"
)

var ErrUnknownGrass = errors.New("unknown grass")

// Crop coefficients for established turf under a pre-dawn watering regime.
// Cool-season species sit near 0.8, warm-season near 0.6.
var grasses = map[string]entities.Grass{
	"tall-fescue":        {Name: "tall fescue", Kc: 0.85},
	"kentucky-bluegrass": {Name: "kentucky bluegrass", Kc: 0.80},
	"perennial-ryegrass": {Name: "perennial ryegrass", Kc: 0.82},
	"fine-fescue":        {Name: "fine fescue", Kc: 0.75},
	"bermuda":            {Name: "bermudagrass", Kc: 0.60},
	"zoysia":             {Name: "zoysiagrass", Kc: 0.58},
	"st-augustine":       {Name: "st. augustine", Kc: 0.65},
	"buffalo":            {Name: "buffalograss", Kc: 0.55},
}

// GrassByID returns the grass record for an identifier.
func GrassByID(id string) (entities.Grass, error) {
	g, ok := grasses[id]
	if !ok {
		return entities.Grass{}, fmt.Errorf("%w: %q", ErrUnknownGrass, id)
	}
	return g, nil
}

// GrassIDs lists the known identifiers in a stable order.
func GrassIDs() []string {
	ids := make([]string, 0, len(grasses))
	for id := range grasses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
