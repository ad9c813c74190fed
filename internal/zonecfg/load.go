// Package zonecfg loads zone configurations from disk for the services. Zones
// may inline their agronomic numbers or reference the catalogues by id.
package zonecfg

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chrisharrington/irrigo/internal/catalog"
	"github.com/chrisharrington/irrigo/internal/model/entities"
	"github.com/chrisharrington/irrigo/internal/scheduler"
)

// zoneConfig is a Zone as it appears in the config file, optionally naming
// catalogue entries instead of inlining grass and soil properties.
type zoneConfig struct {
	entities.Zone
	GrassID string `json:"grass_id,omitempty"`
	SoilID  string `json:"soil_id,omitempty"`
}

// Load reads the zone configuration file, resolves catalogue references and
// validates every zone up front so a bad config fails at startup rather than
// on the first request.
func Load(path string) (map[string]entities.Zone, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var configs []zoneConfig
	if err := json.Unmarshal(raw, &configs); err != nil {
		return nil, err
	}

	out := make(map[string]entities.Zone, len(configs))
	for _, cfg := range configs {
		z := cfg.Zone
		if z.ID == "" {
			return nil, fmt.Errorf("zone without id")
		}
		if _, dup := out[z.ID]; dup {
			return nil, fmt.Errorf("duplicate zone id %q", z.ID)
		}

		if cfg.GrassID != "" {
			g, err := catalog.GrassByID(cfg.GrassID)
			if err != nil {
				return nil, fmt.Errorf("zone %s: %w", z.ID, err)
			}
			z.Grass = g
		}
		if cfg.SoilID != "" {
			s, err := catalog.SoilByID(cfg.SoilID)
			if err != nil {
				return nil, fmt.Errorf("zone %s: %w", z.ID, err)
			}
			z.Soil = s
		}

		if err := scheduler.ValidateZone(z); err != nil {
			return nil, fmt.Errorf("zone %s: %w", z.ID, err)
		}
		out[z.ID] = z
	}
	return out, nil
}
