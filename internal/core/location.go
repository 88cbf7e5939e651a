package core

import (
	"errors"
	"fmt"

	"umbrella-backend-go/internal/models"
)

// Umbrella ids are fixed: 21 umbrellas split evenly across the three
// campus zones, seven per zone.
const (
	MinUmbrellaID = 1
	MaxUmbrellaID = 21

	umbrellasPerZone = 7
)

// ErrInvalidUmbrellaID is returned for ids outside 1..21.
var ErrInvalidUmbrellaID = errors.New("umbrella id out of range")

// zoneOrder is the canonical zone listing used for seeding, reports and
// the zones endpoint.
var zoneOrder = []models.Zone{models.ZoneDome, models.ZoneSports, models.ZoneCafeteria}

// ZoneForUmbrella maps an umbrella id to its home zone: 1-7 under the
// dome, 8-14 at the sports center, 15-21 at the cafeteria.
func ZoneForUmbrella(id int) (models.Zone, error) {
	if id < MinUmbrellaID || id > MaxUmbrellaID {
		return "", fmt.Errorf("umbrella %d: %w", id, ErrInvalidUmbrellaID)
	}
	return zoneOrder[(id-MinUmbrellaID)/umbrellasPerZone], nil
}

// UmbrellasForZone returns the ids homed at a zone in ascending order.
func UmbrellasForZone(zone models.Zone) []int {
	for i, z := range zoneOrder {
		if z == zone {
			ids := make([]int, 0, umbrellasPerZone)
			first := MinUmbrellaID + i*umbrellasPerZone
			for id := first; id < first+umbrellasPerZone; id++ {
				ids = append(ids, id)
			}
			return ids
		}
	}
	return nil
}

// Zones returns the three zones in canonical order.
func Zones() []models.Zone {
	out := make([]models.Zone, len(zoneOrder))
	copy(out, zoneOrder)
	return out
}
