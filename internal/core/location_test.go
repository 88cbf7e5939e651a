package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umbrella-backend-go/internal/models"
)

func TestZoneForUmbrella(t *testing.T) {
	testCases := []struct {
		id       int
		expected models.Zone
	}{
		{1, models.ZoneDome},
		{4, models.ZoneDome},
		{7, models.ZoneDome},
		{8, models.ZoneSports},
		{11, models.ZoneSports},
		{14, models.ZoneSports},
		{15, models.ZoneCafeteria},
		{18, models.ZoneCafeteria},
		{21, models.ZoneCafeteria},
	}

	for _, tc := range testCases {
		zone, err := ZoneForUmbrella(tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, zone, "umbrella %d", tc.id)
	}
}

func TestZoneForUmbrellaOutOfRange(t *testing.T) {
	for _, id := range []int{0, -1, 22, 100} {
		_, err := ZoneForUmbrella(id)
		assert.ErrorIs(t, err, ErrInvalidUmbrellaID, "umbrella %d", id)
	}
}

func TestUmbrellasForZone(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, UmbrellasForZone(models.ZoneDome))
	assert.Equal(t, []int{8, 9, 10, 11, 12, 13, 14}, UmbrellasForZone(models.ZoneSports))
	assert.Equal(t, []int{15, 16, 17, 18, 19, 20, 21}, UmbrellasForZone(models.ZoneCafeteria))
	assert.Nil(t, UmbrellasForZone(models.Zone("ดาวอังคาร")))
}

// Every id maps to exactly one zone and every zone claims exactly the
// ids that map to it.
func TestZonePartition(t *testing.T) {
	seen := make(map[int]models.Zone)
	for _, zone := range Zones() {
		for _, id := range UmbrellasForZone(zone) {
			_, dup := seen[id]
			require.False(t, dup, "umbrella %d claimed twice", id)
			seen[id] = zone
		}
	}
	require.Len(t, seen, MaxUmbrellaID)

	for id := MinUmbrellaID; id <= MaxUmbrellaID; id++ {
		zone, err := ZoneForUmbrella(id)
		require.NoError(t, err)
		assert.Equal(t, seen[id], zone, "umbrella %d", id)
	}
}
