package services

import (
	"errors"
	"route-planner-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTourRequest(t *testing.T) {
	start, _ := domain.LookupRegion("ARNHEM")
	locs, err := BuildTourRequest(start, []domain.AddressRecord{
		recAt("1103", "A", "P", 51.97, 5.66),
		recAt("2001", "B", "P", 52.01, 5.1),
	})
	require.NoError(t, err)
	require.Len(t, locs, 3)

	assert.Equal(t, domain.TourLocation{
		Name: "Start", Lat: 51.9866, Lng: 5.9525, Restrictions: domain.Restrictions{Ready: 0, Due: 999},
	}, locs[0])
	assert.Equal(t, "Stop 1 - 1103", locs[1].Name)
	assert.Equal(t, "Stop 2 - 2001", locs[2].Name)
	assert.Equal(t, 52.01, locs[2].Lat)
	for _, l := range locs {
		assert.Equal(t, domain.AlwaysOpen, l.Restrictions)
	}
}

func TestBuildTourRequestRequiresCoordinates(t *testing.T) {
	start, _ := domain.LookupRegion("UTRECHT")
	_, err := BuildTourRequest(start, []domain.AddressRecord{rec("1", "A", "P", 0)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
