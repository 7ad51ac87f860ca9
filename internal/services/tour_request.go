package services

import (
	"fmt"
	"route-planner-service/internal/domain"
)

// BuildTourRequest renders the provider location list: the origin named
// domain.StartLocationName, then one entry per stop in input order.
// Every stop must already carry coordinates.
func BuildTourRequest(start domain.RegionStartPoint, stops []domain.AddressRecord) ([]domain.TourLocation, error) {
	locations := make([]domain.TourLocation, 0, len(stops)+1)
	locations = append(locations, domain.TourLocation{
		Name:         domain.StartLocationName,
		Lat:          start.Lat,
		Lng:          start.Lng,
		Restrictions: domain.AlwaysOpen,
	})

	for i, s := range stops {
		c, ok := s.Coords()
		if !ok {
			return nil, domain.NewInvalidInputError(
				"Adres zonder coördinaten: "+s.FullAddress,
				fmt.Errorf("build tour request: stop %d (%q) has no coordinates", i+1, s.FullAddress),
			)
		}
		locations = append(locations, domain.TourLocation{
			Name:         domain.EncodeStopName(i+1, s.BranchID),
			Lat:          c.Lat,
			Lng:          c.Lng,
			Restrictions: domain.AlwaysOpen,
		})
	}
	return locations, nil
}
