package services

import (
	"fmt"
	"math"

	"github.com/yungbote/tenancy-backend/internal/types"
)

type OccupancyStats struct {
	Total                 int     `json:"total"`
	AvailablePercentage   float64 `json:"availablePercentage"`
	UnavailablePercentage float64 `json:"unavailablePercentage"`
}

// ComputeOccupancyStats derives availability from the current snapshot.
// Occupancy is never stored on the apartment row; recomputing from the
// checked-agreement set keeps the two collections from drifting.
func ComputeOccupancyStats(apartments []*types.Apartment, checkedAgreements []*types.Agreement) OccupancyStats {
	total := len(apartments)
	if total == 0 {
		return OccupancyStats{}
	}

	occupied := make(map[string]struct{}, len(checkedAgreements))
	for _, agreement := range checkedAgreements {
		if agreement == nil || agreement.Status != types.AgreementStatusChecked {
			continue
		}
		occupied[occupancyKey(agreement.BlockName, agreement.ApartmentNo)] = struct{}{}
	}

	unavailable := 0
	for _, apartment := range apartments {
		if apartment == nil {
			continue
		}
		if _, ok := occupied[occupancyKey(apartment.BlockName, apartment.ApartmentNo)]; ok {
			unavailable++
		}
	}
	available := total - unavailable

	return OccupancyStats{
		Total:                 total,
		AvailablePercentage:   roundPct(available, total),
		UnavailablePercentage: roundPct(unavailable, total),
	}
}

func occupancyKey(blockName string, apartmentNo int) string {
	return fmt.Sprintf("%s-%d", blockName, apartmentNo)
}

func roundPct(part, total int) float64 {
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
