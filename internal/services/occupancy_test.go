package services

import (
	"testing"

	"github.com/yungbote/tenancy-backend/internal/types"
)

func TestComputeOccupancyStatsEmpty(t *testing.T) {
	stats := ComputeOccupancyStats(nil, nil)
	if stats.Total != 0 {
		t.Fatalf("expected total 0, got %d", stats.Total)
	}
	if stats.AvailablePercentage != 0 || stats.UnavailablePercentage != 0 {
		t.Fatalf("expected 0/0 percentages for empty portfolio, got %v/%v",
			stats.AvailablePercentage, stats.UnavailablePercentage)
	}
}

func TestComputeOccupancyStatsRounding(t *testing.T) {
	apartments := []*types.Apartment{
		{BlockName: "A", ApartmentNo: 1},
		{BlockName: "A", ApartmentNo: 2},
		{BlockName: "B", ApartmentNo: 1},
	}
	checked := []*types.Agreement{
		{BlockName: "A", ApartmentNo: 1, Status: types.AgreementStatusChecked},
	}

	stats := ComputeOccupancyStats(apartments, checked)
	if stats.Total != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total)
	}
	if stats.AvailablePercentage != 66.67 {
		t.Fatalf("expected available 66.67, got %v", stats.AvailablePercentage)
	}
	if stats.UnavailablePercentage != 33.33 {
		t.Fatalf("expected unavailable 33.33, got %v", stats.UnavailablePercentage)
	}
}

func TestComputeOccupancyStatsIgnoresUnknownApartments(t *testing.T) {
	apartments := []*types.Apartment{
		{BlockName: "A", ApartmentNo: 1},
		{BlockName: "A", ApartmentNo: 2},
	}
	// A checked agreement for an apartment that is not in the portfolio
	// must not skew the percentages.
	checked := []*types.Agreement{
		{BlockName: "Z", ApartmentNo: 99, Status: types.AgreementStatusChecked},
	}

	stats := ComputeOccupancyStats(apartments, checked)
	if stats.AvailablePercentage != 100 {
		t.Fatalf("expected available 100, got %v", stats.AvailablePercentage)
	}
	if stats.UnavailablePercentage != 0 {
		t.Fatalf("expected unavailable 0, got %v", stats.UnavailablePercentage)
	}
}

func TestComputeOccupancyStatsSkipsNonChecked(t *testing.T) {
	apartments := []*types.Apartment{
		{BlockName: "A", ApartmentNo: 1},
	}
	checked := []*types.Agreement{
		{BlockName: "A", ApartmentNo: 1, Status: types.AgreementStatusPending},
	}

	stats := ComputeOccupancyStats(apartments, checked)
	if stats.UnavailablePercentage != 0 {
		t.Fatalf("pending agreement must not occupy an apartment, got %v", stats.UnavailablePercentage)
	}
}
