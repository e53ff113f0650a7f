package services

import (
	"bytes"
	"testing"

	"scanquote/rates"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// testTables returns the compiled-in default rate snapshot.
func testTables(t *testing.T) *rates.Tables {
	t.Helper()
	return rates.Default()
}

// commercialArea returns a mid-band commercial area with quiet site
// conditions, the baseline for pricing scenarios.
func commercialArea(sqft float64) AreaInput {
	return AreaInput{
		Name:          "Main Building",
		BuildingType:  "commercial",
		SquareFootage: sqft,
		Scope:         ScopeFull,
		LOD:           "300",
		Era:           "modern",
		Occupied:      "vacant",
		RoomDensity:   2,
	}
}

// quoteForm wraps areas in a minimal valid scoping form with a short
// local trip.
func quoteForm(areas ...AreaInput) *ScopingForm {
	return &ScopingForm{
		UPID:        "S2P-42-2026",
		ClientName:  "Meridian Development",
		ProjectName: "HQ Renovation",
		Areas:       areas,
		Travel:      TravelPlan{DistanceMiles: 20, TripDays: 1, CrewSize: 2},
	}
}
