package services

import "math"

// scansPerThousandSqft is the scan-setup density factor: each room-density
// point adds this many setups per 1,000 square feet.
const scansPerThousandSqft = 4.0

// DefaultScansPerDay is the per-tech field throughput assumed by schedule
// prefill, which runs before any rate tables are loaded.
const DefaultScansPerDay = 30

// EstimateScans predicts the scan-setup count for an area from its room
// density and square footage, rounded up to whole setups.
func EstimateScans(roomDensity int, squareFeet float64) int {
	if roomDensity <= 0 || squareFeet <= 0 {
		return 0
	}
	return int(math.Ceil(scansPerThousandSqft * float64(roomDensity) * squareFeet / 1000))
}

// EstimateScanDays converts a scan count into whole field days for a crew
// at the given per-tech daily throughput.
func EstimateScanDays(scans, scansPerDay, crewSize int) int {
	if scans <= 0 {
		return 0
	}
	if scansPerDay <= 0 {
		scansPerDay = DefaultScansPerDay
	}
	if crewSize <= 0 {
		crewSize = 1
	}
	return int(math.Ceil(float64(scans) / float64(scansPerDay*crewSize)))
}
