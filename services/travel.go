package services

import "scanquote/rates"

// Travel modes, selected by one-way distance.
const (
	TravelModeShort = "short"
	TravelModeMid   = "mid"
	TravelModeLong  = "long"
)

// ComputeTravelCost returns the up-team cost of the site trip and the mode
// it was computed under. All thresholds and rates come from the travel
// table; the engine marks the cost up by M for the client price.
//
//   - short: flat bracket by trip length, longer trips clamp to the last
//     bracket.
//   - mid: daily round-trip mileage; past the overnight threshold the crew
//     stays over instead (single round trip + lodging and per diem,
//     days-1 nights).
//   - long: airfare per tech + car rental for days+1 + parking + lodging
//     and per diem for every trip day.
func ComputeTravelCost(plan TravelPlan, crew int, tv rates.Travel) (cost float64, mode string) {
	days := plan.TripDays
	if days < 1 {
		days = 1
	}
	if crew < 1 {
		crew = 1
	}

	switch {
	case plan.DistanceMiles <= tv.ShortMaxMiles:
		return shortFlatAmount(tv.ShortFlat, days), TravelModeShort

	case plan.DistanceMiles <= tv.MidMaxMiles:
		roundTrip := plan.DistanceMiles * 2 * tv.MileageRate
		if days > tv.OvernightTripDays {
			nights := float64(days - 1)
			lodging := nights * tv.HotelNightly * float64(crew)
			perDiem := float64(days) * tv.PerDiemDaily * float64(crew)
			return roundTrip + lodging + perDiem, TravelModeMid
		}
		return roundTrip * float64(days), TravelModeMid

	default:
		airfare := tv.AirfarePerTech * float64(crew)
		rental := tv.CarRentalDaily * float64(days+1)
		parking := tv.ParkingDaily * float64(days)
		lodging := float64(days) * tv.HotelNightly * float64(crew)
		perDiem := float64(days) * tv.PerDiemDaily * float64(crew)
		return airfare + rental + parking + lodging + perDiem, TravelModeLong
	}
}

func shortFlatAmount(brackets []rates.TripFlat, days int) float64 {
	if len(brackets) == 0 {
		return 0
	}
	for _, b := range brackets {
		if days <= b.MaxDays {
			return b.Amount
		}
	}
	return brackets[len(brackets)-1].Amount
}
