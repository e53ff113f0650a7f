package services

import "scanquote/rates"

// ResolveTier applies the tier-resolution policy to a scoping form:
//
//   - An explicit SLAM request is honored only when every area's building
//     type is SLAM-eligible; otherwise the project falls back to X7.
//   - AUTO escalates to SLAM only when the total square footage reaches
//     the configured threshold AND every area is eligible.
//   - Anything else resolves X7.
//
// The BIM-manager flag follows its own request: ON forces it, OFF drops
// it, AUTO activates it only under SLAM.
func ResolveTier(form *ScopingForm, t *rates.Tables) (tier string, bimManager bool) {
	eligible := allAreasSLAMEligible(form.Areas, t)

	switch form.ScanTierRequest {
	case TierRequestSLAM:
		tier = rates.TierX7
		if eligible {
			tier = rates.TierSLAM
		}
	case TierRequestAuto:
		tier = rates.TierX7
		if eligible && form.TotalSquareFeet() >= t.Constants.SLAMAutoThreshold {
			tier = rates.TierSLAM
		}
	default:
		tier = rates.TierX7
	}

	switch form.BIMManager {
	case BIMManagerOn:
		bimManager = true
	case BIMManagerAuto:
		bimManager = tier == rates.TierSLAM
	}

	return tier, bimManager
}

// allAreasSLAMEligible requires at least one area: an empty form never
// qualifies for SLAM.
func allAreasSLAMEligible(areas []AreaInput, t *rates.Tables) bool {
	if len(areas) == 0 {
		return false
	}
	for _, a := range areas {
		if !t.SLAMEligible(a.BuildingType) {
			return false
		}
	}
	return true
}
