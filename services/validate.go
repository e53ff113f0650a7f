package services

import (
	"fmt"
	"slices"
)

// ValidationError represents a single field-level error on a scoping form.
// Area is empty for form-level errors.
type ValidationError struct {
	Area    string `json:"area,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after structural validation of a form.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidateForm checks a scoping form before it reaches the quote engine.
// The engine itself only guards against division hazards; everything a
// form author can get wrong is caught here instead.
func ValidateForm(form *ScopingForm) ValidationResult {
	var errs []ValidationError

	formErr := func(field, message string) {
		errs = append(errs, ValidationError{Field: field, Message: message})
	}

	if form.UPID == "" {
		formErr("upid", "is required")
	} else if !ValidateUPID(form.UPID) {
		formErr("upid", fmt.Sprintf("%q is not a valid project ID", form.UPID))
	}
	if form.ClientName == "" {
		formErr("client_name", "is required")
	}
	if form.ScanTierRequest != "" && !slices.Contains(TierRequestOptions, form.ScanTierRequest) {
		formErr("scan_tier_request", fmt.Sprintf("unknown tier request %q", form.ScanTierRequest))
	}
	if form.BIMManager != "" && !slices.Contains(BIMManagerOptions, form.BIMManager) {
		formErr("bim_manager", fmt.Sprintf("unknown BIM manager mode %q", form.BIMManager))
	}
	if form.Travel.DistanceMiles < 0 {
		formErr("travel.distance_miles", "must not be negative")
	}
	if form.Travel.TripDays < 0 {
		formErr("travel.trip_days", "must not be negative")
	}
	if form.Travel.CrewSize < 0 {
		formErr("travel.crew_size", "must not be negative")
	}

	if len(form.Areas) == 0 {
		formErr("areas", "at least one area is required")
	}

	seen := make(map[string]bool, len(form.Areas))
	for _, area := range form.Areas {
		errs = append(errs, validateArea(area, seen)...)
	}

	for i, item := range form.CustomItems {
		field := fmt.Sprintf("custom_items[%d]", i)
		if item.Amount < 0 {
			formErr(field+".amount", "must not be negative")
		}
		if item.Cost < 0 {
			formErr(field+".cost", "must not be negative")
		}
		if item.Description == "" && (item.Amount != 0 || item.Cost != 0) {
			formErr(field+".description", "is required for a priced item")
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func validateArea(area AreaInput, seen map[string]bool) []ValidationError {
	var errs []ValidationError

	areaErr := func(field, message string) {
		errs = append(errs, ValidationError{Area: area.Name, Field: field, Message: message})
	}

	if area.Name == "" {
		areaErr("name", "is required")
	} else if seen[area.Name] {
		areaErr("name", fmt.Sprintf("duplicate area name %q", area.Name))
	}
	seen[area.Name] = true

	if area.BuildingType == "" {
		areaErr("building_type", "is required")
	} else if !slices.Contains(BuildingTypeOptions, area.BuildingType) {
		areaErr("building_type", fmt.Sprintf("unknown building type %q", area.BuildingType))
	}
	if area.SquareFootage < 0 {
		areaErr("square_footage", "must not be negative")
	}
	if area.Scope != "" && !slices.Contains(ScopeOptions, area.Scope) {
		areaErr("scope", fmt.Sprintf("unknown scope %q", area.Scope))
	}
	for _, lod := range []struct{ field, value string }{
		{"lod", area.LOD},
		{"interior_lod", area.InteriorLOD},
		{"exterior_lod", area.ExteriorLOD},
	} {
		if lod.value != "" && !slices.Contains(LODOptions, lod.value) {
			areaErr(lod.field, fmt.Sprintf("unknown LOD %q", lod.value))
		}
	}
	if area.RoomDensity < 0 || area.RoomDensity > 5 {
		areaErr("room_density", "must be between 1 and 5")
	}
	if area.ScannerSeniority != "" && !slices.Contains(SeniorityOptions, area.ScannerSeniority) {
		areaErr("scanner_seniority", fmt.Sprintf("unknown seniority %q", area.ScannerSeniority))
	}
	for _, sqft := range []struct {
		field string
		value float64
	}{
		{"structure_sqft", area.StructureSqft},
		{"mepf_sqft", area.MEPFSqft},
		{"grade_sqft", area.GradeSqft},
		{"act_sqft", area.ACTSqft},
		{"below_floor_sqft", area.BelowFloorSqft},
	} {
		if sqft.value < 0 {
			areaErr(sqft.field, "must not be negative")
		}
	}

	return errs
}
