package services

import "github.com/spf13/cast"

// qaReviewBufferDays is the working buffer between model completion and
// the QA due date.
const qaReviewBufferDays = 3

const dateLayout = "2006-01-02"

// A transformFunc reshapes a resolved source value for its target field.
// Composite sources arrive as a []any tuple in source order. Transforms
// are total: unusable input maps to nil, never to an error.
type transformFunc func(targetField string, value any) any

// transformRegistry holds every transform a prefill mapping may name.
// Registration is checked against the mapping table at package init.
var transformRegistry = map[string]transformFunc{
	"scope_checklist":       transformScopeChecklist,
	"density_scan_estimate": transformDensityScanEstimate,
	"toggle_flag":           transformToggleFlag,
	"static_default":        transformStaticDefault,
	"tier_flag_to_label":    transformTierFlagToLabel,
	"tier_label_to_flag":    transformTierLabelToFlag,
	"discipline_list":       transformDisciplineList,
	"prefer_actual":         transformPreferActual,
	"sqft_size_tier":        transformSqftSizeTier,
	"deliverable_formats":   transformDeliverableFormats,
}

// calculationRegistry holds the calculation-type resolvers, keyed by
// target field. Calculations run on form and stage values only; they
// never consult rate tables.
var calculationRegistry = map[string]transformFunc{
	"est_scan_days": calcEstScanDays,
	"qa_due_date":   calcQADueDate,
}

// staticDefaults backs the static_default transform: per-target values
// substituted when the source chain resolves to nothing.
var staticDefaults = map[string]any{
	"crew_size":       2,
	"delivery_method": "portal",
}

// tupleAt reads one element of a composite source value. A scalar value
// counts as a one-element tuple.
func tupleAt(value any, i int) any {
	if t, ok := value.([]any); ok {
		if i < len(t) {
			return t[i]
		}
		return nil
	}
	if i == 0 {
		return value
	}
	return nil
}

// transformScopeChecklist expands a scope label into the capture
// checklist shown to the field crew.
func transformScopeChecklist(_ string, value any) any {
	switch cast.ToString(value) {
	case ScopeFull, ScopeMixed:
		return []string{"interior", "exterior"}
	case ScopeIntOnly:
		return []string{"interior"}
	case ScopeExtOnly:
		return []string{"exterior"}
	}
	return nil
}

// transformDensityScanEstimate predicts scan setups from (roomDensity,
// totalSqft).
func transformDensityScanEstimate(_ string, value any) any {
	density := cast.ToInt(tupleAt(value, 0))
	sqft := cast.ToFloat64(tupleAt(value, 1))
	if density <= 0 || sqft <= 0 {
		return nil
	}
	return EstimateScans(density, sqft)
}

// transformToggleFlag coerces whatever a toggle field holds into a plain
// boolean. Legacy forms stored toggles as objects; a non-empty object
// counts as on.
func transformToggleFlag(_ string, value any) any {
	if value == nil {
		return false
	}
	if m, ok := value.(map[string]any); ok {
		return len(m) > 0
	}
	if b, err := cast.ToBoolE(value); err == nil {
		return b
	}
	return true
}

// transformStaticDefault passes a resolved value through, substituting the
// per-target default when nothing resolved.
func transformStaticDefault(targetField string, value any) any {
	if value != nil {
		return value
	}
	return staticDefaults[targetField]
}

// transformTierFlagToLabel maps the SLAM-used boolean back to a tier
// label.
func transformTierFlagToLabel(_ string, value any) any {
	if cast.ToBool(value) {
		return "SLAM"
	}
	return "X7"
}

// transformTierLabelToFlag is the inverse: only the SLAM label sets the
// flag.
func transformTierLabelToFlag(_ string, value any) any {
	return cast.ToString(value) == "SLAM"
}

// transformDisciplineList builds the modeling discipline list from the
// (structure, mepf) toggle pair. Architecture is always modeled.
func transformDisciplineList(_ string, value any) any {
	disciplines := []string{"arch"}
	if cast.ToBool(tupleAt(value, 0)) {
		disciplines = append(disciplines, "structure")
	}
	if cast.ToBool(tupleAt(value, 1)) {
		disciplines = append(disciplines, "mepf")
	}
	return disciplines
}

// transformPreferActual picks the measured value over the estimate, in
// (actual, estimated) order.
func transformPreferActual(_ string, value any) any {
	if v := tupleAt(value, 0); v != nil {
		return v
	}
	return tupleAt(value, 1)
}

// transformSqftSizeTier buckets total square footage into a size label.
func transformSqftSizeTier(_ string, value any) any {
	sqft := cast.ToFloat64(value)
	switch {
	case sqft <= 0:
		return nil
	case sqft < 15000:
		return "small"
	case sqft < 50000:
		return "medium"
	case sqft < 100000:
		return "large"
	default:
		return "mega"
	}
}

// transformDeliverableFormats derives the delivery format list from the
// (cadDeliverable, bimDeliverable) pair. The registered point cloud ships
// on every project.
func transformDeliverableFormats(_ string, value any) any {
	formats := []string{"rcp"}
	if cad := cast.ToString(tupleAt(value, 0)); cad != "" && cad != "No" {
		formats = append(formats, "dwg")
	}
	if bim := cast.ToString(tupleAt(value, 1)); bim != "" && bim != "No" {
		formats = append(formats, "rvt")
	}
	return formats
}

// calcEstScanDays derives whole field days from (roomDensity, totalSqft,
// crewSize).
func calcEstScanDays(_ string, value any) any {
	density := cast.ToInt(tupleAt(value, 0))
	sqft := cast.ToFloat64(tupleAt(value, 1))
	crew := cast.ToInt(tupleAt(value, 2))
	scans := EstimateScans(density, sqft)
	if scans == 0 {
		return nil
	}
	return EstimateScanDays(scans, DefaultScansPerDay, crew)
}

// calcQADueDate schedules QA review a fixed buffer after model
// completion. Unparsable dates resolve to nothing rather than guessing.
func calcQADueDate(_ string, value any) any {
	if value == nil {
		return nil
	}
	completed, err := cast.ToTimeE(value)
	if err != nil {
		return nil
	}
	return completed.AddDate(0, 0, qaReviewBufferDays).Format(dateLayout)
}
