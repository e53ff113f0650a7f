package services

import (
	"fmt"
	"strconv"
	"strings"
)

// MappingResult records how one prefill rule resolved: the declared
// source expression, the origin that actually supplied the value, and the
// value itself. Skipped rules carry their documented reason instead.
type MappingResult struct {
	TargetField  string `json:"target_field"`
	Type         string `json:"type"`
	Source       string `json:"source,omitempty"`
	ResolvedFrom string `json:"resolved_from,omitempty"`
	Value        any    `json:"value,omitempty"`
	Skipped      bool   `json:"skipped"`
	Reason       string `json:"reason,omitempty"`
}

// CascadeOutput is one transition's prefill: the data to seed the next
// stage's form with, plus a per-rule audit trail. Data holds only fields
// that resolved to a value; Results covers every rule.
type CascadeOutput struct {
	From    Stage           `json:"from"`
	To      Stage           `json:"to"`
	Data    map[string]any  `json:"data"`
	Results []MappingResult `json:"results"`
}

// ExecutePrefillCascade resolves the prefill rules for one stage
// transition against the scoping form and the recorded stage data. The
// call is pure: rules resolve independently of each other, and neither
// the form nor the stage data is modified.
func ExecutePrefillCascade(from, to Stage, form *ScopingForm, stages StageData) (*CascadeOutput, error) {
	next, err := NextStage(from)
	if err != nil {
		return nil, err
	}
	if next != to {
		return nil, fmt.Errorf("no prefill transition from %q to %q", from, to)
	}

	r := resolver{
		form:   formView(form),
		stages: stages,
		from:   from,
	}

	out := &CascadeOutput{
		From: from,
		To:   to,
		Data: make(map[string]any),
	}

	for _, m := range MappingsFor(from, to) {
		result := r.resolve(m)
		out.Results = append(out.Results, result)
		if !result.Skipped && result.Value != nil {
			out.Data[m.TargetField] = result.Value
		}
	}
	return out, nil
}

// resolver carries one cascade invocation's inputs.
type resolver struct {
	form   map[string]any
	stages StageData
	from   Stage
}

func (r resolver) resolve(m PrefillMapping) MappingResult {
	result := MappingResult{
		TargetField: m.TargetField,
		Type:        m.Type,
		Source:      m.Source,
	}

	switch m.Type {
	case MappingManual, MappingBlocked:
		result.Skipped = true
		result.Reason = m.Reason

	case MappingStatic:
		result.Value = m.Static
		result.ResolvedFrom = "static"

	case MappingDirect:
		result.Value, result.ResolvedFrom = r.source(m.Source)

	case MappingChain:
		result.Value, result.ResolvedFrom = r.source(m.Source)
		if result.Value == nil {
			result.Value, result.ResolvedFrom = r.searchStages(m.TargetField)
		}

	case MappingTransform:
		value, origin := r.source(m.Source)
		result.Value = transformRegistry[m.TransformKey](m.TargetField, value)
		result.ResolvedFrom = origin

	case MappingCalculation:
		value, origin := r.source(m.Source)
		result.Value = calculationRegistry[m.TargetField](m.TargetField, value)
		result.ResolvedFrom = origin
	}
	return result
}

// source resolves an addressing expression. "a|b" takes the first part
// that yields a value; "a+b" resolves every part into a tuple.
func (r resolver) source(expr string) (any, string) {
	if parts := strings.Split(expr, "|"); len(parts) > 1 {
		for _, part := range parts {
			if v, origin := r.source(part); v != nil {
				return v, origin
			}
		}
		return nil, ""
	}

	if parts := strings.Split(expr, "+"); len(parts) > 1 {
		tuple := make([]any, len(parts))
		origins := make([]string, len(parts))
		for i, part := range parts {
			tuple[i], origins[i] = r.source(part)
		}
		return tuple, strings.Join(origins, "+")
	}

	return r.field(expr)
}

// field reads a single field ID: "form.x" from the form view, anything
// else (with or without the explicit "stage." prefix) from the from-stage
// data.
func (r resolver) field(id string) (any, string) {
	if name, ok := strings.CutPrefix(id, "form."); ok {
		if v, ok := r.form[name]; ok && v != nil {
			return v, id
		}
		return nil, ""
	}
	name := strings.TrimPrefix(id, "stage.")
	if v, ok := r.stages[r.from][name]; ok && v != nil {
		return v, string(r.from) + "." + name
	}
	return nil, ""
}

// searchStages walks the recorded stages from the current one backwards,
// returning the newest value recorded under the field name.
func (r resolver) searchStages(name string) (any, string) {
	for _, stage := range r.stages.priorStages(r.from) {
		if v, ok := r.stages[stage][name]; ok && v != nil {
			return v, string(stage) + "." + name
		}
	}
	return nil, ""
}

// formView projects a scoping form into the flat field IDs the mapping
// table addresses with the "form." prefix. Empty strings and zero
// numbers are unset and stay out of the view; booleans are always
// present, false included.
func formView(form *ScopingForm) map[string]any {
	view := make(map[string]any)
	if form == nil {
		return view
	}

	putString := func(key, v string) {
		if v != "" {
			view[key] = v
		}
	}
	putNumber := func(key string, v float64) {
		if v != 0 {
			view[key] = v
		}
	}

	putString("upid", form.UPID)
	putString("client_name", form.ClientName)
	putString("project_name", form.ProjectName)
	putString("site_address", form.SiteAddress)
	putString("scan_tier_request", form.ScanTierRequest)
	putString("landscape_modeling", form.Landscape)
	putString("scan_reg_only", form.ScanRegOnly)
	putString("cad_deliverable", form.CADDeliverable)
	putString("cad_package", form.CADPackage)
	putString("bim_deliverable", form.BIMDeliverable)
	putString("delivery_method", form.DeliveryMethod)

	putNumber("total_sqft", form.TotalSquareFeet())
	putNumber("area_count", float64(len(form.Areas)))
	putNumber("travel_distance", form.Travel.DistanceMiles)
	putNumber("trip_days", float64(form.Travel.TripDays))
	if form.Travel.CrewSize > 0 {
		view["crew_size"] = form.Travel.CrewSize
	}

	view["expedited"] = form.Expedited
	view["georeferencing"] = form.Georeferencing

	// Area-level fields roll up: the densest room plan and the highest
	// LOD govern, the largest area sets the scope, toggles OR together.
	density := 0
	maxLOD := 0
	scope := ""
	var scopeSqft float64 = -1
	structure, mepf := false, false
	for _, a := range form.Areas {
		if a.RoomDensity > density {
			density = a.RoomDensity
		}
		if lod, err := strconv.Atoi(effectiveLOD(a)); err == nil && lod > maxLOD {
			maxLOD = lod
		}
		if a.SquareFootage > scopeSqft {
			scopeSqft = a.SquareFootage
			scope = a.Scope
		}
		structure = structure || a.Structure
		mepf = mepf || a.MEPF
	}
	if density > 0 {
		view["room_density"] = density
	}
	if maxLOD > 0 {
		view["lod_level"] = strconv.Itoa(maxLOD)
	}
	putString("scope", scope)
	view["structure_enabled"] = structure
	view["mepf_enabled"] = mepf

	return view
}
