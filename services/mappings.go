package services

import "fmt"

// Prefill mapping types. Manual and blocked mappings are documentation:
// they name fields the cascade must never auto-fill, with the reason.
const (
	MappingDirect      = "direct"
	MappingChain       = "chain"
	MappingTransform   = "transform"
	MappingCalculation = "calculation"
	MappingStatic      = "static"
	MappingManual      = "manual"
	MappingBlocked     = "blocked"
)

// PrefillMapping is one declarative prefill rule for a stage transition.
//
// Source is an addressing expression: a bare field ID reads the from-stage
// data, a "form." prefix reads the scoping-form view, a "stage." prefix is
// an explicit from-stage read. "a+b" composites resolve to a tuple for a
// transform; "a|b" chains take the first non-null. Chain-type mappings
// additionally search earlier stages for a same-named field, so values
// ride forward across transitions without re-declaring them.
type PrefillMapping struct {
	TargetField  string
	From, To     Stage
	Type         string
	Source       string
	TransformKey string
	Static       any
	Reason       string
}

// prefillMappings is the full fixed rule table, grouped by transition.
var prefillMappings = []PrefillMapping{
	// ── scheduling → field_capture ──
	{TargetField: "upid", From: StageScheduling, To: StageFieldCapture, Type: MappingDirect, Source: "form.upid"},
	{TargetField: "scan_scope", From: StageScheduling, To: StageFieldCapture, Type: MappingTransform, Source: "form.scope", TransformKey: "scope_checklist"},
	{TargetField: "site_address", From: StageScheduling, To: StageFieldCapture, Type: MappingDirect, Source: "form.site_address"},
	{TargetField: "scan_tier", From: StageScheduling, To: StageFieldCapture, Type: MappingChain, Source: "scan_tier|form.scan_tier_request"},
	{TargetField: "assigned_scanner", From: StageScheduling, To: StageFieldCapture, Type: MappingDirect, Source: "assigned_scanner"},
	{TargetField: "crew_size", From: StageScheduling, To: StageFieldCapture, Type: MappingTransform, Source: "crew_size|form.crew_size", TransformKey: "static_default"},
	{TargetField: "scheduled_date", From: StageScheduling, To: StageFieldCapture, Type: MappingDirect, Source: "scheduled_date"},
	{TargetField: "est_scans", From: StageScheduling, To: StageFieldCapture, Type: MappingTransform, Source: "form.room_density+form.total_sqft", TransformKey: "density_scan_estimate"},
	{TargetField: "est_scan_days", From: StageScheduling, To: StageFieldCapture, Type: MappingCalculation, Source: "form.room_density+form.total_sqft+form.crew_size"},
	{TargetField: "field_notes", From: StageScheduling, To: StageFieldCapture, Type: MappingManual, Reason: "scanner fills in on site"},
	{TargetField: "actual_scans", From: StageScheduling, To: StageFieldCapture, Type: MappingBlocked, Reason: "measured in the field, never prefilled"},

	// ── field_capture → registration ──
	{TargetField: "upid", From: StageFieldCapture, To: StageRegistration, Type: MappingChain, Source: "upid|form.upid"},
	{TargetField: "scan_tier", From: StageFieldCapture, To: StageRegistration, Type: MappingTransform, Source: "slam_used", TransformKey: "tier_flag_to_label"},
	{TargetField: "scanner_used", From: StageFieldCapture, To: StageRegistration, Type: MappingDirect, Source: "assigned_scanner"},
	{TargetField: "scan_count", From: StageFieldCapture, To: StageRegistration, Type: MappingTransform, Source: "actual_scans+est_scans", TransformKey: "prefer_actual"},
	{TargetField: "registration_software", From: StageFieldCapture, To: StageRegistration, Type: MappingStatic, Static: "Cyclone REGISTER 360"},
	{TargetField: "field_notes", From: StageFieldCapture, To: StageRegistration, Type: MappingChain, Source: "field_notes"},
	{TargetField: "capture_date", From: StageFieldCapture, To: StageRegistration, Type: MappingDirect, Source: "capture_date"},
	{TargetField: "point_cloud_format", From: StageFieldCapture, To: StageRegistration, Type: MappingStatic, Static: "e57"},
	{TargetField: "rms_target", From: StageFieldCapture, To: StageRegistration, Type: MappingStatic, Static: 0.006},
	{TargetField: "registered_scans", From: StageFieldCapture, To: StageRegistration, Type: MappingBlocked, Reason: "output of registration processing"},

	// ── registration → modeling ──
	{TargetField: "upid", From: StageRegistration, To: StageModeling, Type: MappingChain, Source: "upid|form.upid"},
	{TargetField: "point_cloud_size_gb", From: StageRegistration, To: StageModeling, Type: MappingDirect, Source: "point_cloud_size_gb"},
	{TargetField: "rms_error", From: StageRegistration, To: StageModeling, Type: MappingDirect, Source: "rms_error"},
	{TargetField: "disciplines", From: StageRegistration, To: StageModeling, Type: MappingTransform, Source: "form.structure_enabled+form.mepf_enabled", TransformKey: "discipline_list"},
	{TargetField: "lod_level", From: StageRegistration, To: StageModeling, Type: MappingDirect, Source: "form.lod_level"},
	{TargetField: "size_tier", From: StageRegistration, To: StageModeling, Type: MappingTransform, Source: "form.total_sqft", TransformKey: "sqft_size_tier"},
	{TargetField: "modeling_software", From: StageRegistration, To: StageModeling, Type: MappingStatic, Static: "Revit"},
	{TargetField: "slam_capture", From: StageRegistration, To: StageModeling, Type: MappingTransform, Source: "scan_tier", TransformKey: "tier_label_to_flag"},
	{TargetField: "template_file", From: StageRegistration, To: StageModeling, Type: MappingManual, Reason: "BIM manager selects template per client standards"},
	{TargetField: "georeferenced", From: StageRegistration, To: StageModeling, Type: MappingTransform, Source: "form.georeferencing", TransformKey: "toggle_flag"},

	// ── modeling → qa ──
	{TargetField: "upid", From: StageModeling, To: StageQA, Type: MappingChain, Source: "upid|form.upid"},
	{TargetField: "disciplines", From: StageModeling, To: StageQA, Type: MappingChain, Source: "disciplines"},
	{TargetField: "lod_level", From: StageModeling, To: StageQA, Type: MappingChain, Source: "lod_level"},
	{TargetField: "model_file", From: StageModeling, To: StageQA, Type: MappingDirect, Source: "model_file"},
	{TargetField: "clash_count", From: StageModeling, To: StageQA, Type: MappingBlocked, Reason: "produced by QA clash detection"},
	{TargetField: "qa_checklist", From: StageModeling, To: StageQA, Type: MappingStatic, Static: []string{"georeference", "level-alignment", "lod-spot-check", "naming-standards"}},
	{TargetField: "reviewer", From: StageModeling, To: StageQA, Type: MappingManual, Reason: "QA lead assigns reviewer"},
	{TargetField: "scan_tier", From: StageModeling, To: StageQA, Type: MappingChain, Source: "scan_tier"},
	{TargetField: "qa_due_date", From: StageModeling, To: StageQA, Type: MappingCalculation, Source: "model_complete_date"},

	// ── qa → delivery ──
	{TargetField: "upid", From: StageQA, To: StageDelivery, Type: MappingChain, Source: "upid|form.upid"},
	{TargetField: "client_name", From: StageQA, To: StageDelivery, Type: MappingChain, Source: "client_name|form.client_name"},
	{TargetField: "deliverable_formats", From: StageQA, To: StageDelivery, Type: MappingTransform, Source: "form.cad_deliverable+form.bim_deliverable", TransformKey: "deliverable_formats"},
	{TargetField: "final_model_file", From: StageQA, To: StageDelivery, Type: MappingDirect, Source: "approved_model_file"},
	{TargetField: "qa_signoff", From: StageQA, To: StageDelivery, Type: MappingDirect, Source: "signoff"},
	{TargetField: "archive_location", From: StageQA, To: StageDelivery, Type: MappingStatic, Static: "pending-archive"},
	{TargetField: "delivery_method", From: StageQA, To: StageDelivery, Type: MappingTransform, Source: "form.delivery_method", TransformKey: "static_default"},
	{TargetField: "client_contact", From: StageQA, To: StageDelivery, Type: MappingManual, Reason: "account manager confirms recipient"},
	{TargetField: "invoice_number", From: StageQA, To: StageDelivery, Type: MappingBlocked, Reason: "issued by accounting after delivery"},
}

type transitionKey struct {
	From, To Stage
}

// mappingsByTransition is built once at init so per-call execution never
// rescans the flat table.
var mappingsByTransition = make(map[transitionKey][]PrefillMapping)

func init() {
	if err := validateMappings(prefillMappings); err != nil {
		panic(err)
	}
	for _, m := range prefillMappings {
		key := transitionKey{From: m.From, To: m.To}
		mappingsByTransition[key] = append(mappingsByTransition[key], m)
	}
}

// MappingsFor returns the rules for one transition, in table order.
func MappingsFor(from, to Stage) []PrefillMapping {
	return mappingsByTransition[transitionKey{From: from, To: to}]
}

// AllMappings returns the whole rule table, in table order.
func AllMappings() []PrefillMapping {
	return prefillMappings
}

// validateMappings enforces the table's structural invariants. It runs at
// package init so a malformed rule can never ship: every transition is an
// adjacent stage pair, every transform key and calculation target is
// registered, and every skip rule documents its reason.
func validateMappings(mappings []PrefillMapping) error {
	for i, m := range mappings {
		fail := func(reason string) error {
			return fmt.Errorf("prefill mapping %d (%s→%s %s): %s", i, m.From, m.To, m.TargetField, reason)
		}

		if m.TargetField == "" {
			return fail("target field is empty")
		}
		next, err := NextStage(m.From)
		if err != nil || next != m.To {
			return fail("transition is not an adjacent stage pair")
		}

		switch m.Type {
		case MappingDirect, MappingChain:
			if m.Source == "" {
				return fail("source is required")
			}
		case MappingTransform:
			if m.Source == "" {
				return fail("source is required")
			}
			if _, ok := transformRegistry[m.TransformKey]; !ok {
				return fail(fmt.Sprintf("transform %q is not registered", m.TransformKey))
			}
		case MappingCalculation:
			if m.Source == "" {
				return fail("source is required")
			}
			if _, ok := calculationRegistry[m.TargetField]; !ok {
				return fail("no calculation registered for target")
			}
		case MappingStatic:
			if m.Static == nil {
				return fail("static value is required")
			}
		case MappingManual, MappingBlocked:
			if m.Reason == "" {
				return fail("skip reason is required")
			}
		default:
			return fail(fmt.Sprintf("unknown mapping type %q", m.Type))
		}
	}
	return nil
}
