package services

import "scanquote/rates"

// Tier requests on a scoping form. The resolved tier is always one of
// rates.TierX7 or rates.TierSLAM; AUTO is only ever a request.
const (
	TierRequestAuto = "AUTO"
	TierRequestX7   = rates.TierX7
	TierRequestSLAM = rates.TierSLAM
)

// BIM-manager requests. AUTO activates the BIM-manager cost component only
// when the project resolves to SLAM.
const (
	BIMManagerAuto = "AUTO"
	BIMManagerOn   = "ON"
	BIMManagerOff  = "OFF"
)

// Area scopes.
const (
	ScopeFull    = "Full"
	ScopeIntOnly = "Int Only"
	ScopeExtOnly = "Ext Only"
	ScopeMixed   = "Mixed"
)

// ScopingForm is the structured description of a project that a quote is
// computed from. It is assembled by the caller; the engine never mutates it.
type ScopingForm struct {
	UPID        string `json:"upid" yaml:"upid"`
	ClientName  string `json:"client_name" yaml:"client_name"`
	ProjectName string `json:"project_name" yaml:"project_name"`
	SiteAddress string `json:"site_address" yaml:"site_address"`

	ScanTierRequest string `json:"scan_tier_request" yaml:"scan_tier_request"`
	BIMManager      string `json:"bim_manager" yaml:"bim_manager"`

	Areas []AreaInput `json:"areas" yaml:"areas"`

	Travel TravelPlan `json:"travel" yaml:"travel"`

	Expedited      bool   `json:"expedited" yaml:"expedited"`
	Georeferencing bool   `json:"georeferencing" yaml:"georeferencing"`
	Landscape      string `json:"landscape_modeling" yaml:"landscape_modeling"` // No | Basic | Detailed
	ScanRegOnly    string `json:"scan_reg_only" yaml:"scan_reg_only"`           // none | raw | registered

	CADDeliverable string `json:"cad_deliverable" yaml:"cad_deliverable"` // No | 2D Plans | Full Set
	CADPackage     string `json:"cad_package" yaml:"cad_package"`         // full | arch-only | shell
	BIMDeliverable string `json:"bim_deliverable" yaml:"bim_deliverable"` // e.g. "Revit 2024"
	DeliveryMethod string `json:"delivery_method" yaml:"delivery_method"` // portal | drive | ftp

	CustomItems []CustomItem `json:"custom_items" yaml:"custom_items"`
}

// TravelPlan describes the site trip a quote must cover. CrewSize 0 falls
// back to the configured default crew.
type TravelPlan struct {
	DistanceMiles float64 `json:"distance_miles" yaml:"distance_miles"`
	TripDays      int     `json:"trip_days" yaml:"trip_days"`
	CrewSize      int     `json:"crew_size" yaml:"crew_size"`
}

// CustomItem is a caller-priced ad-hoc line. Amount 0 means unset: the
// generated shell keeps a null price (zero-means-unset policy).
type CustomItem struct {
	Description string  `json:"description" yaml:"description"`
	Amount      float64 `json:"amount" yaml:"amount"`
	Cost        float64 `json:"cost" yaml:"cost"`
}

// AreaInput is one scoped building area. Per-discipline square footages of
// 0 mean "use the area total".
type AreaInput struct {
	Name          string  `json:"name" yaml:"name"`
	BuildingType  string  `json:"building_type" yaml:"building_type"`
	SquareFootage float64 `json:"square_footage" yaml:"square_footage"`

	Scope       string `json:"scope" yaml:"scope"` // Full | Int Only | Ext Only | Mixed
	LOD         string `json:"lod" yaml:"lod"`     // 200 | 300 | 350
	InteriorLOD string `json:"interior_lod" yaml:"interior_lod"`
	ExteriorLOD string `json:"exterior_lod" yaml:"exterior_lod"`

	// Discipline toggles.
	Structure      bool `json:"structure" yaml:"structure"`
	MEPF           bool `json:"mepf" yaml:"mepf"`
	Grade          bool `json:"grade" yaml:"grade"`
	ACT            bool `json:"act" yaml:"act"`
	BelowFloor     bool `json:"below_floor" yaml:"below_floor"`
	Matterport     bool `json:"matterport" yaml:"matterport"`
	Georeferencing bool `json:"georeferencing" yaml:"georeferencing"`

	// Site-condition modifiers.
	Era         string `json:"era" yaml:"era"`           // pre1940 | 1940-1990 | modern
	Occupied    string `json:"occupied" yaml:"occupied"` // vacant | partial | full
	NoPowerHeat bool   `json:"no_power_heat" yaml:"no_power_heat"`
	Hazardous   bool   `json:"hazardous" yaml:"hazardous"`
	RoomDensity int    `json:"room_density" yaml:"room_density"` // 1..5

	ScannerSeniority string `json:"scanner_seniority" yaml:"scanner_seniority"` // junior | standard | senior | lead

	// Per-discipline square footage overrides (0 = area total).
	StructureSqft  float64 `json:"structure_sqft" yaml:"structure_sqft"`
	MEPFSqft       float64 `json:"mepf_sqft" yaml:"mepf_sqft"`
	GradeSqft      float64 `json:"grade_sqft" yaml:"grade_sqft"`
	ACTSqft        float64 `json:"act_sqft" yaml:"act_sqft"`
	BelowFloorSqft float64 `json:"below_floor_sqft" yaml:"below_floor_sqft"`
}

// TotalSquareFeet sums the square footage across all areas.
func (f *ScopingForm) TotalSquareFeet() float64 {
	var total float64
	for _, a := range f.Areas {
		total += a.SquareFootage
	}
	return total
}

// HasAddOns reports whether any add-on discipline is toggled on any area.
// The project minimum switches to the add-on minimum when this holds.
func (f *ScopingForm) HasAddOns() bool {
	for _, a := range f.Areas {
		if a.Structure || a.MEPF || a.Grade || a.ACT || a.BelowFloor {
			return true
		}
	}
	return false
}

// WantsCAD reports whether the form orders a CAD conversion deliverable.
// Both shells and pricing key off this one condition.
func (f *ScopingForm) WantsCAD() bool {
	return f.CADDeliverable != "" && f.CADDeliverable != "No"
}

// CrewSize returns the planned crew, falling back to the configured
// default.
func (f *ScopingForm) CrewSize(t *rates.Tables) int {
	if f.Travel.CrewSize > 0 {
		return f.Travel.CrewSize
	}
	return t.Constants.DefaultCrewSize
}

// disciplineSqft returns the effective square footage for a discipline
// line: the override when given, the area total otherwise.
func disciplineSqft(override, areaTotal float64) float64 {
	if override > 0 {
		return override
	}
	return areaTotal
}
