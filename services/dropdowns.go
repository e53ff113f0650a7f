package services

// ScopeOptions returns the list of area scope options.
var ScopeOptions = []string{
	ScopeFull,
	ScopeIntOnly,
	ScopeExtOnly,
	ScopeMixed,
}

// LODOptions returns the list of level-of-development options.
var LODOptions = []string{"200", "300", "350"}

// TierRequestOptions returns the list of scan tier request options.
var TierRequestOptions = []string{
	TierRequestAuto,
	TierRequestX7,
	TierRequestSLAM,
}

// BIMManagerOptions returns the list of BIM-manager request options.
var BIMManagerOptions = []string{
	BIMManagerAuto,
	BIMManagerOn,
	BIMManagerOff,
}

// BuildingTypeOptions returns the list of building type options.
var BuildingTypeOptions = []string{
	"commercial",
	"industrial",
	"warehouse",
	"residential",
	"healthcare",
	"education",
	"hospitality",
	"civic",
}

// EraOptions returns the list of construction era options.
var EraOptions = []string{
	"pre1940",
	"1940-1990",
	"modern",
}

// OccupiedOptions returns the list of occupancy options.
var OccupiedOptions = []string{
	"vacant",
	"partial",
	"full",
}

// SeniorityOptions returns the list of scanner seniority options.
var SeniorityOptions = []string{
	"junior",
	"standard",
	"senior",
	"lead",
}

// CADDeliverableOptions returns the list of CAD deliverable options.
var CADDeliverableOptions = []string{
	"No",
	"2D Plans",
	"Full Set",
}

// CADPackageOptions returns the list of CAD package options.
var CADPackageOptions = []string{
	"full",
	"arch-only",
	"shell",
}

// LandscapeOptions returns the list of landscape modeling options.
var LandscapeOptions = []string{
	"No",
	"Basic",
	"Detailed",
}

// ScanRegOnlyOptions returns the list of scan-and-registration-only options.
var ScanRegOnlyOptions = []string{
	"none",
	"raw",
	"registered",
}

// DeliveryMethodOptions returns the list of delivery method options.
var DeliveryMethodOptions = []string{
	"portal",
	"drive",
	"ftp",
}
