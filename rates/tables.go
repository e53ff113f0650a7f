// Package rates defines the rate-table snapshot that drives quote pricing.
//
// A snapshot is loaded once (compiled-in defaults, optionally overlaid by a
// YAML file and environment variables) and is read-only afterwards. All
// tables are indexed by composite key at build time so lookups during
// pricing are constant-time.
package rates

import (
	"fmt"
	"sort"
)

// Tier identifiers for the two scanning-technology cost models.
const (
	TierX7   = "X7"
	TierSLAM = "SLAM"
)

// ── Raw configuration ────────────────────────────────────────────────────

// Config is the YAML-shaped form of a rate-table snapshot: flat row lists
// that Build indexes into Tables. The koanf tags drive the layered load,
// the matching yaml tags drive default-layer rendering and `tables --dump`.
type Config struct {
	Constants        Constants         `koanf:"constants" yaml:"constants"`
	Bands            []BandDef         `koanf:"bands" yaml:"bands"`
	MegaBands        []BandDef         `koanf:"mega_bands" yaml:"mega_bands"`
	ArchRates        []ArchRate        `koanf:"arch_rates" yaml:"arch_rates"`
	AddOnRates       []AddOnRate       `koanf:"addon_rates" yaml:"addon_rates"`
	CADRates         []CADRate         `koanf:"cad_rates" yaml:"cad_rates"`
	BandMarkups      []BandMarkup      `koanf:"band_markups" yaml:"band_markups"`
	CADMarkups       []CADMarkup       `koanf:"cad_markups" yaml:"cad_markups"`
	ScopeDiscounts   []ScopeDiscount   `koanf:"scope_discounts" yaml:"scope_discounts"`
	ScanBaselines    []ScanBaseline    `koanf:"scan_baselines" yaml:"scan_baselines"`
	SLAMBaselines    []SLAMBaseline    `koanf:"slam_baselines" yaml:"slam_baselines"`
	BuildingTypes    []BuildingTypeDef `koanf:"building_types" yaml:"building_types"`
	SeniorityFactors []SeniorityFactor `koanf:"seniority_factors" yaml:"seniority_factors"`
	Modifiers        []Modifier        `koanf:"modifiers" yaml:"modifiers"`
	Travel           Travel            `koanf:"travel" yaml:"travel"`
	FlatRates        FlatRates         `koanf:"flat_rates" yaml:"flat_rates"`
}

// Constants holds the single-row configuration the multiplier and the
// project-level charges are derived from. Rates are fractions of client
// price (0.05 = 5%).
type Constants struct {
	// Partner-cost components (f).
	QC           float64 `koanf:"qc" yaml:"qc"`
	PM           float64 `koanf:"pm" yaml:"pm"`
	COO          float64 `koanf:"coo" yaml:"coo"`
	Registration float64 `koanf:"registration" yaml:"registration"`
	BIMManager   float64 `koanf:"bim_manager" yaml:"bim_manager"`

	// Above-the-line components (a).
	Tax            float64 `koanf:"tax" yaml:"tax"`
	OwnerComp      float64 `koanf:"owner_comp" yaml:"owner_comp"`
	SalesMarketing float64 `koanf:"sales_marketing" yaml:"sales_marketing"`
	Overhead       float64 `koanf:"overhead" yaml:"overhead"`
	BadDebt        float64 `koanf:"bad_debt" yaml:"bad_debt"`

	// Savings floor (s) embedded in the multiplier.
	SavingsFloor float64 `koanf:"savings_floor" yaml:"savings_floor"`

	// MarginFloor is the implied-margin guarantee re-applied over the
	// reverse-derived cost basis during floor enforcement.
	MarginFloor float64 `koanf:"margin_floor" yaml:"margin_floor"`

	// SLAMAutoThreshold is the total square footage at or above which an
	// AUTO tier request escalates to SLAM (eligibility permitting).
	SLAMAutoThreshold float64 `koanf:"slam_auto_threshold" yaml:"slam_auto_threshold"`

	// MixedInteriorWeight blends interior vs exterior rates for Mixed
	// scope areas (exterior weight is the complement).
	MixedInteriorWeight float64 `koanf:"mixed_interior_weight" yaml:"mixed_interior_weight"`

	ExpeditedRate float64 `koanf:"expedited_rate" yaml:"expedited_rate"`

	// Project minimums. AddOnMinimum applies when any add-on discipline
	// is active on any area.
	BaseMinimum  float64 `koanf:"base_minimum" yaml:"base_minimum"`
	AddOnMinimum float64 `koanf:"addon_minimum" yaml:"addon_minimum"`

	// Field-scheduling parameters.
	ScansPerDay     float64 `koanf:"scans_per_day" yaml:"scans_per_day"`
	DefaultCrewSize int     `koanf:"default_crew_size" yaml:"default_crew_size"`
}

// BandDef is one square-footage bracket. MaxSqft 0 means unbounded.
type BandDef struct {
	Key     string  `koanf:"key" yaml:"key"`
	MinSqft float64 `koanf:"min_sqft" yaml:"min_sqft"`
	MaxSqft float64 `koanf:"max_sqft" yaml:"max_sqft"`
}

// ArchRate is the base cost-basis rate ($/sqft) for architecture modeling.
type ArchRate struct {
	BuildingType string  `koanf:"building_type" yaml:"building_type"`
	Band         string  `koanf:"band" yaml:"band"`
	LOD          string  `koanf:"lod" yaml:"lod"`
	UppT         float64 `koanf:"uppt" yaml:"uppt"`
}

// AddOnRate is the base cost-basis rate ($/sqft) for an add-on discipline
// (structure, mepf, grade).
type AddOnRate struct {
	Discipline   string  `koanf:"discipline" yaml:"discipline"`
	BuildingType string  `koanf:"building_type" yaml:"building_type"`
	Band         string  `koanf:"band" yaml:"band"`
	LOD          string  `koanf:"lod" yaml:"lod"`
	UppT         float64 `koanf:"uppt" yaml:"uppt"`
}

// CADRate is the base cost-basis rate ($/sqft) for CAD conversion.
type CADRate struct {
	Band    string  `koanf:"band" yaml:"band"`
	Package string  `koanf:"package" yaml:"package"`
	UppT    float64 `koanf:"uppt" yaml:"uppt"`
}

// BandMarkup converts an add-on cost basis into client price.
type BandMarkup struct {
	Discipline string  `koanf:"discipline" yaml:"discipline"`
	Band       string  `koanf:"band" yaml:"band"`
	Markup     float64 `koanf:"markup" yaml:"markup"`
}

// CADMarkup converts a CAD cost basis into client price.
type CADMarkup struct {
	Band    string  `koanf:"band" yaml:"band"`
	Package string  `koanf:"package" yaml:"package"`
	Markup  float64 `koanf:"markup" yaml:"markup"`
}

// ScopeDiscount scales add-on prices for partial-scope areas. Grade is
// exempt at the engine level.
type ScopeDiscount struct {
	Scope    string  `koanf:"scope" yaml:"scope"`
	Discount float64 `koanf:"discount" yaml:"discount"`
}

// ScanBaseline is the X7 scanning cost ($/sqft) for a band.
type ScanBaseline struct {
	Band       string  `koanf:"band" yaml:"band"`
	CostPerSqf float64 `koanf:"cost_per_sqft" yaml:"cost_per_sqft"`
}

// SLAMBaseline is the SLAM scanning cost ($/sqft) for a mega-band.
type SLAMBaseline struct {
	MegaBand   string  `koanf:"mega_band" yaml:"mega_band"`
	CostPerSqf float64 `koanf:"cost_per_sqft" yaml:"cost_per_sqft"`
}

// BuildingTypeDef carries the per-type throughput ratios and SLAM
// eligibility.
type BuildingTypeDef struct {
	Key          string  `koanf:"key" yaml:"key"`
	X7Ratio      float64 `koanf:"x7_ratio" yaml:"x7_ratio"`
	SLAMRatio    float64 `koanf:"slam_ratio" yaml:"slam_ratio"`
	SLAMEligible bool    `koanf:"slam_eligible" yaml:"slam_eligible"`
}

// SeniorityFactor scales scan cost by the assigned scanner's level.
type SeniorityFactor struct {
	Level  string  `koanf:"level" yaml:"level"`
	Factor float64 `koanf:"factor" yaml:"factor"`
}

// Modifier is one site-condition adjustment factor. Code "default" is the
// per-(tier, category) fallback row.
type Modifier struct {
	Tier     string  `koanf:"tier" yaml:"tier"`
	Category string  `koanf:"category" yaml:"category"`
	Code     string  `koanf:"code" yaml:"code"`
	Factor   float64 `koanf:"factor" yaml:"factor"`
}

// TripFlat is one short-distance flat travel bracket; brackets are ordered
// by MaxDays and the last bracket absorbs longer trips.
type TripFlat struct {
	MaxDays int     `koanf:"max_days" yaml:"max_days"`
	Amount  float64 `koanf:"amount" yaml:"amount"`
}

// Travel holds the distance thresholds and rates for the three travel
// modes.
type Travel struct {
	ShortMaxMiles     float64    `koanf:"short_max_miles" yaml:"short_max_miles"`
	MidMaxMiles       float64    `koanf:"mid_max_miles" yaml:"mid_max_miles"`
	ShortFlat         []TripFlat `koanf:"short_flat" yaml:"short_flat"`
	MileageRate       float64    `koanf:"mileage_rate" yaml:"mileage_rate"`
	OvernightTripDays int        `koanf:"overnight_trip_days" yaml:"overnight_trip_days"`
	HotelNightly      float64    `koanf:"hotel_nightly" yaml:"hotel_nightly"`
	PerDiemDaily      float64    `koanf:"per_diem_daily" yaml:"per_diem_daily"`
	AirfarePerTech    float64    `koanf:"airfare_per_tech" yaml:"airfare_per_tech"`
	CarRentalDaily    float64    `koanf:"car_rental_daily" yaml:"car_rental_daily"`
	ParkingDaily      float64    `koanf:"parking_daily" yaml:"parking_daily"`
}

// FlatRates holds the non-banded cost/price pairs.
type FlatRates struct {
	MatterportCostPerSqft  float64 `koanf:"matterport_cost_per_sqft" yaml:"matterport_cost_per_sqft"`
	MatterportPricePerSqft float64 `koanf:"matterport_price_per_sqft" yaml:"matterport_price_per_sqft"`
	GeoreferencingCost     float64 `koanf:"georeferencing_cost" yaml:"georeferencing_cost"`
	GeoreferencingFee      float64 `koanf:"georeferencing_fee" yaml:"georeferencing_fee"`
}

// ── Indexed snapshot ─────────────────────────────────────────────────────

type archKey struct{ buildingType, band, lod string }
type addonKey struct{ discipline, buildingType, band, lod string }
type cadKey struct{ band, pkg string }
type markupKey struct{ discipline, band string }
type modKey struct{ tier, category, code string }

// Tables is an immutable, fully indexed rate-table snapshot. Lookup
// methods report a miss with ok=false; callers apply the documented
// default (0 for additive rates, 1.0 for factors) and surface a warning.
type Tables struct {
	Constants Constants
	Travel    Travel
	FlatRates FlatRates

	bands     []BandDef
	megaBands []BandDef

	arch          map[archKey]float64
	addon         map[addonKey]float64
	cad           map[cadKey]float64
	bandMarkup    map[markupKey]float64
	cadMarkup     map[cadKey]float64
	scopeDiscount map[string]float64
	scanBaseline  map[string]float64
	slamBaseline  map[string]float64
	types         map[string]BuildingTypeDef
	seniority     map[string]float64
	modifiers     map[modKey]float64
}

// Build validates a Config and indexes every table by its composite key.
func Build(cfg Config) (*Tables, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	t := &Tables{
		Constants: cfg.Constants,
		Travel:    cfg.Travel,
		FlatRates: cfg.FlatRates,

		bands:     sortBands(cfg.Bands),
		megaBands: sortBands(cfg.MegaBands),

		arch:          make(map[archKey]float64, len(cfg.ArchRates)),
		addon:         make(map[addonKey]float64, len(cfg.AddOnRates)),
		cad:           make(map[cadKey]float64, len(cfg.CADRates)),
		bandMarkup:    make(map[markupKey]float64, len(cfg.BandMarkups)),
		cadMarkup:     make(map[cadKey]float64, len(cfg.CADMarkups)),
		scopeDiscount: make(map[string]float64, len(cfg.ScopeDiscounts)),
		scanBaseline:  make(map[string]float64, len(cfg.ScanBaselines)),
		slamBaseline:  make(map[string]float64, len(cfg.SLAMBaselines)),
		types:         make(map[string]BuildingTypeDef, len(cfg.BuildingTypes)),
		seniority:     make(map[string]float64, len(cfg.SeniorityFactors)),
		modifiers:     make(map[modKey]float64, len(cfg.Modifiers)),
	}

	for _, r := range cfg.ArchRates {
		t.arch[archKey{r.BuildingType, r.Band, r.LOD}] = r.UppT
	}
	for _, r := range cfg.AddOnRates {
		t.addon[addonKey{r.Discipline, r.BuildingType, r.Band, r.LOD}] = r.UppT
	}
	for _, r := range cfg.CADRates {
		t.cad[cadKey{r.Band, r.Package}] = r.UppT
	}
	for _, r := range cfg.BandMarkups {
		t.bandMarkup[markupKey{r.Discipline, r.Band}] = r.Markup
	}
	for _, r := range cfg.CADMarkups {
		t.cadMarkup[cadKey{r.Band, r.Package}] = r.Markup
	}
	for _, r := range cfg.ScopeDiscounts {
		t.scopeDiscount[r.Scope] = r.Discount
	}
	for _, r := range cfg.ScanBaselines {
		t.scanBaseline[r.Band] = r.CostPerSqf
	}
	for _, r := range cfg.SLAMBaselines {
		t.slamBaseline[r.MegaBand] = r.CostPerSqf
	}
	for _, r := range cfg.BuildingTypes {
		t.types[r.Key] = r
	}
	for _, r := range cfg.SeniorityFactors {
		t.seniority[r.Level] = r.Factor
	}
	for _, r := range cfg.Modifiers {
		t.modifiers[modKey{r.Tier, r.Category, r.Code}] = r.Factor
	}

	return t, nil
}

func sortBands(bands []BandDef) []BandDef {
	sorted := make([]BandDef, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinSqft < sorted[j].MinSqft
	})
	return sorted
}

// ── Band selection ───────────────────────────────────────────────────────

// BandFor returns the band key for a square footage. Values beyond the
// last bracket clamp to it.
func (t *Tables) BandFor(sqft float64) string {
	return bandFor(t.bands, sqft)
}

// MegaBandFor returns the SLAM mega-band key for a total square footage.
// Projects below the first mega-band clamp to it.
func (t *Tables) MegaBandFor(sqft float64) string {
	return bandFor(t.megaBands, sqft)
}

func bandFor(bands []BandDef, sqft float64) string {
	if len(bands) == 0 {
		return ""
	}
	for _, b := range bands {
		if b.MaxSqft == 0 || sqft < b.MaxSqft {
			return b.Key
		}
	}
	return bands[len(bands)-1].Key
}

// Bands returns the ordered band definitions.
func (t *Tables) Bands() []BandDef { return t.bands }

// MegaBands returns the ordered mega-band definitions.
func (t *Tables) MegaBands() []BandDef { return t.megaBands }

// ── Lookups ──────────────────────────────────────────────────────────────

// ArchRate returns the architecture UppT for (buildingType, band, lod).
func (t *Tables) ArchRate(buildingType, band, lod string) (float64, bool) {
	v, ok := t.arch[archKey{buildingType, band, lod}]
	return v, ok
}

// AddOnRate returns the add-on UppT for (discipline, buildingType, band, lod).
func (t *Tables) AddOnRate(discipline, buildingType, band, lod string) (float64, bool) {
	v, ok := t.addon[addonKey{discipline, buildingType, band, lod}]
	return v, ok
}

// CADRate returns the CAD conversion UppT for (band, package).
func (t *Tables) CADRate(band, pkg string) (float64, bool) {
	v, ok := t.cad[cadKey{band, pkg}]
	return v, ok
}

// BandMarkup returns the add-on markup for (discipline, band).
func (t *Tables) BandMarkup(discipline, band string) (float64, bool) {
	v, ok := t.bandMarkup[markupKey{discipline, band}]
	return v, ok
}

// CADMarkup returns the CAD markup for (band, package).
func (t *Tables) CADMarkup(band, pkg string) (float64, bool) {
	v, ok := t.cadMarkup[cadKey{band, pkg}]
	return v, ok
}

// ScopeDiscount returns the add-on price discount for a scope.
func (t *Tables) ScopeDiscount(scope string) (float64, bool) {
	v, ok := t.scopeDiscount[scope]
	return v, ok
}

// ScanBaseline returns the X7 scanning cost per sqft for a band.
func (t *Tables) ScanBaseline(band string) (float64, bool) {
	v, ok := t.scanBaseline[band]
	return v, ok
}

// SLAMBaseline returns the SLAM scanning cost per sqft for a mega-band.
func (t *Tables) SLAMBaseline(megaBand string) (float64, bool) {
	v, ok := t.slamBaseline[megaBand]
	return v, ok
}

// TypeRatio returns the throughput ratio for a building type under a tier.
func (t *Tables) TypeRatio(buildingType, tier string) (float64, bool) {
	def, ok := t.types[buildingType]
	if !ok {
		return 0, false
	}
	if tier == TierSLAM {
		return def.SLAMRatio, true
	}
	return def.X7Ratio, true
}

// SLAMEligible reports whether a building type may be scanned under SLAM.
// Unknown types are not eligible.
func (t *Tables) SLAMEligible(buildingType string) bool {
	def, ok := t.types[buildingType]
	return ok && def.SLAMEligible
}

// SeniorityFactor returns the scan-cost factor for a scanner level.
func (t *Tables) SeniorityFactor(level string) (float64, bool) {
	v, ok := t.seniority[level]
	return v, ok
}

// ModifierFactor resolves a site-condition factor for (tier, category,
// code), falling back to the (tier, category, "default") row. ok is false
// only when both rows are absent.
func (t *Tables) ModifierFactor(tier, category, code string) (float64, bool) {
	if v, ok := t.modifiers[modKey{tier, category, code}]; ok {
		return v, ok
	}
	v, ok := t.modifiers[modKey{tier, category, "default"}]
	return v, ok
}

// ── Derived constants ────────────────────────────────────────────────────

// PartnerCostRate returns f: the summed partner-cost components, including
// the BIM-manager component only when active.
func (c Constants) PartnerCostRate(bimManager bool) float64 {
	f := c.QC + c.PM + c.COO + c.Registration
	if bimManager {
		f += c.BIMManager
	}
	return f
}

// AboveTheLineRate returns a: the summed above-the-line components.
func (c Constants) AboveTheLineRate() float64 {
	return c.Tax + c.OwnerComp + c.SalesMarketing + c.Overhead + c.BadDebt
}

// ── Configuration errors ─────────────────────────────────────────────────

// ConfigError reports an invalid rate-table configuration. It is fatal:
// quoting must not proceed on a snapshot that fails validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rate config %s: %s", e.Field, e.Reason)
}
