package services

import "fmt"

// Shell categories. Area shells belong to one scoped area; project shells
// apply to the quote as a whole.
const (
	CategoryArea    = "area"
	CategoryProject = "project"
)

// Shell disciplines. The discipline is the join key between generated
// shells and the pricing engine's breakdown.
const (
	DisciplineArch           = "arch"
	DisciplineStructure      = "structure"
	DisciplineMEPF           = "mepf"
	DisciplineCAD            = "cad"
	DisciplineACT            = "act"
	DisciplineBelowFloor     = "below_floor"
	DisciplineGrade          = "grade"
	DisciplineMatterport     = "matterport"
	DisciplineTravel         = "travel"
	DisciplineGeoreferencing = "georeferencing"
	DisciplineExpedited      = "expedited"
	DisciplineLandscape      = "landscape"
	DisciplineScanRegOnly    = "scan_reg_only"
	DisciplineCustom         = "custom"
	DisciplineFloorAdjust    = "floor_adjustment"
	DisciplineMinimum        = "project_minimum"
)

// LineItemShell is one quote line. Shells come out of the generator with
// null cost and price (except caller-supplied custom amounts); pricing is
// applied afterwards, either manually or by ApplyQuoteToShells.
type LineItemShell struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	AreaName    string   `json:"area_name,omitempty"`
	Discipline  string   `json:"discipline"`
	Description string   `json:"description"`
	SquareFeet  float64  `json:"square_feet"`
	LOD         string   `json:"lod,omitempty"`
	Scope       string   `json:"scope,omitempty"`
	UpteamCost  *float64 `json:"upteam_cost"`
	ClientPrice *float64 `json:"client_price"`
}

// GenerateLineItemShells expands a scoping form into its ordered quote
// lines. Per-area lines come first, in area order: architecture always,
// then the toggled add-on disciplines; project-level lines follow. The
// generator assigns no prices beyond custom-item amounts typed into the
// form. IDs come from the caller-supplied source so repeated generation
// stays reproducible.
func GenerateLineItemShells(form *ScopingForm, ids IDSource) []LineItemShell {
	var shells []LineItemShell

	add := func(s LineItemShell) {
		s.ID = ids.NextID()
		shells = append(shells, s)
	}

	for _, area := range form.Areas {
		base := LineItemShell{
			Category: CategoryArea,
			AreaName: area.Name,
			LOD:      effectiveLOD(area),
			Scope:    area.Scope,
		}

		arch := base
		arch.Discipline = DisciplineArch
		arch.Description = "Architecture model"
		arch.SquareFeet = area.SquareFootage
		add(arch)

		if area.Structure {
			s := base
			s.Discipline = DisciplineStructure
			s.Description = "Structural model"
			s.SquareFeet = disciplineSqft(area.StructureSqft, area.SquareFootage)
			add(s)
		}
		if area.MEPF {
			s := base
			s.Discipline = DisciplineMEPF
			s.Description = "MEPF model"
			s.SquareFeet = disciplineSqft(area.MEPFSqft, area.SquareFootage)
			add(s)
		}
		if form.WantsCAD() {
			s := base
			s.Discipline = DisciplineCAD
			s.Description = fmt.Sprintf("CAD deliverable (%s)", form.CADDeliverable)
			s.SquareFeet = area.SquareFootage
			add(s)
		}
		if area.ACT {
			s := base
			s.Discipline = DisciplineACT
			s.Description = "Above-ceiling (ACT) detail"
			s.SquareFeet = disciplineSqft(area.ACTSqft, area.SquareFootage)
			add(s)
		}
		if area.BelowFloor {
			s := base
			s.Discipline = DisciplineBelowFloor
			s.Description = "Below-floor detail"
			s.SquareFeet = disciplineSqft(area.BelowFloorSqft, area.SquareFootage)
			add(s)
		}
		if area.Grade {
			s := base
			s.Discipline = DisciplineGrade
			s.Description = "Site & grade modeling"
			s.SquareFeet = disciplineSqft(area.GradeSqft, area.SquareFootage)
			add(s)
		}
		if area.Matterport {
			s := base
			s.Discipline = DisciplineMatterport
			s.Description = "Matterport virtual tour"
			s.SquareFeet = area.SquareFootage
			add(s)
		}
	}

	add(LineItemShell{
		Category:    CategoryProject,
		Discipline:  DisciplineTravel,
		Description: "Travel & on-site logistics",
	})
	if form.Georeferencing {
		add(LineItemShell{
			Category:    CategoryProject,
			Discipline:  DisciplineGeoreferencing,
			Description: "Georeferencing (survey control)",
		})
	}
	if form.Expedited {
		add(LineItemShell{
			Category:    CategoryProject,
			Discipline:  DisciplineExpedited,
			Description: "Expedited delivery surcharge",
		})
	}
	if form.Landscape != "" && form.Landscape != "No" {
		add(LineItemShell{
			Category:    CategoryProject,
			Discipline:  DisciplineLandscape,
			Description: fmt.Sprintf("Landscape modeling (%s)", form.Landscape),
		})
	}
	if form.ScanRegOnly != "" && form.ScanRegOnly != "none" {
		add(LineItemShell{
			Category:    CategoryProject,
			Discipline:  DisciplineScanRegOnly,
			Description: fmt.Sprintf("Scan & registration only (%s)", form.ScanRegOnly),
		})
	}
	for _, item := range form.CustomItems {
		add(LineItemShell{
			Category:    CategoryProject,
			Discipline:  DisciplineCustom,
			Description: item.Description,
			UpteamCost:  moneyOrNil(item.Cost),
			ClientPrice: moneyOrNil(item.Amount),
		})
	}

	return shells
}

// moneyOrNil maps a zero form amount to a null price. Zero means unset on
// the scoping form, never "free".
func moneyOrNil(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
