package services

// ApplyQuoteToShells prices a shell list wholesale from a computed quote.
// Engine-priced disciplines are overwritten in place; manually priced
// lines (ACT, below-floor, landscape, scan-&-reg-only, custom) are never
// touched. Non-zero floor and minimum adjustments are appended as their
// own auditable lines. Returns the extended slice.
func ApplyQuoteToShells(shells []LineItemShell, quote *QuoteResult, ids IDSource) []LineItemShell {
	areas := make(map[string]AreaResult, len(quote.Areas))
	for _, ar := range quote.Areas {
		areas[ar.Name] = ar
	}

	for i := range shells {
		s := &shells[i]
		switch s.Category {
		case CategoryArea:
			ar, ok := areas[s.AreaName]
			if !ok {
				continue
			}
			switch s.Discipline {
			case DisciplineArch:
				setAmounts(s, ar.ArchCost, ar.ArchPrice)
			case DisciplineStructure:
				setAmounts(s, ar.StructureCost, ar.StructurePrice)
			case DisciplineMEPF:
				setAmounts(s, ar.MEPFCost, ar.MEPFPrice)
			case DisciplineGrade:
				setAmounts(s, ar.GradeCost, ar.GradePrice)
			case DisciplineCAD:
				setAmounts(s, ar.CADCost, ar.CADPrice)
			case DisciplineMatterport:
				setAmounts(s, ar.MatterportCost, ar.MatterportPrice)
			}
		case CategoryProject:
			switch s.Discipline {
			case DisciplineTravel:
				setAmounts(s, quote.TravelCost, quote.TravelPrice)
			case DisciplineGeoreferencing:
				setAmounts(s, quote.GeoreferencingCost, quote.GeoreferencingPrice)
			case DisciplineExpedited:
				setAmounts(s, 0, quote.ExpeditedSurcharge)
			}
		}
	}

	if quote.FloorAdjustment > 0 {
		shells = append(shells, LineItemShell{
			ID:          ids.NextID(),
			Category:    CategoryProject,
			Discipline:  DisciplineFloorAdjust,
			Description: "Margin floor adjustment",
			UpteamCost:  money(0),
			ClientPrice: money(quote.FloorAdjustment),
		})
	}
	if quote.MinimumEnforced {
		shells = append(shells, LineItemShell{
			ID:          ids.NextID(),
			Category:    CategoryProject,
			Discipline:  DisciplineMinimum,
			Description: "Project minimum adjustment",
			UpteamCost:  money(0),
			ClientPrice: money(quote.MinimumApplied),
		})
	}

	return shells
}

func setAmounts(s *LineItemShell, cost, price float64) {
	s.UpteamCost = money(cost)
	s.ClientPrice = money(price)
}

// money returns a set price pointer. Unlike form amounts, a computed 0 is
// a real value (a surcharge with no cost basis, a zero-rate lookup), so no
// nil mapping happens here.
func money(v float64) *float64 {
	return &v
}
