package material

import (
	"fmt"
	"time"
)

var (
	standardThicknesses = []float64{1.5, 2.0, 2.5, 3.0, 4.0, 5.0, 6.0, 8.0, 10.0, 12.0, 14.0, 16.0, 18.0, 20.0}
	standardWidths      = []int{600, 800, 1000, 1200, 1500, 1800, 2000, 2250}
	standardElongations = []float64{15, 20, 25, 30, 35, 40, 45}
)

func repeat(n int, build func() Override) []Override {
	out := make([]Override, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, build())
	}
	return out
}

func boundaryThickness(g *Generator) []Override {
	types := ProductTypes.Values()
	var out []Override
	for _, pt := range types {
		rg, _ := RangeFor(pt)
		out = append(out, Override{ProductType: Fix(pt), Thickness: Fix(rg.ThicknessMin), Remarks: Fix("")})
	}
	for _, pt := range types {
		rg, _ := RangeFor(pt)
		out = append(out, Override{ProductType: Fix(pt), Thickness: Fix(min(rg.ThicknessMax, MaxThickness)), Remarks: Fix("")})
	}
	for _, pt := range heavyPlateTypes {
		out = append(out, Override{ProductType: Fix(pt), Thickness: Fix(MaxThickness)})
	}
	out = append(out, repeat(20, func() Override {
		return Override{
			ProductType: Fix(ProductAutomotive),
			Thickness:   Fix(1.2),
			SteelGrade:  Fix(oneOf(g, coldFormingGrades)),
		}
	})...)
	out = append(out, repeat(30, func() Override {
		return Override{
			ProductType: Fix(oneOf(g, heavyPlateTypes)),
			Thickness:   Fix(round(g.uniform(19.0, 20.0), 2)),
		}
	})...)
	for _, t := range standardThicknesses {
		for _, pt := range sample(g, types, 3) {
			rg, _ := RangeFor(pt)
			if t >= rg.ThicknessMin && t <= min(rg.ThicknessMax, MaxThickness) {
				out = append(out, Override{ProductType: Fix(pt), Thickness: Fix(t)})
			}
		}
	}
	return out
}

func boundaryWidth(g *Generator) []Override {
	types := ProductTypes.Values()
	var out []Override
	for _, pt := range types {
		rg, _ := RangeFor(pt)
		out = append(out, Override{ProductType: Fix(pt), Width: Fix(rg.WidthMin)})
	}
	for _, pt := range types {
		rg, _ := RangeFor(pt)
		out = append(out, Override{ProductType: Fix(pt), Width: Fix(min(rg.WidthMax, MaxWidth))})
	}
	for _, pt := range heavyPlateTypes {
		out = append(out, Override{ProductType: Fix(pt), Width: Fix(MaxWidth)})
	}
	out = append(out, repeat(20, func() Override {
		return Override{ProductType: Fix(ProductNarrowStrip), Width: Fix(g.between(200, 300))}
	})...)
	out = append(out, repeat(30, func() Override {
		return Override{ProductType: Fix(oneOf(g, heavyPlateTypes)), Width: Fix(g.between(2200, 2250))}
	})...)
	for _, w := range standardWidths {
		for _, pt := range sample(g, types, 2) {
			rg, _ := RangeFor(pt)
			if w >= rg.WidthMin && w <= min(rg.WidthMax, MaxWidth) {
				out = append(out, Override{ProductType: Fix(pt), Width: Fix(w)})
			}
		}
	}
	return out
}

// boundaryWeight deliberately pairs some weight bands with dimensions outside
// the product-type range.
func boundaryWeight(g *Generator) []Override {
	var out []Override
	out = append(out, repeat(30, func() Override {
		return Override{
			ProductType: Fix(ProductNarrowStrip),
			Thickness:   Fix(round(g.uniform(1.5, 3.0), 2)),
			Width:       Fix(g.between(200, 350)),
			Weight:      Fix(round(g.uniform(0.3, 0.99), 2)),
		}
	})...)
	out = append(out, repeat(30, func() Override {
		return Override{
			ProductType: Fix(oneOf(g, []string{ProductNarrowStrip, ProductAutomotive})),
			Thickness:   Fix(round(g.uniform(1.2, 3.0), 2)),
			Width:       Fix(g.between(300, 600)),
			Weight:      Fix(round(g.uniform(1.0, 5.0), 2)),
		}
	})...)
	out = append(out, repeat(40, func() Override {
		return Override{
			ProductType: Fix(ProductTypes.Pick(g.rng)),
			Weight:      Fix(round(g.uniform(15.0, 25.0), 2)),
		}
	})...)
	heavy := append([]string{ProductHotRolledCoil}, heavyPlateTypes...)
	out = append(out, repeat(50, func() Override {
		return Override{
			ProductType: Fix(oneOf(g, heavy)),
			Thickness:   Fix(round(g.uniform(12.0, 20.0), 2)),
			Width:       Fix(g.between(1800, 2250)),
			Weight:      Fix(round(g.uniform(35.0, 40.0), 2)),
		}
	})...)
	out = append(out, repeat(20, func() Override {
		return Override{ProductType: Fix(oneOf(g, heavyPlateTypes)), Weight: Fix(MaxWeight)}
	})...)
	out = append(out, repeat(10, func() Override {
		return Override{
			ProductType: Fix(ProductNarrowStrip),
			Thickness:   Fix(1.5),
			Width:       Fix(200),
			Weight:      Fix(round(g.uniform(0.2, 0.5), 2)),
		}
	})...)
	return out
}

func gradeCoverage(*Generator) []Override {
	var out []Override
	for _, grade := range SteelGrades.Values() {
		for i := 0; i < 3; i++ {
			out = append(out, Override{SteelGrade: Fix(grade)})
		}
	}
	return out
}

func hardnessSurface(*Generator) []Override {
	var out []Override
	for _, h := range HardnessLevels.Values() {
		for _, s := range SurfaceLevels.Values() {
			for i := 0; i < 4; i++ {
				out = append(out, Override{Hardness: Fix(h), Surface: Fix(s)})
			}
		}
	}
	return out
}

func contractCross(*Generator) []Override {
	var out []Override
	for _, attr := range ContractAttrs.Values() {
		for _, nature := range ContractNatures.Values() {
			for i := 0; i < 5; i++ {
				out = append(out, Override{ContractAttr: Fix(attr), ContractNature: Fix(nature)})
			}
		}
	}
	return out
}

func exportDomestic(*Generator) []Override {
	out := repeat(50, func() Override {
		return Override{ContractAttr: Fix(AttrExport), ExportFlag: Fix(true), ContractPrefix: Fix("EX")}
	})
	return append(out, repeat(50, func() Override {
		return Override{ContractAttr: Fix(AttrSpot), ExportFlag: Fix(false)}
	})...)
}

func remarkScenarios(g *Generator) []Override {
	var out []Override
	for _, remark := range RemarkOptions.Values() {
		for i := 0; i < 15; i++ {
			out = append(out, Override{Remarks: Fix(remark)})
		}
	}
	out = append(out, repeat(30, func() Override {
		return Override{
			Remarks:        Fix(RemarkUrgent),
			WeeklyDelivery: Fix(true),
			DueDate:        Fix(g.daysFromBase(g.between(1, 3))),
		}
	})...)
	out = append(out, repeat(15, func() Override {
		return Override{Remarks: Fix(RemarkVIP), ContractAttr: Fix(AttrExport), ExportFlag: Fix(true)}
	})...)
	return out
}

func optionalFields(g *Generator) []Override {
	out := repeat(30, func() Override {
		return Override{
			Roughness:      Fix(RoughnessOptions.Pick(g.rng)),
			Elongation:     Fix(floatPtr(round(g.uniform(elongationMin, elongationMax), 1))),
			BatchCode:      Fix(g.batchCode(BatchPrefixes.Pick(g.rng))),
			RequireDueDate: true,
			Remarks:        Fix(RemarkOptions.Pick(g.rng)),
		}
	})
	out = append(out, repeat(30, absentOptionals)...)
	for _, r := range RoughnessOptions.Values() {
		for i := 0; i < 5; i++ {
			out = append(out, Override{Roughness: Fix(r), Elongation: Fix[*float64](nil), BatchCode: Fix("")})
		}
	}
	for _, e := range standardElongations {
		for i := 0; i < 3; i++ {
			out = append(out, Override{Elongation: Fix(floatPtr(e)), Roughness: Fix("")})
		}
	}
	for _, prefix := range BatchPrefixes.Values() {
		for i := 0; i < 5; i++ {
			out = append(out, Override{BatchCode: Fix(g.batchCode(prefix))})
		}
	}
	return out
}

func absentOptionals() Override {
	return Override{
		Roughness:  Fix(""),
		Elongation: Fix[*float64](nil),
		BatchCode:  Fix(""),
		DueDate:    Fix[*time.Time](nil),
		Remarks:    Fix(""),
	}
}

func storageAge(g *Generator) []Override {
	out := repeat(20, func() Override {
		return Override{StorageDays: Fix(0), Remarks: Fix("")}
	})
	out = append(out, repeat(30, func() Override {
		return Override{StorageDays: Fix(g.between(18, maxStorageDays)), Remarks: Fix(RemarkAged)}
	})...)
	out = append(out, repeat(20, func() Override {
		return Override{StorageDays: Fix(g.between(7, 14))}
	})...)
	out = append(out, Override{StorageDays: Fix(0)}, Override{StorageDays: Fix(maxStorageDays)})
	for _, loc := range StorageLocations.Values() {
		out = append(out, Override{StorageLoc: Fix(loc)})
	}
	return out
}

func weeklyDelivery(*Generator) []Override {
	out := repeat(30, func() Override {
		return Override{WeeklyDelivery: Fix(true), RequireDueDate: true}
	})
	return append(out, repeat(30, func() Override {
		return Override{WeeklyDelivery: Fix(false)}
	})...)
}

func customerCoverage(g *Generator) []Override {
	var out []Override
	for _, c := range Customers.Values() {
		out = append(out,
			Override{Customer: Fix(c)},
			Override{Customer: Fix(c), ContractAttr: Fix(oneOf(g, ContractAttrs.Values()))},
		)
	}
	return out
}

func combinedExtremes(g *Generator) []Override {
	// thinnest, widest for the type, lightest
	out := repeat(10, func() Override {
		return Override{
			ProductType: Fix(ProductAutomotive),
			Thickness:   Fix(1.2),
			Width:       Fix(1500),
			Weight:      Fix(round(g.uniform(1.0, 5.0), 2)),
		}
	})
	out = append(out, repeat(10, func() Override {
		return Override{
			ProductType: Fix(ProductStructural),
			Thickness:   Fix(MaxThickness),
			Width:       Fix(MaxWidth),
			Weight:      Fix(MaxWeight),
		}
	})...)
	out = append(out, repeat(10, func() Override {
		return Override{ProductType: Fix(ProductNarrowStrip), Thickness: Fix(1.5), Width: Fix(200)}
	})...)
	// thick and narrow
	out = append(out, repeat(10, func() Override {
		return Override{
			ProductType: Fix(ProductStructural),
			Thickness:   Fix(round(g.uniform(15.0, 20.0), 2)),
			Width:       Fix(1500),
		}
	})...)
	// thin and wide
	out = append(out, repeat(10, func() Override {
		return Override{
			ProductType: Fix(ProductHotRolledCoil),
			Thickness:   Fix(round(g.uniform(1.2, 2.0), 2)),
			Width:       Fix(g.between(1800, 2050)),
		}
	})...)
	out = append(out, repeat(5, func() Override {
		return Override{
			ProductType:    Fix(ProductShipPlate),
			Thickness:      Fix(MaxThickness),
			Width:          Fix(MaxWidth),
			Weight:         Fix(MaxWeight),
			Hardness:       Fix(HardnessHard),
			Surface:        Fix("FA"),
			Remarks:        Fix(RemarkUrgent),
			WeeklyDelivery: Fix(true),
			ExportFlag:     Fix(true),
			ContractAttr:   Fix(AttrExport),
		}
	})...)
	out = append(out, repeat(5, func() Override {
		o := absentOptionals()
		o.ProductType = Fix(ProductNarrowStrip)
		o.Thickness = Fix(1.5)
		o.Width = Fix(200)
		o.Weight = Fix(0.3)
		o.Hardness = Fix(HardnessSoft)
		o.Surface = Fix("FD")
		o.StorageDays = Fix(0)
		return o
	})...)
	// overdue
	out = append(out, repeat(20, func() Override {
		return Override{
			DueDate:     Fix(g.daysFromBase(-g.between(1, 10))),
			Remarks:     Fix(oneOf(g, []string{RemarkChase, RemarkUrgent})),
			StorageDays: Fix(g.between(10, maxStorageDays)),
		}
	})...)
	out = append(out, repeat(10, func() Override {
		return Override{DueDate: Fix(g.daysFromBase(0)), Remarks: Fix(RemarkUrgent)}
	})...)
	return out
}

func batchGrouping(g *Generator) []Override {
	var out []Override
	for _, prefix := range BatchPrefixes.Values() {
		code := fmt.Sprintf("%s-%04d", prefix, g.between(1, 100))
		grade := SteelGrades.Pick(g.rng)
		pt := ProductTypes.Pick(g.rng)
		customer := Customers.Pick(g.rng)
		for i := 0; i < 10; i++ {
			out = append(out, Override{
				BatchCode:   Fix(code),
				SteelGrade:  Fix(grade),
				ProductType: Fix(pt),
				Customer:    Fix(customer),
			})
		}
	}
	out = append(out, repeat(20, func() Override {
		return Override{
			BatchCode:   Fix("BTH-9999"),
			SteelGrade:  Fix("Q235B"),
			ProductType: Fix(ProductHotRolledCoil),
			Customer:    Fix("宝钢股份"),
		}
	})...)
	return append(out, repeat(20, func() Override {
		return Override{BatchCode: Fix("")}
	})...)
}

func dateEdges(g *Generator) []Override {
	out := repeat(10, func() Override {
		return Override{CoilingTime: Fix(g.baseDate), StorageDays: Fix(0)}
	})
	out = append(out, repeat(10, func() Override {
		return Override{CoilingTime: Fix(g.baseDate.AddDate(0, 0, -25)), StorageDays: Fix(maxStorageDays)}
	})...)
	out = append(out, repeat(10, func() Override {
		return Override{DueDate: Fix(g.daysFromBase(dueOffsetMaxDays))}
	})...)
	return append(out, repeat(10, func() Override {
		return Override{DueDate: Fix(g.daysFromBase(1)), Remarks: Fix(RemarkUrgent)}
	})...)
}
