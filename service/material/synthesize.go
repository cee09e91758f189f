package material

import (
	"fmt"
	"math"
	"time"

	entity "coilgen.GO/model/entity"
)

const (
	coilingSpanMinutes = 25 * 24 * 60
	dueOffsetMinDays   = -5
	dueOffsetMaxDays   = 35
	maxStorageDays     = 20

	weightFactorMin = 1.5
	weightFactorMax = 4.5

	pExportResidual = 0.03
	pWeekly         = 0.2
	pBatch          = 0.6
	pDueDate        = 0.85
	pElongation     = 0.4

	elongationMin = 15.0
	elongationMax = 45.0
)

// Synthesize builds one record for corpus position index, taking every set
// slot of o verbatim and sampling the rest. Thickness and width are capped at
// the absolute ceilings here; an overridden weight is left for Enforce.
// An overridden thickness or width outside the product-type range is kept.
func (g *Generator) Synthesize(index int, o Override) entity.Material {
	prefix := o.ContractPrefix.Or(func() string { return ContractPrefixes.Pick(g.rng) })
	contractNo := fmt.Sprintf("%s%06d-%03d", prefix, g.between(202601, 202612), g.between(1, 999))

	customer := o.Customer.Or(func() string { return Customers.Pick(g.rng) })
	grade := o.SteelGrade.Or(func() string { return SteelGrades.Pick(g.rng) })
	productType := o.ProductType.Or(func() string { return ProductTypes.Pick(g.rng) })
	rg, _ := RangeFor(productType)

	thickness := o.Thickness.Or(func() float64 {
		return round(g.uniform(rg.ThicknessMin, rg.ThicknessMax), 2)
	})
	thickness = math.Min(thickness, MaxThickness)

	width := o.Width.Or(func() int {
		return int(math.Round(g.uniform(float64(rg.WidthMin), float64(rg.WidthMax))))
	})
	width = min(width, MaxWidth)

	weight := o.Weight.Or(func() float64 {
		return g.weightFor(thickness, width)
	})

	hardness := o.Hardness.Or(func() string { return HardnessLevels.Pick(g.rng) })
	surface := o.Surface.Or(func() string { return SurfaceLevels.Pick(g.rng) })
	roughness := o.Roughness.Or(func() string { return roughnessTable.Pick(g.rng) })
	elongation := o.Elongation.Or(func() *float64 {
		if !g.chance(pElongation) {
			return nil
		}
		return floatPtr(round(g.uniform(elongationMin, elongationMax), 1))
	})

	attr := o.ContractAttr.Or(func() string { return ContractAttrs.Pick(g.rng) })
	nature := o.ContractNature.Or(func() string { return ContractNatures.Pick(g.rng) })
	export := o.ExportFlag.Or(func() bool {
		return attr == AttrExport || g.chance(pExportResidual)
	})
	weekly := o.WeeklyDelivery.Or(func() bool { return g.chance(pWeekly) })

	batch := o.BatchCode.Or(func() string {
		if !g.chance(pBatch) {
			return ""
		}
		return g.batchCode(BatchPrefixes.Pick(g.rng))
	})

	coiling := o.CoilingTime.Or(func() time.Time {
		return g.baseDate.Add(-time.Duration(g.between(0, coilingSpanMinutes)) * time.Minute)
	})
	storageDays := o.StorageDays.Or(func() int { return g.between(0, maxStorageDays) })
	loc := o.StorageLoc.Or(func() string { return StorageLocations.Pick(g.rng) })

	due := o.DueDate.Or(func() *time.Time {
		if !o.RequireDueDate && !g.chance(pDueDate) {
			return nil
		}
		return g.daysFromBase(g.between(dueOffsetMinDays, dueOffsetMaxDays))
	})
	remarks := o.Remarks.Or(func() string { return remarksTable.Pick(g.rng) })

	return entity.Material{
		CoilID:         CoilID(index),
		ContractNo:     contractNo,
		CustomerName:   customer,
		CustomerCode:   CustomerCode(customer),
		SteelGrade:     grade,
		Thickness:      thickness,
		Width:          width,
		Weight:         weight,
		HardnessLevel:  hardness,
		SurfaceLevel:   surface,
		RoughnessReq:   roughness,
		ElongationReq:  elongation,
		ProductType:    productType,
		ContractAttr:   attr,
		ContractNature: nature,
		ExportFlag:     export,
		WeeklyDelivery: weekly,
		BatchCode:      batch,
		CoilingTime:    coiling,
		StorageDays:    storageDays,
		StorageLoc:     loc,
		DueDate:        due,
		Remarks:        remarks,
		Scenario:       o.Scenario,
	}
}

// weightFor estimates coil weight in tons from strip dimensions.
func (g *Generator) weightFor(thickness float64, width int) float64 {
	factor := g.uniform(weightFactorMin, weightFactorMax)
	return math.Min(round(thickness*float64(width)/1000*factor, 2), MaxWeight)
}

func (g *Generator) batchCode(prefix string) string {
	return fmt.Sprintf("%s-%04d", prefix, g.between(1, 500))
}
