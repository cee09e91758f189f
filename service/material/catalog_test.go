package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_GroupOrder(t *testing.T) {
	var names []string
	for _, group := range DefaultCatalog().Groups() {
		names = append(names, group.Name)
	}
	assert.Equal(t, []string{
		"boundary-thickness", "boundary-width", "boundary-weight", "grade-coverage",
		"hardness-surface", "contract-cross", "export-domestic", "remarks",
		"optional-fields", "storage-age", "weekly-delivery", "customer-coverage",
		"combined-extremes", "batch-grouping", "date-edges",
	}, names)
}

func TestDefaultCatalog_FixedGroupSizes(t *testing.T) {
	want := map[string]int{
		"boundary-weight":   180,
		"grade-coverage":    75,
		"hardness-surface":  48,
		"contract-cross":    75,
		"export-domestic":   100,
		"remarks":           150,
		"optional-fields":   121,
		"storage-age":       92,
		"weekly-delivery":   60,
		"customer-coverage": 60,
		"combined-extremes": 90,
		"batch-grouping":    80,
		"date-edges":        40,
	}
	g := newTestGenerator()
	for _, group := range DefaultCatalog().Groups() {
		n, ok := want[group.Name]
		if !ok {
			continue
		}
		assert.Len(t, group.Build(g), n, group.Name)
	}
}

func TestCatalog_BuildTagsScenario(t *testing.T) {
	g := newTestGenerator()
	items := DefaultCatalog().Build(g)
	require.NotEmpty(t, items)

	seen := map[string]int{}
	for _, o := range items {
		require.NotEmpty(t, o.Scenario)
		seen[o.Scenario]++
	}
	assert.Len(t, seen, 15)
}

func TestCatalog_BuildIsDeterministic(t *testing.T) {
	a := DefaultCatalog().Build(newTestGenerator())
	b := DefaultCatalog().Build(newTestGenerator())
	assert.Equal(t, a, b)
}

func TestCatalog_CustomGroup(t *testing.T) {
	c := NewCatalog().Add(Group{Name: "only-q195", Build: func(*Generator) []Override {
		return []Override{{SteelGrade: Fix("Q195")}, {SteelGrade: Fix("Q195")}}
	}})
	g := newTestGenerator(WithCatalog(c))

	res, err := g.Generate(5)
	require.NoError(t, err)
	assert.Equal(t, 2, res.CatalogSize)
	assert.Equal(t, 2, res.Summary.Scenarios["only-q195"])
	assert.Equal(t, 3, res.Summary.Scenarios[Unattributed])
	assert.GreaterOrEqual(t, res.Summary.SteelGrades["Q195"], 2)
}

func TestBoundaryThickness_TypeExtremes(t *testing.T) {
	items := boundaryThickness(newTestGenerator())
	for _, pt := range ProductTypes.Values() {
		rg, _ := RangeFor(pt)
		var lo, hi bool
		for _, o := range items {
			if o.ProductType.Value != pt || !o.Thickness.Set {
				continue
			}
			lo = lo || o.Thickness.Value == rg.ThicknessMin
			hi = hi || o.Thickness.Value == rg.ThicknessMax
		}
		assert.True(t, lo, "%s min", pt)
		assert.True(t, hi, "%s max", pt)
	}
}

func TestBoundaryThickness_StandardValuesInRange(t *testing.T) {
	for _, o := range boundaryThickness(newTestGenerator()) {
		rg, _ := RangeFor(o.ProductType.Value)
		assert.LessOrEqual(t, o.Thickness.Value, MaxThickness)
		assert.GreaterOrEqual(t, o.Thickness.Value, rg.ThicknessMin, o.ProductType.Value)
	}
}

func TestBoundaryWidth_TypeExtremes(t *testing.T) {
	items := boundaryWidth(newTestGenerator())
	for _, pt := range ProductTypes.Values() {
		rg, _ := RangeFor(pt)
		var lo, hi bool
		for _, o := range items {
			if o.ProductType.Value != pt || !o.Width.Set {
				continue
			}
			lo = lo || o.Width.Value == rg.WidthMin
			hi = hi || o.Width.Value == rg.WidthMax
		}
		assert.True(t, lo, "%s min", pt)
		assert.True(t, hi, "%s max", pt)
	}
}

func TestBoundaryWeight_ExactCeiling(t *testing.T) {
	exact := 0
	for _, o := range boundaryWeight(newTestGenerator()) {
		require.True(t, o.Weight.Set)
		assert.LessOrEqual(t, o.Weight.Value, MaxWeight)
		if o.Weight.Value == MaxWeight {
			exact++
		}
	}
	assert.GreaterOrEqual(t, exact, 20)
}

func TestBatchGrouping_SharedAttributes(t *testing.T) {
	items := batchGrouping(newTestGenerator())
	type key struct{ code, grade, pt, customer string }
	groups := map[key]int{}
	for _, o := range items {
		if o.BatchCode.Value == "" {
			continue
		}
		groups[key{o.BatchCode.Value, o.SteelGrade.Value, o.ProductType.Value, o.Customer.Value}]++
	}
	for k, n := range groups {
		assert.GreaterOrEqual(t, n, 10, "%v", k)
	}
	assert.Equal(t, 20, groups[key{"BTH-9999", "Q235B", ProductHotRolledCoil, "宝钢股份"}])
}

func TestCombinedExtremes_OverdueAndSameDay(t *testing.T) {
	g := newTestGenerator()
	overdue, sameDay := 0, 0
	for _, o := range combinedExtremes(g) {
		if !o.DueDate.Set || o.DueDate.Value == nil {
			continue
		}
		switch d := *o.DueDate.Value; {
		case d.Before(g.BaseDate()):
			overdue++
		case d.Equal(g.BaseDate()):
			sameDay++
		}
	}
	assert.Equal(t, 20, overdue)
	assert.Equal(t, 10, sameDay)
}
