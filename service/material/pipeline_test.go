package material

import (
	"bytes"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entity "coilgen.GO/model/entity"
)

var (
	defaultOnce   sync.Once
	defaultResult *Result
	defaultErr    error
)

// defaultCorpus generates the seed-2026 corpus once per test binary.
// Callers must not modify it.
func defaultCorpus(t *testing.T) *Result {
	t.Helper()
	defaultOnce.Do(func() {
		defaultResult, defaultErr = NewGenerator().Generate(DefaultCount)
	})
	require.NoError(t, defaultErr)
	return defaultResult
}

func TestGenerate_InvalidCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := NewGenerator().Generate(n)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCount))
	}
}

func TestGenerate_AbsoluteBounds(t *testing.T) {
	res := defaultCorpus(t)
	require.Len(t, res.Corpus, DefaultCount)
	for _, m := range res.Corpus {
		assert.LessOrEqual(t, m.Thickness, MaxThickness, m.CoilID)
		assert.LessOrEqual(t, m.Width, MaxWidth, m.CoilID)
		assert.LessOrEqual(t, m.Weight, MaxWeight, m.CoilID)
		assert.Greater(t, m.Thickness, 0.0, m.CoilID)
		assert.Greater(t, m.Width, 0, m.CoilID)
		assert.Greater(t, m.Weight, 0.0, m.CoilID)
	}
}

func TestGenerate_TypeExtremesPresent(t *testing.T) {
	res := defaultCorpus(t)
	for _, pt := range ProductTypes.Values() {
		rg, _ := RangeFor(pt)
		var tMin, tMax, wMin, wMax bool
		for _, m := range res.Corpus {
			if m.ProductType != pt {
				continue
			}
			tMin = tMin || m.Thickness == rg.ThicknessMin
			tMax = tMax || m.Thickness == rg.ThicknessMax
			wMin = wMin || m.Width == rg.WidthMin
			wMax = wMax || m.Width == rg.WidthMax
		}
		assert.True(t, tMin, "%s thickness min", pt)
		assert.True(t, tMax, "%s thickness max", pt)
		assert.True(t, wMin, "%s width min", pt)
		assert.True(t, wMax, "%s width max", pt)
	}
}

func TestGenerate_AllGradesCovered(t *testing.T) {
	res := defaultCorpus(t)
	assert.True(t, res.Summary.AllGradesCovered)
	assert.Empty(t, res.Summary.MissingGrades)
	for _, grade := range SteelGrades.Values() {
		assert.GreaterOrEqual(t, res.Summary.SteelGrades[grade], 3, grade)
	}
}

func TestGenerate_DenseCoilIDs(t *testing.T) {
	res := defaultCorpus(t)
	for i, m := range res.Corpus {
		require.Equal(t, CoilID(i+1), m.CoilID)
	}
}

func TestGenerate_PartitionsSumToTotal(t *testing.T) {
	res := defaultCorpus(t)
	s := res.Summary
	for name, counts := range map[string]map[string]int{
		"product types":  s.ProductTypes,
		"steel grades":   s.SteelGrades,
		"contract attrs": s.ContractAttrs,
		"hardness":       s.Hardness,
		"surface":        s.Surface,
		"scenarios":      s.Scenarios,
	} {
		sum := 0
		for _, n := range counts {
			sum += n
		}
		assert.Equal(t, s.Total, sum, name)
	}
	assert.Equal(t, DefaultCount-res.CatalogSize, s.Scenarios[Unattributed])
}

func TestGenerate_ReferenceCorpusShape(t *testing.T) {
	res := defaultCorpus(t)

	atMaxWeight, atMaxDims := 0, 0
	type batchKey struct{ code, pt, customer string }
	batches := map[batchKey]int{}
	for _, m := range res.Corpus {
		if m.Weight == MaxWeight {
			atMaxWeight++
		}
		if m.Thickness == MaxThickness && m.Width == MaxWidth {
			atMaxDims++
		}
		if m.BatchCode != "" {
			batches[batchKey{m.BatchCode, m.ProductType, m.CustomerName}]++
		}
	}
	assert.GreaterOrEqual(t, atMaxWeight, 20)
	assert.GreaterOrEqual(t, atMaxDims, 1)

	largest := 0
	for _, n := range batches {
		largest = max(largest, n)
	}
	assert.GreaterOrEqual(t, largest, 10)
}

func TestGenerate_NoRandomFillLeakage(t *testing.T) {
	res := defaultCorpus(t)
	assert.Zero(t, res.Summary.FillLeakage())
	assert.Zero(t, res.Violations.Total())
	require.NotNil(t, res.Summary.Violations)
}

func TestGenerate_ByteIdenticalForSameSeed(t *testing.T) {
	render := func() []byte {
		res, err := NewGenerator(WithSeed(2026)).Generate(3000)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, res.Corpus))
		return buf.Bytes()
	}
	a, b := render(), render()
	assert.True(t, bytes.Equal(a, b))

	other, err := NewGenerator(WithSeed(2027)).Generate(3000)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, other.Corpus))
	assert.False(t, bytes.Equal(a, buf.Bytes()))
}

func TestGenerate_CountBelowCatalogTruncates(t *testing.T) {
	res, err := newTestGenerator().Generate(50)
	require.NoError(t, err)
	assert.Len(t, res.Corpus, 50)
	assert.Greater(t, res.CatalogSize, 50)
	assert.Zero(t, res.Summary.Scenarios[Unattributed])
}

func TestEnforce_CountsExceedances(t *testing.T) {
	corpus := []entity.Material{
		{CoilID: "a", Thickness: 20.5, Width: 2000, Weight: 10},
		{CoilID: "b", Thickness: 10, Width: 2300, Weight: 41},
		{CoilID: "c", Thickness: 20, Width: 2250, Weight: 40},
		{CoilID: "d", Thickness: 5, Width: 1000, Weight: 5},
	}
	exceeding := 0
	for _, m := range corpus {
		if m.Thickness > MaxThickness || m.Width > MaxWidth || m.Weight > MaxWeight {
			exceeding++
		}
	}

	out, v := Enforce(corpus)
	assert.Equal(t, Violations{Thickness: 1, Width: 1, Weight: 1, Records: 2}, v)
	assert.Equal(t, exceeding, v.Records)
	assert.Equal(t, 3, v.Total())
	assert.Equal(t, MaxThickness, out[0].Thickness)
	assert.Equal(t, MaxWidth, out[1].Width)
	assert.Equal(t, MaxWeight, out[1].Weight)
	assert.Equal(t, 5.0, out[3].Thickness)
}

func TestGenerate_EnforceCatchesOverriddenWeight(t *testing.T) {
	c := NewCatalog(Group{Name: "overweight", Build: func(*Generator) []Override {
		return []Override{{Weight: Fix(52.0)}, {Weight: Fix(40.5)}}
	}})
	res, err := newTestGenerator(WithCatalog(c)).Generate(10)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Violations.Weight)
	assert.Equal(t, 2, res.Violations.Records)
	for _, m := range res.Corpus {
		assert.LessOrEqual(t, m.Weight, MaxWeight)
	}
}

func TestFinalize_PreservesMultiset(t *testing.T) {
	g := newTestGenerator()
	corpus := make([]entity.Material, 500)
	for i := range corpus {
		corpus[i] = g.Synthesize(i+1, Override{})
	}
	fingerprint := func(items []entity.Material) []string {
		out := make([]string, len(items))
		for i := range items {
			row := Row(&items[i])
			out[i] = string(bytes.Join(toBytes(row[1:]), []byte{0}))
		}
		sort.Strings(out)
		return out
	}
	before := fingerprint(corpus)

	shuffled := g.Finalize(corpus)
	assert.Equal(t, before, fingerprint(shuffled))
	for i, m := range shuffled {
		assert.Equal(t, CoilID(i+1), m.CoilID)
	}
}

func toBytes(fields []string) [][]byte {
	out := make([][]byte, len(fields))
	for i, f := range fields {
		out[i] = []byte(f)
	}
	return out
}
