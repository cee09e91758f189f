package material

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/shopspring/decimal"
)

// Absolute ceilings every emitted record must respect.
const (
	MaxThickness = 20.0 // mm
	MaxWidth     = 2250 // mm
	MaxWeight    = 40.0 // tons
)

// Hardness levels.
const (
	HardnessSoft   = "软"
	HardnessMedium = "中"
	HardnessHard   = "硬"
)

// Product types.
const (
	ProductHotRolledCoil = "热轧板卷"
	ProductHotStrip      = "热轧带钢"
	ProductPickled       = "热轧酸洗板"
	ProductChequered     = "花纹板"
	ProductNarrowStrip   = "热轧窄带钢"
	ProductStructural    = "结构钢板"
	ProductShipPlate     = "造船板"
	ProductPipeline      = "管线钢板"
	ProductAutomotive    = "汽车结构钢"
)

// Contract attributes.
const (
	AttrExport     = "出口合同"
	AttrFutures    = "期货合同"
	AttrSpot       = "现货合同"
	AttrTransition = "过渡材合同"
	AttrOther      = "其他"
)

// Contract natures.
const (
	NatureFormal    = "正式合同"
	NatureFramework = "框架协议"
	NatureTemporary = "临时订单"
)

// Remarks.
const (
	RemarkPriority    = "优先处理"
	RemarkUrgent      = "紧急订单"
	RemarkChase       = "客户催交"
	RemarkSurface     = "表面质量要求高"
	RemarkCoordinated = "需配合交货"
	RemarkAged        = "库龄较长"
	RemarkVIP         = "VIP客户"
)

// Choice is one value of a weighted table.
type Choice[T any] struct {
	Value  T
	Weight float64
}

// Weighted is a discrete distribution sampled by relative weight.
type Weighted[T any] []Choice[T]

// Uniform builds a table where every value has weight 1.
func Uniform[T any](values ...T) Weighted[T] {
	w := make(Weighted[T], len(values))
	for i, v := range values {
		w[i] = Choice[T]{Value: v, Weight: 1}
	}
	return w
}

// Pick draws one value. Panics on an empty table.
func (w Weighted[T]) Pick(rng *rand.Rand) T {
	var total float64
	for _, c := range w {
		total += c.Weight
	}
	r := rng.Float64() * total
	for _, c := range w {
		if r < c.Weight {
			return c.Value
		}
		r -= c.Weight
	}
	return w[len(w)-1].Value
}

// Values returns the declared values in table order.
func (w Weighted[T]) Values() []T {
	out := make([]T, len(w))
	for i, c := range w {
		out[i] = c.Value
	}
	return out
}

var (
	SteelGrades = Uniform(
		"Q235B", "Q345B", "Q345C", "Q355B", "Q355C",
		"SPHC", "SPHD", "SPHE", "SS400", "SS490",
		"Q195", "Q215", "Q275", "Q390B", "Q420B",
		"DC01", "DC03", "DC04", "DC06", "SAPH440",
		"S235JR", "S275JR", "S355JR", "SM490A", "SM520B",
	)

	HardnessLevels = Weighted[string]{
		{HardnessSoft, 0.3}, {HardnessMedium, 0.5}, {HardnessHard, 0.2},
	}

	SurfaceLevels = Weighted[string]{
		{"FA", 0.15}, {"FB", 0.35}, {"FC", 0.35}, {"FD", 0.15},
	}

	ProductTypes = Uniform(
		ProductHotRolledCoil, ProductHotStrip, ProductPickled,
		ProductChequered, ProductNarrowStrip, ProductStructural,
		ProductShipPlate, ProductPipeline, ProductAutomotive,
	)

	ContractAttrs = Weighted[string]{
		{AttrExport, 0.08}, {AttrFutures, 0.12}, {AttrSpot, 0.50}, {AttrTransition, 0.10}, {AttrOther, 0.20},
	}

	ContractNatures = Uniform(NatureFormal, NatureFramework, NatureTemporary)

	Customers = Uniform(
		"宝钢股份", "鞍钢股份", "首钢集团", "河钢集团", "马钢股份",
		"太钢不锈", "柳钢集团", "日照钢铁", "沙钢集团", "中天钢铁",
		"华菱钢铁", "新余钢铁", "南京钢铁", "酒泉钢铁", "包头钢铁",
		"山东钢铁", "本钢集团", "三宝钢铁", "永锋钢铁", "方大钢铁",
		"福建三钢", "八一钢铁", "西宁钢铁", "安阳钢铁", "湘潭钢铁",
		"新兴铸管", "韶关钢铁", "广钢集团", "海鑫钢铁", "达州钢铁",
	)

	StorageLocations = Uniform(
		"A区-01", "A区-02", "A区-03", "A区-04", "A区-05",
		"B区-01", "B区-02", "B区-03", "B区-04", "B区-05",
		"C区-01", "C区-02", "C区-03", "C区-04", "C区-05",
		"D区-01", "D区-02", "D区-03",
		"E区-01", "E区-02",
	)

	ContractPrefixes = Uniform("HT", "CT", "PT", "EX", "FW")
	BatchPrefixes    = Uniform("BTH", "GRP", "LOT", "SET")
	RoughnessOptions = Uniform("Ra0.8", "Ra1.6", "Ra3.2", "Ra6.3")

	RemarkOptions = Uniform(
		RemarkPriority, RemarkUrgent, RemarkChase, RemarkSurface,
		RemarkCoordinated, RemarkAged, RemarkVIP,
	)

	// roughness present 4 times in 5
	roughnessTable = append(Weighted[string]{{"", 1}}, RoughnessOptions...)

	// remarks present 7 times in 11
	remarksTable = append(Weighted[string]{{"", 4}}, RemarkOptions...)

	// heavy plate types reach the 20mm / 2250mm ceilings
	heavyPlateTypes = []string{ProductStructural, ProductShipPlate, ProductPipeline}

	coldFormingGrades = []string{"DC01", "DC03", "DC04", "DC06"}
)

// ProductRange bounds thickness and width for one product type.
type ProductRange struct {
	ThicknessMin float64
	ThicknessMax float64
	WidthMin     int
	WidthMax     int
}

var productRanges = map[string]ProductRange{
	ProductHotRolledCoil: {1.2, 16.0, 900, 2050},
	ProductHotStrip:      {1.5, 8.0, 600, 1600},
	ProductPickled:       {1.2, 6.0, 900, 1600},
	ProductChequered:     {2.5, 10.0, 1000, 1800},
	ProductNarrowStrip:   {1.5, 6.0, 200, 600},
	ProductStructural:    {4.0, 20.0, 1500, 2250},
	ProductShipPlate:     {6.0, 20.0, 1500, 2250},
	ProductPipeline:      {6.0, 20.0, 1200, 2250},
	ProductAutomotive:    {1.2, 4.0, 800, 1500},
}

// fallbackRange applies to product types outside the table.
var fallbackRange = ProductRange{1.2, MaxThickness, 200, MaxWidth}

// RangeFor returns the thickness/width range of productType. Unknown types
// get the widest physically allowed range and ok=false.
func RangeFor(productType string) (ProductRange, bool) {
	r, ok := productRanges[productType]
	if !ok {
		return fallbackRange, false
	}
	return r, true
}

// Contains reports whether thickness and width both fall inside the range.
func (r ProductRange) Contains(thickness float64, width int) bool {
	return thickness >= r.ThicknessMin && thickness <= r.ThicknessMax &&
		width >= r.WidthMin && width <= r.WidthMax
}

// CustomerCode derives a stable "Cnnnn" code from a customer name, so the same
// customer carries the same code in synthetic and converted records.
func CustomerCode(name string) string {
	sum := md5.Sum([]byte(name))
	n, _ := strconv.ParseUint(hex.EncodeToString(sum[:2]), 16, 32)
	return fmt.Sprintf("C%d", n%9000+1000)
}

// CoilID renders the dense corpus-position identifier.
func CoilID(index int) string {
	return fmt.Sprintf("HC%06d", index)
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
