package material

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	entity "coilgen.GO/model/entity"
)

// Unattributed keys records that came from random fill, or whose origin is
// unknown because they were read back from a file.
const Unattributed = "unattributed"

// Output formats accepted by Summary.Render.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

type Stat struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Mean float64 `json:"mean" yaml:"mean"`
}

// Summary is the coverage report of a corpus.
type Summary struct {
	Total int `json:"total" yaml:"total"`

	Thickness Stat `json:"thickness" yaml:"thickness"`
	Width     Stat `json:"width" yaml:"width"`
	Weight    Stat `json:"weight" yaml:"weight"`

	ProductTypes  map[string]int `json:"product_types" yaml:"product_types"`
	SteelGrades   map[string]int `json:"steel_grades" yaml:"steel_grades"`
	ContractAttrs map[string]int `json:"contract_attrs" yaml:"contract_attrs"`
	Hardness      map[string]int `json:"hardness" yaml:"hardness"`
	Surface       map[string]int `json:"surface" yaml:"surface"`

	ExportRatio  float64 `json:"export_ratio" yaml:"export_ratio"`
	WeeklyRatio  float64 `json:"weekly_ratio" yaml:"weekly_ratio"`
	BatchRatio   float64 `json:"batch_ratio" yaml:"batch_ratio"`
	DueDateRatio float64 `json:"due_date_ratio" yaml:"due_date_ratio"`
	RemarksRatio float64 `json:"remarks_ratio" yaml:"remarks_ratio"`

	AllGradesCovered bool     `json:"all_grades_covered" yaml:"all_grades_covered"`
	MissingGrades    []string `json:"missing_grades,omitempty" yaml:"missing_grades,omitempty"`

	Scenarios map[string]int `json:"scenarios" yaml:"scenarios"`
	// OutOfTypeRange counts records outside their product-type range, per scenario.
	OutOfTypeRange map[string]int `json:"out_of_type_range,omitempty" yaml:"out_of_type_range,omitempty"`

	Violations *Violations `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// Report computes the coverage summary of corpus. It does not modify corpus.
func Report(corpus []entity.Material) *Summary {
	s := &Summary{
		Total:          len(corpus),
		ProductTypes:   map[string]int{},
		SteelGrades:    map[string]int{},
		ContractAttrs:  map[string]int{},
		Hardness:       map[string]int{},
		Surface:        map[string]int{},
		Scenarios:      map[string]int{},
		OutOfTypeRange: map[string]int{},
	}
	if len(corpus) == 0 {
		s.MissingGrades = SteelGrades.Values()
		return s
	}

	var thickness, width, weight statAcc
	var export, weekly, batch, due, remarks int
	for _, m := range corpus {
		thickness.add(m.Thickness)
		width.add(float64(m.Width))
		weight.add(m.Weight)

		s.ProductTypes[m.ProductType]++
		s.SteelGrades[m.SteelGrade]++
		s.ContractAttrs[m.ContractAttr]++
		s.Hardness[m.HardnessLevel]++
		s.Surface[m.SurfaceLevel]++

		if m.ExportFlag {
			export++
		}
		if m.WeeklyDelivery {
			weekly++
		}
		if m.BatchCode != "" {
			batch++
		}
		if m.DueDate != nil {
			due++
		}
		if m.Remarks != "" {
			remarks++
		}

		key := scenarioKey(m.Scenario)
		s.Scenarios[key]++
		if rg, _ := RangeFor(m.ProductType); !rg.Contains(m.Thickness, m.Width) {
			s.OutOfTypeRange[key]++
		}
	}

	n := float64(len(corpus))
	s.Thickness = thickness.stat(n)
	s.Width = width.stat(n)
	s.Weight = weight.stat(n)
	s.ExportRatio = float64(export) / n
	s.WeeklyRatio = float64(weekly) / n
	s.BatchRatio = float64(batch) / n
	s.DueDateRatio = float64(due) / n
	s.RemarksRatio = float64(remarks) / n

	for _, grade := range SteelGrades.Values() {
		if s.SteelGrades[grade] == 0 {
			s.MissingGrades = append(s.MissingGrades, grade)
		}
	}
	s.AllGradesCovered = len(s.MissingGrades) == 0
	return s
}

// FillLeakage is the number of random-fill records outside their product-type range.
func (s *Summary) FillLeakage() int {
	return s.OutOfTypeRange[Unattributed]
}

func scenarioKey(name string) string {
	if name == "" {
		return Unattributed
	}
	return name
}

type statAcc struct {
	min, max, sum float64
	seen          bool
}

func (a *statAcc) add(v float64) {
	if !a.seen {
		a.min, a.max, a.seen = v, v, true
	}
	a.min = math.Min(a.min, v)
	a.max = math.Max(a.max, v)
	a.sum += v
}

func (a *statAcc) stat(n float64) Stat {
	return Stat{Min: a.min, Max: a.max, Mean: round(a.sum/n, 2)}
}

// Render writes the summary as text, yaml or json.
func (s *Summary) Render(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		_, err := io.WriteString(w, s.text())
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode summary yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (s *Summary) text() string {
	var b strings.Builder
	pct := func(r float64) string { return fmt.Sprintf("%.1f%%", r*100) }

	fmt.Fprintf(&b, "Total: %d\n", s.Total)
	fmt.Fprintf(&b, "Thickness: min=%.2f max=%.2f mean=%.2f\n", s.Thickness.Min, s.Thickness.Max, s.Thickness.Mean)
	fmt.Fprintf(&b, "Width: min=%.0f max=%.0f mean=%.2f\n", s.Width.Min, s.Width.Max, s.Width.Mean)
	fmt.Fprintf(&b, "Weight: min=%.2f max=%.2f mean=%.2f\n", s.Weight.Min, s.Weight.Max, s.Weight.Mean)

	writeCounts(&b, "Product types", s.ProductTypes)
	writeCounts(&b, "Contract attributes", s.ContractAttrs)
	writeCounts(&b, "Hardness", s.Hardness)
	writeCounts(&b, "Surface", s.Surface)
	fmt.Fprintf(&b, "Steel grades: %d distinct", len(s.SteelGrades))
	if s.AllGradesCovered {
		b.WriteString(", all covered\n")
	} else {
		fmt.Fprintf(&b, ", missing %s\n", strings.Join(s.MissingGrades, ", "))
	}

	fmt.Fprintf(&b, "Export: %s  Weekly: %s  Batch: %s  Due date: %s  Remarks: %s\n",
		pct(s.ExportRatio), pct(s.WeeklyRatio), pct(s.BatchRatio), pct(s.DueDateRatio), pct(s.RemarksRatio))

	writeCounts(&b, "Scenarios", s.Scenarios)
	if len(s.OutOfTypeRange) > 0 {
		writeCounts(&b, "Outside product-type range", s.OutOfTypeRange)
	}
	if s.Violations != nil {
		fmt.Fprintf(&b, "Clamped: thickness=%d width=%d weight=%d\n",
			s.Violations.Thickness, s.Violations.Width, s.Violations.Weight)
	}
	return b.String()
}

// writeCounts prints counts by descending frequency, ties by key.
func writeCounts(b *strings.Builder, title string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	fmt.Fprintf(b, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(b, "  %s: %d\n", k, counts[k])
	}
}
