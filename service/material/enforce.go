package material

import entity "coilgen.GO/model/entity"

// Violations counts values Enforce had to clamp.
type Violations struct {
	Thickness int `json:"thickness" yaml:"thickness"`
	Width     int `json:"width" yaml:"width"`
	Weight    int `json:"weight" yaml:"weight"`
	// Records is the number of records with at least one clamped field.
	Records int `json:"records" yaml:"records"`
}

// Total is the number of clamped fields.
func (v Violations) Total() int {
	return v.Thickness + v.Width + v.Weight
}

// Enforce overwrites every value above an absolute ceiling with the ceiling,
// in place, and returns the corpus with the clamp counts.
func Enforce(corpus []entity.Material) ([]entity.Material, Violations) {
	var v Violations
	for i := range corpus {
		m := &corpus[i]
		clamped := false
		if m.Thickness > MaxThickness {
			m.Thickness = MaxThickness
			v.Thickness++
			clamped = true
		}
		if m.Width > MaxWidth {
			m.Width = MaxWidth
			v.Width++
			clamped = true
		}
		if m.Weight > MaxWeight {
			m.Weight = MaxWeight
			v.Weight++
			clamped = true
		}
		if clamped {
			v.Records++
		}
	}
	return corpus, v
}
