package material

import "time"

// Field is an optional override slot. Set distinguishes "fixed to the zero
// value" (e.g. an explicitly absent remark) from "not overridden".
type Field[T any] struct {
	Value T
	Set   bool
}

// Fix returns a set slot holding v.
func Fix[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Or returns the fixed value, or calls sample when the slot is unset.
// sample is only evaluated when needed so unset slots alone consume the stream.
func (f Field[T]) Or(sample func() T) T {
	if f.Set {
		return f.Value
	}
	return sample()
}

// Override is a partial material record produced by a catalog group.
// Every unset slot is sampled by the synthesizer.
type Override struct {
	// Scenario is the name of the group that produced the override.
	Scenario string

	ContractPrefix Field[string]
	Customer       Field[string]
	SteelGrade     Field[string]
	ProductType    Field[string]
	Thickness      Field[float64]
	Width          Field[int]
	Weight         Field[float64]
	Hardness       Field[string]
	Surface        Field[string]
	Roughness      Field[string]
	Elongation     Field[*float64]
	ContractAttr   Field[string]
	ContractNature Field[string]
	ExportFlag     Field[bool]
	WeeklyDelivery Field[bool]
	BatchCode      Field[string]
	CoilingTime    Field[time.Time]
	StorageDays    Field[int]
	StorageLoc     Field[string]
	DueDate        Field[*time.Time]
	Remarks        Field[string]

	// RequireDueDate forces a randomly offset due date to be present.
	// Ignored when DueDate is set.
	RequireDueDate bool
}

func floatPtr(v float64) *float64 { return &v }
