package models

import "time"

// Field is an optional value inside an EventPatch. A zero Field is absent;
// a set Field overwrites the target even when Value is the zero value or nil.
type Field[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

func (f Field[T]) apply(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}

// EventPatch is a shallow partial update of an event record.
type EventPatch struct {
	EventName          Field[string]
	PhoneNumber        Field[string]
	DateTime           Field[*time.Time]
	Location           Field[string]
	CostPerPerson      Field[float64]
	Description        Field[string]
	Capacity           Field[int]
	FlyerImageID       Field[*string]
	PageBackgroundID   Field[*string]
	PageBackgroundType Field[BackgroundType]
}

// FullPatch returns a patch that overwrites every editable field.
func FullPatch(f EventFields) EventPatch {
	f = f.Clone()
	return EventPatch{
		EventName:          Some(f.EventName),
		PhoneNumber:        Some(f.PhoneNumber),
		DateTime:           Some(f.DateTime),
		Location:           Some(f.Location),
		CostPerPerson:      Some(f.CostPerPerson),
		Description:        Some(f.Description),
		Capacity:           Some(f.Capacity),
		FlyerImageID:       Some(f.FlyerImageID),
		PageBackgroundID:   Some(f.PageBackgroundID),
		PageBackgroundType: Some(f.PageBackgroundType),
	}
}

// Apply overwrites the fields present in p.
func (p EventPatch) Apply(f *EventFields) {
	p.EventName.apply(&f.EventName)
	p.PhoneNumber.apply(&f.PhoneNumber)
	p.DateTime.apply(&f.DateTime)
	p.Location.apply(&f.Location)
	p.CostPerPerson.apply(&f.CostPerPerson)
	p.Description.apply(&f.Description)
	p.Capacity.apply(&f.Capacity)
	p.FlyerImageID.apply(&f.FlyerImageID)
	p.PageBackgroundID.apply(&f.PageBackgroundID)
	p.PageBackgroundType.apply(&f.PageBackgroundType)
}

func (p EventPatch) Empty() bool {
	return p == EventPatch{}
}
