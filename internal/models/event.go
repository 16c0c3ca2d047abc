package models

import "time"

// EventFields is the editable part of an event. It is what the draft holds,
// what gets mirrored to the draft slot, and what publish sends to the
// record store.
type EventFields struct {
	EventName     string     `json:"eventName" validate:"required"`
	PhoneNumber   string     `json:"phoneNumber"`
	DateTime      *time.Time `json:"dateTime" validate:"required"`
	Location      string     `json:"location" validate:"required"`
	CostPerPerson float64    `json:"costPerPerson" validate:"gte=0"`
	Description   string     `json:"description"`
	// Capacity 0 means "no limit set".
	Capacity           int            `json:"capacity" validate:"gte=0"`
	FlyerImageID       *string        `json:"flyerImageId"`
	PageBackgroundID   *string        `json:"pageBackgroundId"`
	PageBackgroundType BackgroundType `json:"pageBackgroundType" validate:"omitempty,oneof=gradient image"`
}

// Event is a published event record.
type Event struct {
	ID string `json:"id"`
	EventFields
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultFields returns the field values of a fresh draft.
func DefaultFields() EventFields {
	bg := DefaultGradient
	return EventFields{
		PageBackgroundID:   &bg,
		PageBackgroundType: BackgroundGradient,
	}
}

// BackgroundClass returns the gradient token to render, or "" when the
// background is an uploaded image.
func (f EventFields) BackgroundClass() string {
	if f.PageBackgroundType == BackgroundImage {
		return ""
	}
	if f.PageBackgroundID == nil || *f.PageBackgroundID == "" {
		return DefaultGradient
	}
	return *f.PageBackgroundID
}

// Clone returns a copy that shares no pointers with f.
func (f EventFields) Clone() EventFields {
	out := f
	out.DateTime = clonePtr(f.DateTime)
	out.FlyerImageID = clonePtr(f.FlyerImageID)
	out.PageBackgroundID = clonePtr(f.PageBackgroundID)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr is a small helper for optional fields.
func Ptr[T any](v T) *T {
	return &v
}
