package models

// DraftState is the coarse lifecycle position of the session draft.
type DraftState string

const (
	DraftEmpty     DraftState = "empty"
	DraftEditing   DraftState = "editing"
	DraftPublished DraftState = "published"
)

// Draft is the single in-progress event of a session.
type Draft struct {
	EventFields
	// BoundID is the published record this draft edits; nil before the
	// first publish.
	BoundID *string
	// ResetToken grows every time the draft is replaced wholesale.
	ResetToken uint64
}

// PublishMode tells whether publish created a record or updated one.
type PublishMode string

const (
	PublishCreated PublishMode = "created"
	PublishUpdated PublishMode = "updated"
)

type PublishResult struct {
	ID   string
	Mode PublishMode
}
