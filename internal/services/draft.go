package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/dmitrijs2005/letshang/internal/repositories/metadata"
)

// DraftKey is the draft slot key in the metadata store.
const DraftKey = "lets-hang-current-draft"

// DraftService owns the session draft. Every setter mirrors the editable
// fields to the draft slot so an unpublished draft survives a restart.
type DraftService struct {
	store EventStore
	slot  metadata.Repository
	log   logging.Logger

	// publishing serialises Publish calls; mu guards the fields below.
	publishing sync.Mutex
	mu         sync.Mutex
	draft      models.Draft
	state      models.DraftState
	revision   uint64
}

func NewDraftService(store EventStore, slot metadata.Repository, log logging.Logger) *DraftService {
	return &DraftService{
		store: store,
		slot:  slot,
		log:   log.With("component", "draft"),
		draft: models.Draft{EventFields: models.DefaultFields()},
		state: models.DraftEmpty,
	}
}

// Snapshot returns a copy of the current draft.
func (s *DraftService) Snapshot() models.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	d.EventFields = d.EventFields.Clone()
	if d.BoundID != nil {
		d.BoundID = models.Ptr(*d.BoundID)
	}
	return d
}

// Fields returns a copy of the editable fields.
func (s *DraftService) Fields() models.EventFields {
	return s.Snapshot().EventFields
}

func (s *DraftService) State() models.DraftState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *DraftService) mutate(ctx context.Context, fn func(f *models.EventFields)) {
	s.mu.Lock()
	fn(&s.draft.EventFields)
	s.state = models.DraftEditing
	s.revision++
	fields := s.draft.EventFields.Clone()
	s.mu.Unlock()

	s.mirror(ctx, fields)
}

// mirror overwrites the draft slot. Failures are logged and swallowed.
func (s *DraftService) mirror(ctx context.Context, fields models.EventFields) {
	data, err := json.Marshal(fields)
	if err == nil {
		err = s.slot.Set(ctx, DraftKey, data)
	}
	if err != nil {
		s.log.Warn(ctx, "draft mirror failed", "err", err)
	}
}

func (s *DraftService) clearSlot(ctx context.Context) {
	if err := s.slot.Delete(ctx, DraftKey); err != nil {
		s.log.Warn(ctx, "draft slot clear failed", "err", err)
	}
}

func (s *DraftService) SetEventName(ctx context.Context, v string) {
	s.mutate(ctx, func(f *models.EventFields) { f.EventName = v })
}

func (s *DraftService) SetPhoneNumber(ctx context.Context, v string) {
	s.mutate(ctx, func(f *models.EventFields) { f.PhoneNumber = v })
}

func (s *DraftService) SetDateTime(ctx context.Context, v *time.Time) {
	if v != nil {
		v = models.Ptr(*v)
	}
	s.mutate(ctx, func(f *models.EventFields) { f.DateTime = v })
}

func (s *DraftService) SetLocation(ctx context.Context, v string) {
	s.mutate(ctx, func(f *models.EventFields) { f.Location = v })
}

func (s *DraftService) SetCostPerPerson(ctx context.Context, v float64) {
	s.mutate(ctx, func(f *models.EventFields) { f.CostPerPerson = v })
}

func (s *DraftService) SetDescription(ctx context.Context, v string) {
	s.mutate(ctx, func(f *models.EventFields) { f.Description = v })
}

func (s *DraftService) SetCapacity(ctx context.Context, v int) {
	s.mutate(ctx, func(f *models.EventFields) { f.Capacity = v })
}

// SetFlyerImage points the draft at a flyer blob. nil detaches the flyer
// but leaves the blob itself in place.
func (s *DraftService) SetFlyerImage(ctx context.Context, id *string) {
	if id != nil {
		id = models.Ptr(*id)
	}
	s.mutate(ctx, func(f *models.EventFields) { f.FlyerImageID = id })
}

func (s *DraftService) SetBackground(ctx context.Context, id *string, kind models.BackgroundType) {
	if id != nil {
		id = models.Ptr(*id)
	}
	s.mutate(ctx, func(f *models.EventFields) {
		f.PageBackgroundID = id
		f.PageBackgroundType = kind
	})
}

// Publish sends the draft to the record store. A bound draft updates its
// record; an unbound one creates a record and becomes bound to it. On
// failure the draft is left exactly as it was.
func (s *DraftService) Publish(ctx context.Context) (models.PublishResult, error) {
	s.publishing.Lock()
	defer s.publishing.Unlock()

	s.mu.Lock()
	fields := s.draft.EventFields.Clone()
	var bound string
	if s.draft.BoundID != nil {
		bound = *s.draft.BoundID
	}
	token, rev := s.draft.ResetToken, s.revision
	s.mu.Unlock()

	var res models.PublishResult
	if bound != "" {
		if err := s.store.Update(ctx, bound, models.FullPatch(fields)); err != nil {
			s.log.Error(ctx, "publish update failed", "id", bound, "err", err)
			return models.PublishResult{}, fmt.Errorf("%w: %w", common.ErrPublishFault, err)
		}
		res = models.PublishResult{ID: bound, Mode: models.PublishUpdated}
	} else {
		id, err := s.store.Create(ctx, fields)
		if err != nil {
			s.log.Error(ctx, "publish create failed", "err", err)
			return models.PublishResult{}, fmt.Errorf("%w: %w", common.ErrPublishFault, err)
		}
		res = models.PublishResult{ID: id, Mode: models.PublishCreated}
	}

	s.mu.Lock()
	// a reset while the call was in flight wins over the publish
	if s.draft.ResetToken != token {
		s.mu.Unlock()
		return res, nil
	}
	s.draft.BoundID = models.Ptr(res.ID)
	unchanged := s.revision == rev
	if unchanged {
		s.state = models.DraftPublished
	}
	s.mu.Unlock()

	if unchanged {
		s.clearSlot(ctx)
	}
	s.log.Info(ctx, "draft published", "id", res.ID, "mode", res.Mode)
	return res, nil
}

// LoadByID replaces the draft with a published record and binds to it.
// It reports false, leaving the draft alone, when the record is absent.
func (s *DraftService) LoadByID(ctx context.Context, id string) (bool, error) {
	e, err := s.store.Read(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	s.mu.Lock()
	s.draft.EventFields = e.EventFields.Clone()
	s.draft.BoundID = models.Ptr(id)
	s.draft.ResetToken++
	s.state = models.DraftEditing
	s.revision++
	s.mu.Unlock()
	return true, nil
}

// Reset restores defaults, unbinds the draft and clears the draft slot.
func (s *DraftService) Reset(ctx context.Context) {
	s.mu.Lock()
	s.draft = models.Draft{
		EventFields: models.DefaultFields(),
		ResetToken:  s.draft.ResetToken + 1,
	}
	s.state = models.DraftEmpty
	s.revision++
	s.mu.Unlock()

	s.clearSlot(ctx)
}

// LoadDraftIfPresent restores an unpublished draft from the draft slot.
// The restored draft is unbound. It reports whether a draft was found.
func (s *DraftService) LoadDraftIfPresent(ctx context.Context) bool {
	data, err := s.slot.Get(ctx, DraftKey)
	if err != nil {
		s.log.Warn(ctx, "draft slot read failed", "err", err)
		return false
	}
	if data == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fields := s.draft.EventFields.Clone()
	if err := json.Unmarshal(data, &fields); err != nil {
		s.log.Warn(ctx, "draft slot is unreadable", "err", err)
		return false
	}
	s.draft.EventFields = fields
	s.draft.BoundID = nil
	s.draft.ResetToken++
	s.state = models.DraftEditing
	s.revision++
	return true
}
