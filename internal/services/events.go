package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/letshang/internal/dbx"
	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/dmitrijs2005/letshang/internal/repositories/events"
	"github.com/google/uuid"
)

// Latency is the simulated round trip of each record store call. The
// defaults live in config.Config.
type Latency struct {
	Create time.Duration
	Read   time.Duration
	Update time.Duration
	Delete time.Duration
	List   time.Duration
}

// EventStore is the record store as seen by the draft controller.
type EventStore interface {
	Create(ctx context.Context, fields models.EventFields) (string, error)
	Read(ctx context.Context, id string) (*models.Event, error)
	Update(ctx context.Context, id string, patch models.EventPatch) error
}

// EventService is the record store. Each call waits for its configured
// latency first; a call cancelled during that wait writes nothing.
type EventService struct {
	db      *sql.DB
	dialect dbx.Dialect
	latency Latency
	log     logging.Logger
	now     func() time.Time
	locks   *keyedMutex
}

func NewEventService(db *sql.DB, dialect dbx.Dialect, latency Latency, log logging.Logger) *EventService {
	return &EventService{
		db:      db,
		dialect: dialect,
		latency: latency,
		log:     log.With("component", "events"),
		now:     time.Now,
		locks:   newKeyedMutex(),
	}
}

func (s *EventService) repo(db dbx.DBTX) events.Repository {
	return events.NewSQLRepository(db, s.dialect)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Create persists fields as a new record and returns its id.
func (s *EventService) Create(ctx context.Context, fields models.EventFields) (string, error) {
	if err := wait(ctx, s.latency.Create); err != nil {
		return "", err
	}
	ctx = context.WithoutCancel(ctx)

	e := &models.Event{
		ID:          uuid.NewString(),
		EventFields: fields.Clone(),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo(s.db).Insert(ctx, e); err != nil {
		s.log.Error(ctx, "event create failed", "err", err)
		return "", storageFault("create event", err)
	}
	s.log.Info(ctx, "event created", "id", e.ID)
	return e.ID, nil
}

// Read returns the record or common.ErrNotFound.
func (s *EventService) Read(ctx context.Context, id string) (*models.Event, error) {
	if err := wait(ctx, s.latency.Read); err != nil {
		return nil, err
	}
	e, err := s.repo(s.db).Get(ctx, id)
	if err != nil {
		return nil, storageFault("read event", err)
	}
	return e, nil
}

// Update overwrites the fields present in patch. It never creates a record.
func (s *EventService) Update(ctx context.Context, id string, patch models.EventPatch) error {
	if err := wait(ctx, s.latency.Update); err != nil {
		return err
	}
	ctx = context.WithoutCancel(ctx)

	unlock := s.locks.Lock(id)
	defer unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		e, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(&e.EventFields)
		return r.Replace(ctx, e)
	})
	if err != nil {
		return storageFault("update event", err)
	}
	s.log.Info(ctx, "event updated", "id", id)
	return nil
}

// Delete removes the record; a missing id is a no-op.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := wait(ctx, s.latency.Delete); err != nil {
		return err
	}
	ctx = context.WithoutCancel(ctx)

	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.repo(s.db).Delete(ctx, id); err != nil {
		return storageFault("delete event", err)
	}
	return nil
}

// List returns every record, in no particular order.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	if err := wait(ctx, s.latency.List); err != nil {
		return nil, err
	}
	all, err := s.repo(s.db).List(ctx)
	if err != nil {
		return nil, storageFault("list events", err)
	}
	return all, nil
}
