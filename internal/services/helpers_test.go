package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/letshang/internal/database"
	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/dmitrijs2005/letshang/internal/repositories/images"
	"github.com/dmitrijs2005/letshang/internal/repositories/metadata"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR fake png body")
	gifBytes = []byte("GIF89a fake gif body")
)

func openDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newEventService(t *testing.T, db *database.DB) *EventService {
	t.Helper()
	return NewEventService(db.DB, db.Dialect, Latency{}, logging.Discard())
}

type recordingMinter struct {
	minted  int
	revoked []string
}

func (m *recordingMinter) Mint(_ context.Context, keyspace models.Keyspace, id string) (string, error) {
	m.minted++
	return fmt.Sprintf("mem://%s/%s#%d", keyspace, id, m.minted), nil
}

func (m *recordingMinter) Revoke(u string) { m.revoked = append(m.revoked, u) }

func newImageService(t *testing.T, db *database.DB) (*ImageService, *recordingMinter) {
	t.Helper()
	flyers, err := images.NewSQLRepository(db.DB, db.Dialect, models.KeyspaceFlyer)
	require.NoError(t, err)
	backgrounds, err := images.NewSQLRepository(db.DB, db.Dialect, models.KeyspaceBackground)
	require.NoError(t, err)
	m := &recordingMinter{}
	return NewImageService(flyers, backgrounds, m, logging.Discard()), m
}

func newDraftService(t *testing.T, db *database.DB, store EventStore) (*DraftService, *metadata.SQLRepository) {
	t.Helper()
	slot := metadata.NewSQLRepository(db.DB, db.Dialect)
	return NewDraftService(store, slot, logging.Discard()), slot
}

// brokenSlot fails every write.
type brokenSlot struct{ metadata.Repository }

func (brokenSlot) Set(context.Context, string, []byte) error { return errors.New("slot is read-only") }
func (brokenSlot) Delete(context.Context, string) error      { return errors.New("slot is read-only") }
func (brokenSlot) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("slot is gone")
}

// failingStore fails every call with err.
type failingStore struct{ err error }

func (f failingStore) Create(context.Context, models.EventFields) (string, error) { return "", f.err }
func (f failingStore) Read(context.Context, string) (*models.Event, error)        { return nil, f.err }
func (f failingStore) Update(context.Context, string, models.EventPatch) error    { return f.err }
