package metadata

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/letshang/internal/database"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*SQLRepository, *database.DB) {
	t.Helper()
	db, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLRepository(db.DB, db.Dialect), db
}

func TestSetAndGet(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "lets-hang-current-draft", []byte(`{"eventName":"Birthday"}`)))

	v, err := r.Get(ctx, "lets-hang-current-draft")
	require.NoError(t, err)
	require.JSONEq(t, `{"eventName":"Birthday"}`, string(v))
}

func TestGet_Missing_ReturnsNilNil(t *testing.T) {
	r, _ := newRepo(t)

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_OverwritesValue(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Set(ctx, "y", []byte{0x02}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = r.Get(ctx, "y")
	require.NoError(t, err)
	require.Equal(t, []byte{0x02}, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestClosedDB_ErrorsAreWrapped(t *testing.T) {
	r, db := newRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set metadata[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")
}
