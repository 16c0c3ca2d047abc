package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoLive_ValidationStopsPublish(t *testing.T) {
	db := openDB(t)
	events := newEventService(t, db)
	d, _ := newDraftService(t, db, events)
	ctx := context.Background()

	d.SetEventName(ctx, "Birthday")

	_, err := GoLive(ctx, d, "http://localhost:8080")
	require.ErrorIs(t, err, common.ErrValidationFault)
	assert.Contains(t, err.Error(), "Date and time are required")

	all, err := events.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGoLive_CreatedResetsDraft(t *testing.T) {
	db := openDB(t)
	events := newEventService(t, db)
	d, _ := newDraftService(t, db, events)
	ctx := context.Background()

	f := birthday()
	d.SetEventName(ctx, f.EventName)
	d.SetDateTime(ctx, f.DateTime)
	d.SetLocation(ctx, f.Location)

	res, err := GoLive(ctx, d, "http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, models.PublishCreated, res.Mode)
	assert.Equal(t, "http://localhost:8080/event/"+res.ID, res.Link)

	assert.Equal(t, models.DraftEmpty, d.State())
	assert.Nil(t, d.Snapshot().BoundID)

	// opening the link binds the draft; going live again updates
	ok, err := d.LoadByID(ctx, res.ID)
	require.NoError(t, err)
	require.True(t, ok)
	d.SetDescription(ctx, "BBQ")

	again, err := GoLive(ctx, d, "http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, models.PublishUpdated, again.Mode)
	assert.Equal(t, res.ID, again.ID)
	assert.Equal(t, models.DraftPublished, d.State())
}

func TestGoLive_PublishFailure(t *testing.T) {
	db := openDB(t)
	d, _ := newDraftService(t, db, failingStore{err: errors.New("backend down")})
	ctx := context.Background()

	f := birthday()
	d.SetEventName(ctx, f.EventName)
	d.SetDateTime(ctx, f.DateTime)
	d.SetLocation(ctx, f.Location)

	_, err := GoLive(ctx, d, "http://localhost:8080")
	require.ErrorIs(t, err, common.ErrPublishFault)
	assert.Contains(t, err.Error(), PublishFailedMessage)
	assert.Equal(t, "Birthday", d.Fields().EventName)
}

func TestRemoveFlyer(t *testing.T) {
	db := openDB(t)
	imgs, m := newImageService(t, db)
	d, _ := newDraftService(t, db, newEventService(t, db))
	ctx := context.Background()

	require.NoError(t, RemoveFlyer(ctx, d, imgs))

	id, err := imgs.Save(ctx, models.KeyspaceFlyer, pngBytes, "flyer.png")
	require.NoError(t, err)
	d.SetFlyerImage(ctx, &id)

	u, err := FlyerURL(ctx, imgs, d.Fields())
	require.NoError(t, err)
	require.NotEmpty(t, u)

	require.NoError(t, RemoveFlyer(ctx, d, imgs))
	assert.Nil(t, d.Fields().FlyerImageID)
	assert.Equal(t, []string{u}, m.revoked)

	u, err = imgs.Resolve(ctx, models.KeyspaceFlyer, id)
	require.NoError(t, err)
	assert.Empty(t, u)
}

func TestDetachFlyerKeepsBlob(t *testing.T) {
	db := openDB(t)
	imgs, _ := newImageService(t, db)
	d, _ := newDraftService(t, db, newEventService(t, db))
	ctx := context.Background()

	id, err := imgs.Save(ctx, models.KeyspaceFlyer, pngBytes, "flyer.png")
	require.NoError(t, err)
	d.SetFlyerImage(ctx, &id)
	d.SetFlyerImage(ctx, nil)

	u, err := imgs.Resolve(ctx, models.KeyspaceFlyer, id)
	require.NoError(t, err)
	assert.NotEmpty(t, u)
}

func TestBackgroundURL(t *testing.T) {
	db := openDB(t)
	imgs, _ := newImageService(t, db)
	ctx := context.Background()

	u, err := BackgroundURL(ctx, imgs, models.DefaultFields())
	require.NoError(t, err)
	assert.Empty(t, u, "gradients have no URL")

	id, err := imgs.Save(ctx, models.KeyspaceBackground, gifBytes, "bg.gif")
	require.NoError(t, err)

	f := models.DefaultFields()
	f.PageBackgroundID = &id
	f.PageBackgroundType = models.BackgroundImage
	u, err = BackgroundURL(ctx, imgs, f)
	require.NoError(t, err)
	assert.NotEmpty(t, u)
	assert.Empty(t, f.BackgroundClass())
}
