package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/dmitrijs2005/letshang/internal/routing"
)

// PublishFailedMessage is what the user sees for any publish failure.
const PublishFailedMessage = "Failed to publish event. Please try again."

type GoLiveResult struct {
	models.PublishResult
	Link string
}

// GoLive validates the draft, publishes it and returns the share link.
// A freshly created event resets the draft so the next one starts clean;
// an update keeps the draft bound for further edits.
func GoLive(ctx context.Context, drafts *DraftService, origin string) (GoLiveResult, error) {
	if err := models.ValidateForPublish(drafts.Fields()); err != nil {
		return GoLiveResult{}, err
	}

	res, err := drafts.Publish(ctx)
	if err != nil {
		return GoLiveResult{}, fmt.Errorf("%s: %w", PublishFailedMessage, err)
	}
	if res.Mode == models.PublishCreated {
		drafts.Reset(ctx)
	}
	return GoLiveResult{PublishResult: res, Link: routing.ShareLink(origin, res.ID)}, nil
}

// RemoveFlyer deletes the draft's flyer image and detaches it.
func RemoveFlyer(ctx context.Context, drafts *DraftService, imgs *ImageService) error {
	f := drafts.Fields()
	if f.FlyerImageID == nil {
		return nil
	}
	if err := imgs.Delete(ctx, models.KeyspaceFlyer, *f.FlyerImageID); err != nil {
		return err
	}
	drafts.SetFlyerImage(ctx, nil)
	return nil
}

// FlyerURL resolves the draft's flyer, "" when there is none.
func FlyerURL(ctx context.Context, imgs *ImageService, f models.EventFields) (string, error) {
	if f.FlyerImageID == nil {
		return "", nil
	}
	return imgs.Resolve(ctx, models.KeyspaceFlyer, *f.FlyerImageID)
}

// BackgroundURL resolves an uploaded page background. Gradients have no URL.
func BackgroundURL(ctx context.Context, imgs *ImageService, f models.EventFields) (string, error) {
	if f.PageBackgroundType != models.BackgroundImage || f.PageBackgroundID == nil {
		return "", nil
	}
	return imgs.Resolve(ctx, models.KeyspaceBackground, *f.PageBackgroundID)
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
