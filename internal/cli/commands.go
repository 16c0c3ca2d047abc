package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/dmitrijs2005/letshang/internal/routing"
	"github.com/dmitrijs2005/letshang/internal/services"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDateTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognised date %q, use YYYY-MM-DD HH:MM", s)
}

// Set updates one draft field. Without a value the user is prompted.
func (a *App) Set(ctx context.Context, field, value string, hasValue bool) error {
	field = strings.ToLower(field)
	if !hasValue {
		var err error
		if field == "description" || field == "desc" {
			value, err = GetMultiline(a.reader, "Description:", a.out)
		} else {
			value, err = GetSimpleText(a.reader, "Value for "+field+":", a.out)
		}
		if err != nil {
			return err
		}
	}

	switch field {
	case "name":
		a.drafts.SetEventName(ctx, value)
	case "phone":
		if err := models.ValidatePhone(value); err != nil {
			a.println("Warning: invalid phone number format")
		}
		a.drafts.SetPhoneNumber(ctx, value)
	case "date", "datetime":
		t, err := parseDateTime(value)
		if err != nil {
			return err
		}
		a.drafts.SetDateTime(ctx, t)
	case "location":
		a.drafts.SetLocation(ctx, value)
	case "cost":
		v := 0.0
		if value != "" {
			f, err := strconv.ParseFloat(value, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("cost must be a non-negative number")
			}
			v = f
		}
		a.drafts.SetCostPerPerson(ctx, v)
	case "description", "desc":
		a.drafts.SetDescription(ctx, value)
	case "capacity":
		v := 0
		if value != "" {
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("capacity must be a non-negative whole number")
			}
			v = n
		}
		a.drafts.SetCapacity(ctx, v)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func (a *App) upload(ctx context.Context, keyspace models.Keyspace, path string) (string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	id, err := a.images.Save(ctx, keyspace, payload, filepath.Base(path))
	if errors.Is(err, common.ErrUnsupportedImage) {
		return "", fmt.Errorf("%s is not a PNG, JPG, GIF or WEBP image", filepath.Base(path))
	}
	return id, err
}

func (a *App) Flyer(ctx context.Context, path string) error {
	id, err := a.upload(ctx, models.KeyspaceFlyer, path)
	if err != nil {
		return err
	}
	a.drafts.SetFlyerImage(ctx, &id)

	u, err := a.images.Resolve(ctx, models.KeyspaceFlyer, id)
	if err != nil {
		return err
	}
	a.println("Flyer attached:", u)
	return nil
}

func (a *App) NoFlyer(ctx context.Context) error {
	if err := services.RemoveFlyer(ctx, a.drafts, a.images); err != nil {
		return err
	}
	a.println("Flyer removed.")
	return nil
}

// Background picks a preset gradient by token or uploads an image file.
func (a *App) Background(ctx context.Context, arg string) error {
	if models.IsGradient(arg) {
		a.drafts.SetBackground(ctx, &arg, models.BackgroundGradient)
		a.println("Background:", arg)
		return nil
	}

	id, err := a.upload(ctx, models.KeyspaceBackground, arg)
	if err != nil {
		return err
	}
	a.drafts.SetBackground(ctx, &id, models.BackgroundImage)

	u, err := a.images.Resolve(ctx, models.KeyspaceBackground, id)
	if err != nil {
		return err
	}
	a.println("Background image:", u)
	return nil
}

func (a *App) Show(ctx context.Context) error {
	d := a.drafts.Snapshot()
	f := d.EventFields

	a.printf("State:        %s\n", a.drafts.State())
	if d.BoundID != nil {
		a.printf("Editing:      %s\n", routing.ShareLink(a.origin, *d.BoundID))
	}
	a.printf("Name:         %s\n", f.EventName)
	a.printf("Phone:        %s\n", f.PhoneNumber)
	if f.DateTime != nil {
		a.printf("Date:         %s\n", f.DateTime.Local().Format("Mon, 02 Jan 2006 15:04"))
	} else {
		a.printf("Date:         \n")
	}
	a.printf("Location:     %s\n", f.Location)
	if f.CostPerPerson > 0 {
		a.printf("Cost/person:  %.2f\n", f.CostPerPerson)
	} else {
		a.printf("Cost/person:  \n")
	}
	if f.Capacity > 0 {
		a.printf("Capacity:     %d\n", f.Capacity)
	} else {
		a.printf("Capacity:     \n")
	}
	a.printf("Description:  %s\n", f.Description)

	flyer, err := services.FlyerURL(ctx, a.images, f)
	if err != nil {
		return err
	}
	a.printf("Flyer:        %s\n", flyer)

	if class := f.BackgroundClass(); class != "" {
		a.printf("Background:   %s\n", class)
		return nil
	}
	bg, err := services.BackgroundURL(ctx, a.images, f)
	if err != nil {
		return err
	}
	a.printf("Background:   %s\n", bg)
	return nil
}

func (a *App) Publish(ctx context.Context) error {
	a.println("Publishing...")
	res, err := services.GoLive(ctx, a.drafts, a.origin)
	switch {
	case errors.Is(err, common.ErrValidationFault):
		a.println("Validation Error:", strings.TrimPrefix(err.Error(), common.ErrValidationFault.Error()+": "))
		return nil
	case err != nil:
		a.logger.Error(ctx, "publish failed", "err", err)
		a.println(services.PublishFailedMessage)
		return nil
	}

	if res.Mode == models.PublishUpdated {
		a.println("Event Updated! Share the link below with your guests.")
	} else {
		a.println("Event is Live! Share the link below with your guests.")
	}
	a.println(res.Link)
	return nil
}

// Open loads a published event given its id, path or share link.
func (a *App) Open(ctx context.Context, target string) error {
	route := target
	if !strings.Contains(target, "/") {
		route = "/event/" + target
	}
	out, err := routing.Route(ctx, a.drafts, route)
	if err != nil {
		return err
	}
	switch {
	case out.Loaded:
		a.println("Editing event", out.EventID)
	case out.EventID != "":
		a.println("Event not found:", out.EventID)
	default:
		a.println("Started a new draft.")
	}
	return nil
}

func (a *App) List(ctx context.Context) error {
	all, err := a.events.List(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		a.println("No published events.")
		return nil
	}
	for _, e := range all {
		when := ""
		if e.DateTime != nil {
			when = e.DateTime.Local().Format("2006-01-02 15:04")
		}
		a.printf("%s  %-24s %-16s %s\n", e.ID, e.EventName, when, e.Location)
	}
	return nil
}

// Delete removes a published event. A draft bound to it starts over.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.events.Delete(ctx, id); err != nil {
		return err
	}
	if d := a.drafts.Snapshot(); d.BoundID != nil && *d.BoundID == id {
		a.drafts.Reset(ctx)
	}
	a.println("Deleted", id)
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	a.drafts.Reset(ctx)
	a.println("Started a new draft.")
	return nil
}
