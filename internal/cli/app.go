package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/dmitrijs2005/letshang/internal/routing"
	"github.com/dmitrijs2005/letshang/internal/services"
)

type App struct {
	drafts *services.DraftService
	events *services.EventService
	images *services.ImageService
	origin string
	logger logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(drafts *services.DraftService, events *services.EventService, images *services.ImageService,
	origin string, l logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		drafts: drafts,
		events: events,
		images: images,
		origin: origin,
		logger: l.With("module", "cli"),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Start positions the session: an explicit route is followed, otherwise an
// unpublished draft from an earlier run is restored.
func (a *App) Start(ctx context.Context, route string) error {
	if route == "" {
		if a.drafts.LoadDraftIfPresent(ctx) {
			a.println("Restored your unpublished draft.")
		}
		return nil
	}

	out, err := routing.Route(ctx, a.drafts, route)
	if err != nil {
		return err
	}
	if out.EventID != "" && !out.Loaded {
		a.println("Event not found:", out.EventID)
	}
	return nil
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to Let's Hang (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(lineReader{a.reader}), a.out)
}

// lineReader hands out at most one line per Read, so a Scanner on top of it
// never buffers input that a prompt is about to read.
type lineReader struct {
	r *bufio.Reader
}

func (l lineReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := l.r.ReadByte()
		if err != nil {
			return n, err
		}
		p[n] = b
		n++
		if b == '\n' {
			break
		}
	}
	return n, nil
}

func (a *App) status() string {
	d := a.drafts.Snapshot()
	s := string(a.drafts.State())
	if d.BoundID != nil {
		s += " " + shortID(*d.BoundID)
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printGradients(w io.Writer) {
	for _, g := range models.Gradients {
		fmt.Fprintf(w, "  %-22s %s\n", g.ID, g.Name)
	}
}
