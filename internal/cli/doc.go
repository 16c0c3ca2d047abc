// Package cli provides the interactive letshang command line.
//
// The REPL edits the session draft field by field, attaches a flyer and a
// page background, and goes live to obtain a share link. On start it either
// opens the event named by the route argument (/event/{id}) or restores the
// unpublished draft left by a previous session.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
