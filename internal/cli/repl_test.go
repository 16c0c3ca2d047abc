package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	err   error
}

func (f *fakeExec) record(s string) error {
	f.calls = append(f.calls, s)
	return f.err
}

func (f *fakeExec) Show(ctx context.Context) error { return f.record("show") }
func (f *fakeExec) Set(ctx context.Context, field, value string, hasValue bool) error {
	return f.record(fmt.Sprintf("set %s=%q %v", field, value, hasValue))
}
func (f *fakeExec) Flyer(ctx context.Context, path string) error { return f.record("flyer " + path) }
func (f *fakeExec) NoFlyer(ctx context.Context) error             { return f.record("noflyer") }
func (f *fakeExec) Background(ctx context.Context, arg string) error {
	return f.record("background " + arg)
}
func (f *fakeExec) Publish(ctx context.Context) error             { return f.record("publish") }
func (f *fakeExec) Open(ctx context.Context, target string) error { return f.record("open " + target) }
func (f *fakeExec) List(ctx context.Context) error                { return f.record("list") }
func (f *fakeExec) Delete(ctx context.Context, id string) error   { return f.record("delete " + id) }
func (f *fakeExec) Reset(ctx context.Context) error               { return f.record("reset") }

// notTerminal makes the REPL behave as if input were piped.
func notTerminal(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	notTerminal(t)
	var out bytes.Buffer

	input := strings.NewReader(strings.Join([]string{
		"help",
		"set name Birthday party",
		"set date",
		"flyer /tmp/my flyer.png",
		"noflyer",
		"bg gradient-blue-teal",
		"gradients",
		"",
		"publish",
		"open /event/abc",
		"l",
		"delete abc",
		"reset",
		"show",
		"foobar",
		"exit",
		"show",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(empty)" }, bufio.NewScanner(input), &out)

	assert.Equal(t, []string{
		`set name="Birthday party" true`,
		`set date="" false`,
		"flyer /tmp/my flyer.png",
		"noflyer",
		"background gradient-blue-teal",
		"publish",
		"open /event/abc",
		"list",
		"delete abc",
		"reset",
		"show",
	}, exec.calls)

	joined := out.String()
	assert.Contains(t, joined, "Available commands")
	assert.Contains(t, joined, "gradient-warm-sunset")
	assert.Contains(t, joined, "Unknown command: foobar")
	assert.Contains(t, joined, "Bye!")
}

func TestRunREPL_UsageAndErrors(t *testing.T) {
	notTerminal(t)
	var out bytes.Buffer

	input := strings.NewReader("set\nflyer\nbackground\nopen\ndelete\nshow\n")
	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input), &out)

	assert.Equal(t, []string{"show"}, exec.calls)
	joined := out.String()
	assert.Contains(t, joined, "Usage: set <field> [value]")
	assert.Contains(t, joined, "Usage: delete <id>")
	assert.Contains(t, joined, "Error: boom")
}

func TestRunREPL_PromptOnlyOnTerminal(t *testing.T) {
	notTerminal(t)
	isTerminal = func() bool { return true }
	var out bytes.Buffer

	runREPL(context.Background(), &fakeExec{}, func() string { return "(editing)" }, bufio.NewScanner(strings.NewReader("quit\n")), &out)
	assert.True(t, strings.HasPrefix(out.String(), "letshang (editing)> \n"))
}
