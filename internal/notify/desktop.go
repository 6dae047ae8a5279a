// Package notify provides the notification and badge hosts the tracker talks to.
package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/sandeepkv93/taskpad/internal/overdue"
)

var ErrUnsupported = errors.New("notify: desktop notifications unsupported")

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Desktop sends notifications through notify-send on Linux and osascript on
// macOS.
type Desktop struct {
	goos     string
	run      Runner
	lookPath func(string) (string, error)
}

func NewDesktop() *Desktop {
	return &Desktop{goos: runtime.GOOS, run: execRunner, lookPath: exec.LookPath}
}

func (d *Desktop) command() string {
	switch d.goos {
	case "linux":
		return "notify-send"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}

// Supported reports whether the platform has a notification command on PATH.
func (d *Desktop) Supported() bool {
	name := d.command()
	if name == "" {
		return false
	}
	_, err := d.lookPath(name)
	return err == nil
}

func (d *Desktop) Notify(ctx context.Context, n overdue.Notification) error {
	switch d.goos {
	case "linux":
		return d.run(ctx, "notify-send", "--app-name=taskpad", "--hint=string:x-canonical-private-synchronous:"+n.Tag, n.Title, n.Body)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return d.run(ctx, "osascript", "-e", script)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, d.goos)
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
