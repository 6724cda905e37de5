// Package editor opens item files in the user's editor and copies resolved
// paths to the system clipboard.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"

	"locus/internal/ports"
)

var fallbackEditors = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates an opener reading $EDITOR and $VISUAL from the process
func NewOpener() *Opener {
	return &Opener{getenv: os.Getenv, lookPath: exec.LookPath}
}

// OpenFile opens path in the editor and waits for it to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited: %w", err)
	}
	return nil
}

// Command builds the editor invocation for path. $EDITOR may carry
// arguments, as in "code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.editorArgv()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}
	args := append(argv[1:], path)
	return exec.Command(argv[0], args...), nil
}

func (o *Opener) editorArgv() []string {
	for _, name := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(o.getenv(name)); len(fields) > 0 {
			return fields
		}
	}
	for _, name := range fallbackEditors {
		if path, err := o.lookPath(name); err == nil {
			return []string{path}
		}
	}
	return nil
}

// Clipboard implements ports.Clipboard on the system clipboard
type Clipboard struct{}

var _ ports.Clipboard = Clipboard{}

// WriteAll replaces the clipboard contents with text
func (Clipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}
