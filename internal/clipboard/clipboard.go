// Package clipboard copies text to the system clipboard using whichever
// platform tool is available.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool can be found.
var ErrUnavailable = errors.New("no clipboard tool available")

// candidates lists the tools to try per platform, in order.
func candidates() [][]string {
	switch runtime.GOOS {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		return [][]string{{"clip"}}
	default:
		return [][]string{
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
			{"wl-copy"},
		}
	}
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	for _, c := range candidates() {
		if _, err := exec.LookPath(c[0]); err != nil {
			continue
		}
		cmd := exec.Command(c[0], c[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			return err
		}
		return nil
	}
	return ErrUnavailable
}

// Available reports whether a clipboard tool exists on this system.
func Available() bool {
	for _, c := range candidates() {
		if _, err := exec.LookPath(c[0]); err == nil {
			return true
		}
	}
	return false
}
