package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"
)

// isatty reports whether the program is running in a terminal. If it is true,
// we can use ANSI color codes.
func isatty() bool {
	_, err := unix.IoctlGetWinsize(int(os.Stderr.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

func useColor(mode string) (bool, error) {
	switch mode {
	case "auto":
		return isatty(), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	}
	return false, fmt.Errorf("invalid color value: %s", mode)
}

var (
	reTab  = regexp.MustCompile(`(?m)^\t.+`)
	reFail = regexp.MustCompile(`^\tprevious .+`)

	dimColor  = newColor(color.Faint)
	noteColor = newColor(color.FgYellow)
)

func newColor(attr color.Attribute) *color.Color {
	c := color.New(attr)
	c.EnableColor()
	return c
}

// colorize adds ANSI color codes to the message. Indented lines are details of
// the line above, so they are dimmed. References to previous declarations are
// highlighted.
func colorize(message string) string {
	return reTab.ReplaceAllStringFunc(message, func(s string) string {
		if reFail.MatchString(s) {
			return noteColor.Sprint(s)
		}
		return dimColor.Sprint(s)
	})
}
