package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"
)

// useColor decides whether to colorize error messages by the --color flag.
func useColor(mode string) (bool, error) {
	switch mode {
	case "auto":
		return isatty(), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	}
	return false, fmt.Errorf("invalid --color value: %q", mode)
}

// isatty reports whether the program is running in a terminal. If it is true,
// we can use ANSI color codes.
func isatty() bool {
	_, err := unix.IoctlGetWinsize(int(os.Stderr.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

var (
	rePos      = regexp.MustCompile(`(?m)^[^\s:]+:\d+:\d+:`)
	rePrevious = regexp.MustCompile(`(?m)^\t.+`)
)

// colorize highlights positions and dims indented notes such as "previous
// declaration at ..." in the message.
func colorize(message string) string {
	// Colors are forced because the caller already decided to colorize.
	posColor := color.New(color.Bold)
	posColor.EnableColor()
	previousColor := color.New(color.Faint)
	previousColor.EnableColor()

	m := []byte(message)
	m = rePos.ReplaceAllFunc(m, func(b []byte) []byte {
		return []byte(posColor.Sprint(string(b)))
	})
	m = rePrevious.ReplaceAllFunc(m, func(b []byte) []byte {
		return []byte(previousColor.Sprint(string(b)))
	})
	return string(m)
}
