package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pthm-cable/glow/strip"
)

// applyCommand updates c from one input line: a letter followed by an
// integer. m and p select effect and palette; c and s set control and
// smooth as 0..255; r g b set the back channels and R G B the fore.
func applyCommand(line string, c *strip.Controls) error {
	line = strings.TrimSpace(line)
	if len(line) < 2 {
		return fmt.Errorf("command %q: expected a letter and a number", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
	if err != nil {
		return fmt.Errorf("command %q: %w", line, err)
	}
	unit := float32(min(max(n, 0), 255)) / 255

	switch line[0] {
	case 'm':
		c.Effect = n
	case 'p':
		c.Palette = n
	case 'c':
		c.Control = unit
	case 's':
		c.Smooth = unit
	case 'r':
		c.Back.R = float64(unit)
	case 'g':
		c.Back.G = float64(unit)
	case 'b':
		c.Back.B = float64(unit)
	case 'R':
		c.Fore.R = float64(unit)
	case 'G':
		c.Fore.G = float64(unit)
	case 'B':
		c.Fore.B = float64(unit)
	default:
		return fmt.Errorf("command %q: unknown letter %q", line, line[0])
	}
	return nil
}
