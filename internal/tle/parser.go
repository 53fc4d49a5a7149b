package tle

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/turkmvc/satmad/internal/satrec"
)

// Lines encodes the element set as its two fixed-column lines.
func (t *TLE) Lines() (line1, line2 string) {
	return t.rec.Encode()
}

// String returns the three-line form: the name line, when the name is not
// blank, followed by the two element lines.
func (t *TLE) String() string {
	l1, l2 := t.Lines()
	if strings.TrimSpace(t.name) == "" {
		return l1 + "\n" + l2
	}
	return t.name + "\n" + l1 + "\n" + l2
}

// Parse reads a single element set in two- or three-line form, the inverse
// of String. Blank lines are ignored. A name line may carry the "0 " prefix
// used by three-line catalog files. The name line, if any, is applied
// before opts, so an explicit WithName wins.
func Parse(text string, opts ...Option) (*TLE, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading element set: %w", err)
	}

	switch len(lines) {
	case 2:
		return FromLines(lines[0], lines[1], opts...)
	case 3:
		name := strings.TrimSpace(strings.TrimPrefix(lines[0], "0 "))
		return FromLines(lines[1], lines[2], append([]Option{WithName(name)}, opts...)...)
	default:
		return nil, &satrec.FormatError{
			Field:  "block",
			Reason: fmt.Sprintf("expected 2 or 3 non-blank lines, got %d", len(lines)),
		}
	}
}
