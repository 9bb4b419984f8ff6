// Package textio extracts paragraphs from plain text input. Paragraphs are
// the unit of work for the tokenizer: a boundary never crosses a paragraph,
// so each one can be processed independently.
package textio

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
)

// Separator selects how paragraph boundaries are recognized in the input.
type Separator int

const (
	// EmptyLines treats blank lines as paragraph boundaries.
	EmptyLines Separator = iota
	// SingleNewlines treats every non-empty line as its own paragraph.
	SingleNewlines
)

// String returns the wire name of the separator.
func (s Separator) String() string {
	switch s {
	case EmptyLines:
		return "empty_lines"
	case SingleNewlines:
		return "single_newlines"
	default:
		return "unknown"
	}
}

// ParseSeparator converts a wire name into a Separator.
func ParseSeparator(name string) (Separator, error) {
	switch name {
	case "empty_lines":
		return EmptyLines, nil
	case "single_newlines":
		return SingleNewlines, nil
	default:
		return EmptyLines, fmt.Errorf("unknown paragraph separator %q (valid: empty_lines, single_newlines)", name)
	}
}

// Paragraphs yields the paragraphs of r one at a time. With EmptyLines,
// consecutive non-blank lines form one paragraph; with SingleNewlines, each
// non-blank line does.
func Paragraphs(r io.Reader, sep Separator) iter.Seq[string] {
	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

		if sep == SingleNewlines {
			for scanner.Scan() {
				line := scanner.Text()
				if strings.TrimSpace(line) == "" {
					continue
				}
				if !yield(line) {
					return
				}
			}
			logScanErr(scanner)
			return
		}

		var lines []string
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				if len(lines) > 0 {
					if !yield(strings.Join(lines, "\n")) {
						return
					}
					lines = lines[:0]
				}
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			yield(strings.Join(lines, "\n"))
		}
		logScanErr(scanner)
	}
}

func logScanErr(scanner *bufio.Scanner) {
	if err := scanner.Err(); err != nil {
		slog.Error("Reading text input failed", "error", err)
	}
}
