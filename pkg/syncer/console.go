package syncer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConsoleSource prompts for conflict decisions on a terminal. An empty
// answer means No for the current file only; it does not switch the
// sticky mode. A read failure (e.g. closed stdin) yields
// DecisionExhausted.
type ConsoleSource struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleSource returns a DecisionSource reading answers from in and
// writing prompts to out.
func NewConsoleSource(in io.Reader, out io.Writer) *ConsoleSource {
	return &ConsoleSource{in: bufio.NewReader(in), out: out}
}

// Decide implements DecisionSource.
func (c *ConsoleSource) Decide(relPath string) Decision {
	fmt.Fprintf(c.out, "%s exists. Overwrite? [y]es / [N]o / [a]ll / n[o]ne: ", relPath)

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return DecisionExhausted
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return DecisionYes
	case "a", "all":
		return DecisionAll
	case "o", "none":
		return DecisionNone
	default:
		// Empty or unrecognized answers skip this file only
		return DecisionNo
	}
}

// StaticSource always answers with the same decision. Used for the
// non-interactive --overwrite / --skip-existing modes and in tests.
type StaticSource struct {
	Answer Decision
}

// Decide implements DecisionSource.
func (s *StaticSource) Decide(string) Decision {
	return s.Answer
}
