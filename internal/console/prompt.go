package console

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ehr/ward/internal/domain/ward"
)

// Prompter reads line-oriented answers. Every method returns io.EOF once
// input is exhausted.
type Prompter struct {
	in *bufio.Reader
	p  *Printer
}

func NewPrompter(in io.Reader, p *Printer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), p: p}
}

func (pr *Prompter) readLine() (string, error) {
	line, err := pr.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Line asks once and returns the raw answer without its line ending.
func (pr *Prompter) Line(prompt string) (string, error) {
	pr.p.Prompt(prompt)
	return pr.readLine()
}

// Required asks until a non-blank answer is given.
func (pr *Prompter) Required(prompt string) (string, error) {
	for {
		s, err := pr.Line(prompt)
		if err != nil {
			return "", err
		}
		if s = strings.TrimSpace(s); s != "" {
			return s, nil
		}
	}
}

// Int asks until the answer parses as an integer.
func (pr *Prompter) Int(prompt string) (int, error) {
	return pr.IntAtLeast(prompt, math.MinInt)
}

// IntAtLeast asks until the answer is an integer no smaller than floor.
func (pr *Prompter) IntAtLeast(prompt string, floor int) (int, error) {
	for {
		s, err := pr.Line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < floor {
			pr.p.InvalidNumber()
			continue
		}
		return n, nil
	}
}

// Condition asks until the answer is Critical or Stable.
func (pr *Prompter) Condition(prompt string) (ward.Condition, error) {
	for {
		s, err := pr.Line(prompt)
		if err != nil {
			return "", err
		}
		c, err := ward.ParseCondition(s)
		if err != nil {
			pr.p.InvalidCondition()
			continue
		}
		return c, nil
	}
}
