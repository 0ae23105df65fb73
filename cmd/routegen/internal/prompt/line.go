package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line is a line oriented Prompter for pipes and dumb terminals.
// End of input counts as a cancellation.
type Line struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLine creates a Line prompter reading from in and writing to out.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Text prompts for text input
func (p *Line) Text(ctx context.Context, q TextPrompt) (string, error) {
	for {
		if q.Default != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", q.Title, q.Default)
		} else {
			fmt.Fprintf(p.out, "%s: ", q.Title)
		}

		input, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if input == "" {
			input = q.Default
		}

		if q.Validate != nil {
			if err := q.Validate(input); err != nil {
				fmt.Fprintf(p.out, "  ✗ %v\n", err)
				continue
			}
		}
		return input, nil
	}
}

// Confirm prompts for yes/no confirmation
func (p *Line) Confirm(ctx context.Context, q ConfirmPrompt) (bool, error) {
	defaultStr := "y/N"
	if q.Default {
		defaultStr = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s [%s]: ", q.Title, defaultStr)

		input, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(input) {
		case "":
			return q.Default, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "  ✗ Please answer y or n")
	}
}

// Select prompts for selection from options, by number, label or value.
func (p *Line) Select(ctx context.Context, q SelectPrompt) (string, error) {
	if len(q.Choices) == 0 {
		return "", fmt.Errorf("select %q: no choices", q.Title)
	}
	defaultIndex := q.defaultIndex()

	for {
		fmt.Fprintln(p.out, q.Title)
		for i, c := range q.Choices {
			if i == defaultIndex {
				fmt.Fprintf(p.out, "  > %d) %s (default)\n", i+1, c.Label)
			} else {
				fmt.Fprintf(p.out, "    %d) %s\n", i+1, c.Label)
			}
		}
		fmt.Fprintf(p.out, "Enter choice [%d]: ", defaultIndex+1)

		input, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if input == "" {
			return q.Choices[defaultIndex].Value, nil
		}

		if n, err := strconv.Atoi(input); err == nil {
			if n >= 1 && n <= len(q.Choices) {
				return q.Choices[n-1].Value, nil
			}
		}

		for _, c := range q.Choices {
			if strings.EqualFold(c.Value, input) || strings.EqualFold(c.Label, input) {
				return c.Value, nil
			}
		}

		fmt.Fprintln(p.out, "  ✗ Invalid choice, try again.")
	}
}

// readLine waits for one line of input or for ctx to end.
func (p *Line) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		line, err := p.reader.ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ErrCancelled
	case r := <-ch:
		if r.err != nil {
			if !errors.Is(r.err, io.EOF) {
				return "", fmt.Errorf("read input: %w", r.err)
			}
			if r.line == "" {
				fmt.Fprintln(p.out)
				return "", ErrCancelled
			}
		}
		return strings.TrimSpace(r.line), nil
	}
}
