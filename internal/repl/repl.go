package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyentantai21042004/text-insight/internal/inference"
	"github.com/nguyentantai21042004/text-insight/internal/logger"
)

// Prompt is printed before every question.
const Prompt = "You can now ask a question about the text (or type 'exit' to stop): "

// maxLineSize bounds a single question. Longer lines are discarded and reported.
const maxLineSize = 1024 * 1024

// ErrLineTooLong is reported for a question longer than maxLineSize bytes.
var ErrLineTooLong = errors.New("question is too long")

type inputLine struct {
	text string
	err  error
}

// Asker answers a single question about the loaded document.
type Asker interface {
	Ask(ctx context.Context, question string) (inference.Answer, error)
}

// REPL reads questions line by line and prints answers.
type REPL struct {
	asker  Asker
	logger logger.Logger
}

// New creates a REPL backed by asker.
func New(asker Asker, log logger.Logger) *REPL {
	return &REPL{asker: asker, logger: log}
}

// Run loops until the user types exit, in reaches EOF or ctx is cancelled.
func (r *REPL) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan inputLine)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		br := bufio.NewReaderSize(in, 64*1024)
		for {
			text, err := readLine(br)
			if err == io.EOF {
				readErr <- nil
				return
			}
			if err != nil && !errors.Is(err, ErrLineTooLong) {
				readErr <- err
				return
			}
			select {
			case lines <- inputLine{text: text, err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprintf(out, "\n%s", Prompt)

		var (
			line inputLine
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case line, ok = <-lines:
		}

		if !ok {
			// EOF or read failure
			fmt.Fprintln(out)
			select {
			case err := <-readErr:
				if err != nil {
					return fmt.Errorf("read question: %w", err)
				}
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if line.err != nil {
			r.logger.Warn(ctx, "Discarded question: %v", line.err)
			fmt.Fprintf(out, "Error: %v\n", line.err)
			continue
		}

		question := strings.TrimSpace(line.text)
		if strings.EqualFold(question, "exit") {
			return nil
		}
		if question == "" {
			continue
		}

		answer, err := r.asker.Ask(ctx, question)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			r.logger.Error(ctx, "Failed to answer %q: %v", question, err)
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		fmt.Fprintf(out, "Answer: %s\n", answer.Text)
	}
}

// readLine returns the next line without its line ending. A line longer than
// maxLineSize is consumed in full and reported as ErrLineTooLong.
func readLine(br *bufio.Reader) (string, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		frag, err := br.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(frag) > maxLineSize+2 {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, frag...)
			}
		}

		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF:
			if len(buf) == 0 && !tooLong {
				return "", io.EOF
			}
		case err != nil:
			return "", err
		}

		line := strings.TrimSuffix(strings.TrimSuffix(string(buf), "\n"), "\r")
		if tooLong || len(line) > maxLineSize {
			return "", ErrLineTooLong
		}
		return line, nil
	}
}
