package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mhpenta/slidegen"
)

const prompt = "> "

// replCommands maps colon commands to their actions. An action returns false
// when the session has nothing to move to.
var replCommands = map[string]func(*app) bool{
	":next":  func(a *app) bool { return a.session.Next() },
	":prev":  func(a *app) bool { return a.session.Prev() },
	":first": func(a *app) bool { return a.session.First() },
	":last":  func(a *app) bool { return a.session.Last() },
}

// runREPL reads questions and commands from in until EOF, :quit or ctx is done.
func runREPL(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		fmt.Fprint(out, prompt)

		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			line = strings.TrimSpace(l)
		}

		if line == "" {
			continue
		}

		done, err := a.handle(ctx, line, out)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// handle runs one REPL line. It reports whether the loop should stop.
func (a *app) handle(ctx context.Context, line string, out io.Writer) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		if err := a.ask(ctx, line); err != nil {
			var shown shownError
			if errors.As(err, &shown) {
				return false, nil
			}
			return false, err
		}
		return false, nil
	}

	switch line {
	case ":quit", ":q":
		return true, nil
	case ":clear":
		if err := a.session.Reset(); err != nil {
			fmt.Fprintln(out, err)
		}
		return false, nil
	case ":save":
		if err := a.export(ctx); err != nil {
			fmt.Fprintln(out, err)
		}
		return false, nil
	}

	move, ok := replCommands[line]
	if !ok {
		fmt.Fprintf(out, "unknown command %s\n", line)
		return false, nil
	}
	if !move(a) && a.session.State().Total() == 0 {
		fmt.Fprintln(out, slidegen.NoSlidesText)
	}
	return false, nil
}
