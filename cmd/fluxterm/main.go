// Command fluxterm is a line oriented front-end: it reads command lines from
// stdin and prints the streamed output of each command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/fluxterm"
	"github.com/viant/fluxterm/model"
	"github.com/viant/fluxterm/service/cmdline"
	"github.com/viant/fluxterm/service/event"
	"github.com/viant/fluxterm/service/framer"
	"github.com/viant/fluxterm/service/terminator"
)

const clearScreen = "\033[H\033[2J"

func main() {
	configURL := flag.String("config", "", "config URL (YAML)")
	traceFile := flag.String("trace", "", "span output file")
	apiKey := flag.String("key", "", "store assistant API key and exit")
	flag.Parse()

	ctx := context.Background()
	if err := run(ctx, *configURL, *traceFile, *apiKey, os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, configURL, traceFile, apiKey string, in io.Reader, stdout, stderr io.Writer) error {
	config := fluxterm.DefaultConfig()
	if configURL != "" {
		var err error
		if config, err = fluxterm.LoadConfig(ctx, afs.New(), configURL); err != nil {
			return err
		}
	}
	var options []fluxterm.Option
	if traceFile != "" {
		options = append(options, fluxterm.WithTracing(traceFile))
	}
	srv, err := fluxterm.NewFromConfig(ctx, config, options...)
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Close(ctx); err != nil {
			log.Printf("fluxterm: %v", err)
		}
	}()
	if apiKey != "" {
		return srv.SetAPIKey(ctx, apiKey)
	}

	term := &terminal{srv: srv, stdout: stdout, stderr: stderr, ready: make(chan struct{}, 1)}
	srv.SetListener(term.handle)

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)
	go func() {
		for range interrupts {
			if err := srv.Kill(ctx); err != nil && !errors.Is(err, terminator.ErrNoActiveProcess) {
				fmt.Fprintln(stderr, model.ErrorPrefix+err.Error())
			}
		}
	}()
	return term.loop(ctx, in)
}

type terminal struct {
	srv    *fluxterm.Service
	stdout io.Writer
	stderr io.Writer
	ready  chan struct{}
}

func (t *terminal) prompt() {
	fmt.Fprintf(t.stdout, "%v $ ", t.srv.WorkingDirectory())
}

func (t *terminal) handle(e *event.Event[model.Event]) {
	switch actual := e.Data.(type) {
	case model.OutputLine:
		if actual.Stream == model.Stderr {
			fmt.Fprintln(t.stderr, actual.Text)
		} else {
			fmt.Fprintln(t.stdout, actual.Text)
		}
	case model.Terminated:
		if actual.Message != "" {
			fmt.Fprintln(t.stdout, actual.Message)
		}
		t.ready <- struct{}{}
	}
}

// loop submits one line at a time and waits for its Terminated before
// reading the next one
func (t *terminal) loop(ctx context.Context, in io.Reader) error {
	lines := framer.New(in)
	t.prompt()
	for line := range lines.Lines() {
		if strings.TrimSpace(line) == "exit" {
			return nil
		}
		input, err := t.srv.Submit(ctx, line)
		switch {
		case err != nil:
			fmt.Fprintln(t.stderr, model.ErrorPrefix+err.Error())
		case input.Kind == cmdline.KindClear:
			fmt.Fprint(t.stdout, clearScreen)
		case input.Kind != cmdline.KindEmpty:
			<-t.ready
		}
		t.prompt()
	}
	return lines.Err()
}
