package model

import (
	"context"
)

// ErrorPrefix is prepended to every line emitted on the stderr stream.
const ErrorPrefix = "[ERROR] "

// Kind identifies an event variant
type Kind string

const (
	KindOutputLine       Kind = "outputLine"
	KindDirectoryChanged Kind = "directoryChanged"
	KindTerminated       Kind = "terminated"
)

// Stream identifies a process output channel
type Stream string

const (
	Stdout Stream = "stdout"
	Stderr Stream = "stderr"
)

// Event is a discriminated value emitted while a command is handled.
type Event interface {
	Kind() Kind
}

// OutputLine carries one complete line read from a process stream.
type OutputLine struct {
	Stream Stream `json:"stream"`
	Text   string `json:"text"`
}

func (OutputLine) Kind() Kind { return KindOutputLine }

// String returns the line as displayed by a terminal
func (o OutputLine) String() string { return o.Text }

// DirectoryChanged reports the new absolute working directory after cd.
type DirectoryChanged struct {
	Path string `json:"path"`
}

func (DirectoryChanged) Kind() Kind { return KindDirectoryChanged }

// Terminated concludes a request. Message is empty on clean success.
type Terminated struct {
	Message string `json:"message"`
}

func (Terminated) Kind() Kind { return KindTerminated }

// NewOutputLine creates an output line, stderr text gets ErrorPrefix
func NewOutputLine(stream Stream, text string) OutputLine {
	if stream == Stderr {
		text = ErrorPrefix + text
	}
	return OutputLine{Stream: stream, Text: text}
}

// Sink consumes events produced by the execution core.
type Sink interface {
	Emit(ctx context.Context, event Event) error
}

type sessionKey string

const sessionIDKey sessionKey = "fluxterm-session-id"

// WithSessionID returns a context tagging emitted events with a session id
func WithSessionID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFrom returns session id carried by ctx or 0
func SessionIDFrom(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(sessionIDKey).(int)
	return id
}
