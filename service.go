package fluxterm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/viant/fluxterm/model"
	"github.com/viant/fluxterm/progress"
	"github.com/viant/fluxterm/service/cmdline"
	"github.com/viant/fluxterm/service/collaborator"
	"github.com/viant/fluxterm/service/dao"
	"github.com/viant/fluxterm/service/dao/session/fs"
	"github.com/viant/fluxterm/service/dao/session/memory"
	"github.com/viant/fluxterm/service/dispatcher"
	"github.com/viant/fluxterm/service/event"
	"github.com/viant/fluxterm/service/framer"
	"github.com/viant/fluxterm/service/history"
	"github.com/viant/fluxterm/service/messaging"
	mmemory "github.com/viant/fluxterm/service/messaging/memory"
	"github.com/viant/fluxterm/service/registry"
	"github.com/viant/fluxterm/service/secret"
	"github.com/viant/fluxterm/service/terminator"
	"github.com/viant/fluxterm/service/workdir"
	"github.com/viant/fluxterm/tracing"
)

// Version is reported as the tracing service version
const Version = "0.1.0"

const analyzePrompt = "Analyze this terminal error and suggest a solution: "

var (
	// ErrNoErrorLine is returned by AnalyzeLastError before any error was seen
	ErrNoErrorLine = errors.New("no error line to analyze")
	// ErrClosed is returned by operations started after Close
	ErrClosed = errors.New("service closed")
)

// Service is the shell front-end facade
type Service struct {
	config      *Config
	registry    *registry.Registry
	workdir     workdir.Store
	dispatcher  *dispatcher.Service
	terminator  terminator.Terminator
	platform    terminator.Platform
	events      *event.Service
	queue       messaging.Queue[event.Event[model.Event]]
	sink        model.Sink
	journal     dao.Service[string, model.Session]
	progress    *progress.Progress
	history     *history.Service
	secrets     *secret.Store
	assistant   collaborator.Assistant
	lister      collaborator.DirectoryLister
	finder      collaborator.ExecutableFinder
	scripts     collaborator.ScriptLookup
	initTracing func(serviceName string) (tracing.Shutdown, error)
	shutdown    tracing.Shutdown
	lastError   string
	apiKey      string
	closed      atomic.Bool
	lifecycle   sync.RWMutex
	mux         sync.RWMutex
}

// Execute runs command with args, see dispatcher.Service.Execute
func (s *Service) Execute(ctx context.Context, command string, args []string) (err error) {
	ctx, span := tracing.StartSpan(ctx, "execute", tracing.KindInternal)
	span.WithAttributes(map[string]string{"command": command})
	defer func() { tracing.EndSpan(span, err) }()
	s.lifecycle.RLock()
	defer s.lifecycle.RUnlock()
	if s.closed.Load() {
		return ErrClosed
	}
	if err = s.dispatcher.Execute(ctx, command, args, s); err != nil {
		s.setLastError(model.ErrorPrefix + err.Error())
	}
	return err
}

// Kill terminates the active process and its descendants
func (s *Service) Kill(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "kill", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()
	if session := s.registry.Peek(); session != nil {
		span.WithInt("pid", session.ID)
	}
	return s.terminator.Kill(ctx)
}

// Submit parses a typed line, records it in history and routes it. Empty
// and clear lines are returned for the caller to handle.
func (s *Service) Submit(ctx context.Context, line string) (input *cmdline.Input, err error) {
	ctx, span := tracing.StartSpan(ctx, "submit", tracing.KindServer)
	defer func() { tracing.EndSpan(span, err) }()
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if input, err = cmdline.Parse(line); err != nil {
		return nil, err
	}
	span.WithAttributes(map[string]string{"kind": input.Kind.String()})
	switch input.Kind {
	case cmdline.KindAssistant:
		s.history.Add(ctx, input.Line)
		return input, s.Ask(ctx, input.Prompt)
	case cmdline.KindCommand:
		s.history.Add(ctx, input.Line)
		return input, s.Execute(ctx, input.Command, input.Args)
	}
	return input, nil
}

// Ask sends prompt to the assistant in the background. The answer is
// emitted as stdout lines, a failure as a single stderr line, and both
// conclude with an empty Terminated.
func (s *Service) Ask(ctx context.Context, prompt string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if s.assistant == nil {
		return fmt.Errorf("assistant: %w", collaborator.ErrNotConfigured)
	}
	ctx = context.WithoutCancel(ctx)
	go s.ask(ctx, prompt)
	return nil
}

func (s *Service) ask(ctx context.Context, prompt string) {
	ctx, span := tracing.StartSpan(ctx, "ask", tracing.KindClient)
	var err error
	defer func() { tracing.EndSpan(span, err) }()
	var apiKey, response string
	if apiKey, err = s.APIKey(ctx); err == nil {
		response, err = s.assistant.Ask(ctx, apiKey, prompt)
	}
	if err != nil {
		s.emit(ctx, model.NewOutputLine(model.Stderr, err.Error()))
	} else {
		for line := range framer.Lines(strings.NewReader(response)) {
			s.emit(ctx, model.NewOutputLine(model.Stdout, line))
		}
	}
	s.emit(ctx, model.Terminated{})
}

// AnalyzeLastError asks the assistant about the most recent stderr line or
// Execute error
func (s *Service) AnalyzeLastError(ctx context.Context) error {
	s.mux.RLock()
	line := s.lastError
	s.mux.RUnlock()
	if line == "" {
		return ErrNoErrorLine
	}
	return s.Ask(ctx, analyzePrompt+line)
}

// SetAPIKey stores the assistant API key encrypted
func (s *Service) SetAPIKey(ctx context.Context, apiKey string) error {
	if err := s.secrets.Save(ctx, apiKey); err != nil {
		return err
	}
	s.mux.Lock()
	s.apiKey = strings.TrimSpace(apiKey)
	s.mux.Unlock()
	return nil
}

// APIKey returns the assistant API key
func (s *Service) APIKey(ctx context.Context) (string, error) {
	s.mux.RLock()
	apiKey := s.apiKey
	s.mux.RUnlock()
	if apiKey != "" {
		return apiKey, nil
	}
	apiKey, err := s.secrets.Load(ctx)
	if err != nil {
		return "", err
	}
	s.mux.Lock()
	s.apiKey = apiKey
	s.mux.Unlock()
	return apiKey, nil
}

// Emit implements model.Sink, it remembers the last stderr line and
// forwards the event
func (s *Service) Emit(ctx context.Context, e model.Event) error {
	if line, ok := e.(model.OutputLine); ok && line.Stream == model.Stderr {
		s.setLastError(line.Text)
	}
	if s.sink != nil {
		return s.sink.Emit(ctx, e)
	}
	return s.events.Sink().Emit(ctx, e)
}

func (s *Service) setLastError(line string) {
	s.mux.Lock()
	s.lastError = line
	s.mux.Unlock()
}

func (s *Service) emit(ctx context.Context, e model.Event) {
	if err := s.Emit(ctx, e); err != nil {
		log.Printf("fluxterm: failed to emit %v event: %v", e.Kind(), err)
	}
}

// SetListener replaces the handler receiving events
func (s *Service) SetListener(handler func(*event.Event[model.Event])) {
	s.events.SetListener(handler)
}

// Sessions returns journaled sessions, optionally filtered by state
func (s *Service) Sessions(ctx context.Context, states ...model.State) ([]*model.Session, error) {
	var parameters []*dao.Parameter
	if len(states) > 0 {
		values := make([]string, 0, len(states))
		for _, state := range states {
			values = append(values, string(state))
		}
		parameters = append(parameters, &dao.Parameter{Name: dao.StateParameter, Value: values})
	}
	return s.journal.List(ctx, parameters...)
}

// Active returns a snapshot of the running session or nil
func (s *Service) Active() *model.Session {
	if session := s.registry.Peek(); session != nil && session.IsRunning() {
		return session.Snapshot()
	}
	return nil
}

// Stats returns session counters since the service was created
func (s *Service) Stats() progress.Counters {
	return s.progress.Snapshot()
}

// History returns submitted lines, most recent first
func (s *Service) History() []string {
	return s.history.List()
}

// WorkingDirectory returns the directory new commands start in
func (s *Service) WorkingDirectory() string {
	return s.workdir.Get()
}

// ListDirectory lists the working directory
func (s *Service) ListDirectory(ctx context.Context) ([]collaborator.Entry, error) {
	if s.lister == nil {
		return nil, fmt.Errorf("directory lister: %w", collaborator.ErrNotConfigured)
	}
	return s.lister.List(ctx, s.workdir.Get())
}

// Executables lists executables on PATH
func (s *Service) Executables(ctx context.Context) ([]string, error) {
	if s.finder == nil {
		return nil, fmt.Errorf("executable finder: %w", collaborator.ErrNotConfigured)
	}
	return s.finder.Executables(ctx)
}

// Scripts looks up package manager scripts in the working directory
func (s *Service) Scripts(ctx context.Context) (*collaborator.Scripts, error) {
	if s.scripts == nil {
		return nil, fmt.Errorf("script lookup: %w", collaborator.ErrNotConfigured)
	}
	return s.scripts.Scripts(ctx, s.workdir.Get())
}

// Close stops event delivery, kills the active process tree and flushes
// tracing. Events still emitted by finishing sessions are dropped, and
// Execute, Submit and Ask return ErrClosed afterwards.
func (s *Service) Close(ctx context.Context) error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.events.Close()
	// waits for an Execute that passed the closed check and may still be spawning
	s.lifecycle.Lock()
	err := s.terminator.Kill(ctx)
	s.lifecycle.Unlock()
	if err != nil && !errors.Is(err, terminator.ErrNoActiveProcess) {
		log.Printf("fluxterm: failed to kill active session on close: %v", err)
	}
	if s.shutdown != nil {
		return s.shutdown(ctx)
	}
	return nil
}

func (s *Service) init(ctx context.Context) error {
	cfg := s.config
	if err := cfg.Validate(); err != nil {
		return err
	}
	if s.workdir == nil {
		store, err := workdir.NewMemory(cfg.WorkingDirectory)
		if err != nil {
			return err
		}
		s.workdir = store
	}
	if s.journal == nil {
		if cfg.Journal.URL == "" {
			s.journal = memory.New()
		} else {
			journal, err := fs.New(ctx, cfg.Journal.URL)
			if err != nil {
				return err
			}
			s.journal = journal
		}
	}
	if s.queue == nil {
		queueConfig := mmemory.DefaultConfig()
		queueConfig.QueueBuffer = cfg.Events.QueueBuffer
		s.queue = mmemory.NewQueue[event.Event[model.Event]](queueConfig)
	}
	s.events = event.New(s.queue)

	s.history = history.New(cfg.History.URL, cfg.History.MaxSize)
	if err := s.history.Load(ctx); err != nil {
		log.Printf("fluxterm: %v", err)
	}
	s.secrets = secret.New(cfg.Secret.URL, cfg.Secret.Key)

	s.registry = registry.New()
	s.progress = progress.New()
	var dispatcherOptions = []dispatcher.Option{
		dispatcher.WithDrainTimeout(cfg.DrainTimeout()),
		dispatcher.WithJournal(s.journal),
		dispatcher.WithProgress(s.progress),
	}
	if cfg.Shell.Path != "" {
		dispatcherOptions = append(dispatcherOptions, dispatcher.WithShell(cfg.Shell.Path, cfg.Shell.Flag))
	}
	s.dispatcher = dispatcher.New(s.registry, s.workdir, dispatcherOptions...)
	var terminatorOptions []terminator.Option
	if s.platform != nil {
		terminatorOptions = append(terminatorOptions, terminator.WithPlatform(s.platform))
	}
	s.terminator = terminator.New(s.registry, terminatorOptions...)

	if s.initTracing == nil && cfg.Tracing.Enabled {
		WithTracing(cfg.Tracing.Output)(s)
	}
	if s.initTracing != nil {
		name := cfg.Tracing.ServiceName
		if name == "" {
			name = "fluxterm"
		}
		shutdown, err := s.initTracing(name)
		if err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
		s.shutdown = shutdown
	}
	return nil
}

// NewFromConfig creates a service from config, nil uses DefaultConfig
func NewFromConfig(ctx context.Context, config *Config, options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig()}
	WithConfig(config)(ret)
	for _, option := range options {
		option(ret)
	}
	if err := ret.init(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}

// New creates a service with DefaultConfig unless WithConfig is given
func New(options ...Option) (*Service, error) {
	return NewFromConfig(context.Background(), nil, options...)
}

var _ model.Sink = (*Service)(nil)
