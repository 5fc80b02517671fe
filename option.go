package fluxterm

import (
	"github.com/viant/fluxterm/model"
	"github.com/viant/fluxterm/service/collaborator"
	"github.com/viant/fluxterm/service/dao"
	"github.com/viant/fluxterm/service/event"
	"github.com/viant/fluxterm/service/messaging"
	"github.com/viant/fluxterm/service/terminator"
	"github.com/viant/fluxterm/service/workdir"
	"github.com/viant/fluxterm/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises Service
type Option func(s *Service)

// WithConfig sets the configuration, nil keeps DefaultConfig
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithWorkdirStore sets the working directory store
func WithWorkdirStore(store workdir.Store) Option {
	return func(s *Service) { s.workdir = store }
}

// WithSink delivers events to sink directly instead of the listener queue
func WithSink(sink model.Sink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithQueue sets the queue events are published on
func WithQueue(queue messaging.Queue[event.Event[model.Event]]) Option {
	return func(s *Service) { s.queue = queue }
}

// WithJournal sets the session journal
func WithJournal(journal dao.Service[string, model.Session]) Option {
	return func(s *Service) { s.journal = journal }
}

// WithAssistant sets the AI assistant used by Ask
func WithAssistant(assistant collaborator.Assistant) Option {
	return func(s *Service) { s.assistant = assistant }
}

func WithDirectoryLister(lister collaborator.DirectoryLister) Option {
	return func(s *Service) { s.lister = lister }
}

func WithExecutableFinder(finder collaborator.ExecutableFinder) Option {
	return func(s *Service) { s.finder = finder }
}

func WithScriptLookup(lookup collaborator.ScriptLookup) Option {
	return func(s *Service) { s.scripts = lookup }
}

// WithPlatform overrides how processes are killed
func WithPlatform(platform terminator.Platform) Option {
	return func(s *Service) { s.platform = platform }
}

// WithTracing writes spans with the stdout exporter to outputFile, or to
// os.Stdout when outputFile is empty
func WithTracing(outputFile string) Option {
	return func(s *Service) {
		s.initTracing = func(name string) (tracing.Shutdown, error) {
			return tracing.Init(name, Version, outputFile)
		}
	}
}

// WithTracingExporter sends spans to exporter
func WithTracingExporter(exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.initTracing = func(name string) (tracing.Shutdown, error) {
			return tracing.InitWithExporter(name, Version, exporter)
		}
	}
}
