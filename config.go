package fluxterm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/fluxterm/internal/expr"
	"github.com/viant/fluxterm/service/history"
	"github.com/viant/fluxterm/service/secret"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the service configuration.
// Values may reference the environment with ${env.KEY}.
type Config struct {
	Shell            ShellConfig   `json:"shell" yaml:"shell"`
	Process          ProcessConfig `json:"process" yaml:"process"`
	Events           EventsConfig  `json:"events" yaml:"events"`
	History          HistoryConfig `json:"history" yaml:"history"`
	Journal          JournalConfig `json:"journal" yaml:"journal"`
	Secret           SecretConfig  `json:"secret" yaml:"secret"`
	Tracing          TracingConfig `json:"tracing" yaml:"tracing"`
	WorkingDirectory string        `json:"workingDirectory,omitempty" yaml:"workingDirectory,omitempty"`
}

// ShellConfig overrides the platform shell, e.g. bash with -c
type ShellConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	Flag string `json:"flag,omitempty" yaml:"flag,omitempty"`
}

type ProcessConfig struct {
	DrainTimeoutMs int `json:"drainTimeoutMs" yaml:"drainTimeoutMs"`
}

type EventsConfig struct {
	QueueBuffer int `json:"queueBuffer" yaml:"queueBuffer"`
}

type HistoryConfig struct {
	URL     string `json:"url" yaml:"url"`
	MaxSize int    `json:"maxSize" yaml:"maxSize"`
}

// JournalConfig selects the session journal, an empty URL keeps it in memory
type JournalConfig struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

type SecretConfig struct {
	URL string `json:"url" yaml:"url"`
	Key string `json:"key" yaml:"key"`
}

type TracingConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	ServiceName string `json:"serviceName" yaml:"serviceName"`
	Output      string `json:"output,omitempty" yaml:"output,omitempty"`
}

// DefaultConfig returns the configuration used when none is supplied
func DefaultConfig() *Config {
	return &Config{
		Process: ProcessConfig{DrainTimeoutMs: 2000},
		Events:  EventsConfig{QueueBuffer: 256},
		History: HistoryConfig{URL: history.DefaultURL, MaxSize: history.DefaultMaxSize},
		Secret:  SecretConfig{URL: "mem://localhost/fluxterm/secret/api.key", Key: secret.DefaultKey},
		Tracing: TracingConfig{ServiceName: "fluxterm"},
	}
}

// DrainTimeout returns the post exit output drain window
func (c *Config) DrainTimeout() time.Duration {
	return time.Duration(c.Process.DrainTimeoutMs) * time.Millisecond
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Shell.Path != "" && c.Shell.Flag == "" {
		errs = append(errs, fmt.Errorf("shell.flag is required with shell.path %v", c.Shell.Path))
	}
	if c.Process.DrainTimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("process.drainTimeoutMs must be > 0"))
	}
	if c.Events.QueueBuffer <= 0 {
		errs = append(errs, fmt.Errorf("events.queueBuffer must be > 0"))
	}
	if c.History.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("history.maxSize must be > 0"))
	}
	if c.Secret.URL == "" {
		errs = append(errs, fmt.Errorf("secret.url was empty"))
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		errs = append(errs, fmt.Errorf("tracing.serviceName is required when tracing is enabled"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML document from URL on top of DefaultConfig
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal([]byte(expr.Expand(string(data))), ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
