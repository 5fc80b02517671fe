package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/viant/fluxterm/model"
	"github.com/viant/fluxterm/progress"
	"github.com/viant/fluxterm/service/cmdline"
	"github.com/viant/fluxterm/service/dao"
	"github.com/viant/fluxterm/service/registry"
	"github.com/viant/fluxterm/service/streamer"
	"github.com/viant/fluxterm/service/workdir"
)

const (
	// ChangeDirectory is handled in process, it never spawns a shell
	ChangeDirectory = "cd"
	// ParentDirectory is the cd target when no argument is given
	ParentDirectory = ".."

	defaultDrainTimeout = 2 * time.Second

	changeDirectoryFailure = "Failed to change directory: "
	exitStatusPrefix       = "Process exited with status: "
	waitFailurePrefix      = model.ErrorPrefix + "Process failed: "
)

// Service launches commands and reports their progress to a sink
type Service struct {
	registry     *registry.Registry
	workdir      workdir.Store
	journal      dao.Service[string, model.Session]
	progress     *progress.Progress
	shell        string
	shellFlag    string
	drainTimeout time.Duration
}

type process struct {
	cmd    *exec.Cmd
	stdout *os.File
	stderr *os.File
}

// Execute runs command with args. The cd command completes synchronously;
// anything else is spawned and Execute returns as soon as the process
// started. Only a spawn failure is returned as an error, every other
// outcome is reported to sink.
func (s *Service) Execute(ctx context.Context, command string, args []string, sink model.Sink) error {
	if command == ChangeDirectory {
		s.changeDirectory(ctx, args, sink)
		return nil
	}
	commandLine := strings.Join(append([]string{command}, args...), " ")
	dir := s.workdir.Get()
	proc, err := s.spawn(commandLine, dir)
	if err != nil {
		return err
	}
	session := model.NewSession(proc.cmd.Process.Pid, commandLine, dir)
	s.registry.Set(session)
	s.progress.Update(progress.Delta{Spawned: 1, Running: 1})

	// the session outlives the caller's request
	sessionCtx := model.WithSessionID(context.WithoutCancel(ctx), session.ID)
	s.record(sessionCtx, session)
	forwarding := streamer.Start(sessionCtx, proc.stdout, proc.stderr, sink)
	go s.await(sessionCtx, proc.cmd, session, forwarding, sink)
	return nil
}

func (s *Service) changeDirectory(ctx context.Context, args []string, sink model.Sink) {
	target := ParentDirectory
	if len(args) > 0 && args[0] != "" {
		target = cmdline.Unquote(args[0])
	}
	if dir, err := s.workdir.Change(ctx, target); err != nil {
		s.emit(ctx, sink, model.NewOutputLine(model.Stderr, changeDirectoryFailure+err.Error()))
	} else {
		s.emit(ctx, sink, model.DirectoryChanged{Path: dir})
	}
	s.emit(ctx, sink, model.Terminated{})
}

func (s *Service) spawn(commandLine, dir string) (*process, error) {
	stdoutReader, stdoutWriter, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %v", ErrSpawnFailure, err)
	}
	stderrReader, stderrWriter, err := os.Pipe()
	if err != nil {
		closeFiles(stdoutReader, stdoutWriter)
		return nil, fmt.Errorf("%w: stderr pipe: %v", ErrSpawnFailure, err)
	}
	cmd := newCommand(s.shell, s.shellFlag, commandLine)
	cmd.Dir = dir
	cmd.Stdout = stdoutWriter
	cmd.Stderr = stderrWriter
	err = cmd.Start()
	// the child holds its own copies of the write ends
	closeFiles(stdoutWriter, stderrWriter)
	if err != nil {
		closeFiles(stdoutReader, stderrReader)
		return nil, fmt.Errorf("%w: %v: %v", ErrSpawnFailure, commandLine, err)
	}
	return &process{cmd: cmd, stdout: stdoutReader, stderr: stderrReader}, nil
}

func (s *Service) await(ctx context.Context, cmd *exec.Cmd, session *model.Session, forwarding *streamer.Forwarding, sink model.Sink) {
	waitErr := cmd.Wait()
	if !forwarding.Wait(s.drainTimeout) {
		log.Printf("fluxterm: session %d output still open %v after exit, closed", session.ID, s.drainTimeout)
	}
	message := complete(session, waitErr)
	s.registry.CompareAndClear(session)
	s.progress.Update(finished(session))
	s.record(ctx, session)
	s.emit(ctx, sink, model.Terminated{Message: message})
}

// complete updates session state from the Wait result and returns the
// Terminated message
func complete(session *model.Session, err error) string {
	if err == nil {
		session.Exit(0)
		return ""
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code == -1 || session.KillRequested() {
			session.Kill(code)
		} else {
			session.Exit(code)
		}
		return exitStatusPrefix + exitErr.ProcessState.String()
	}
	session.Fail(err.Error())
	return waitFailurePrefix + err.Error()
}

func finished(session *model.Session) progress.Delta {
	state, _, _ := session.Status()
	ret := progress.Delta{Running: -1}
	switch state {
	case model.StateKilled:
		ret.Killed = 1
	case model.StateFailed:
		ret.Failed = 1
	default:
		ret.Exited = 1
	}
	return ret
}

func (s *Service) record(ctx context.Context, session *model.Session) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Save(ctx, session.Snapshot()); err != nil {
		log.Printf("fluxterm: failed to record session %d: %v", session.ID, err)
	}
}

func (s *Service) emit(ctx context.Context, sink model.Sink, event model.Event) {
	if err := sink.Emit(ctx, event); err != nil {
		log.Printf("fluxterm: failed to emit %v event: %v", event.Kind(), err)
	}
}

func closeFiles(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

// New creates a dispatcher
func New(registry *registry.Registry, store workdir.Store, opts ...Option) *Service {
	ret := &Service{
		registry:     registry,
		workdir:      store,
		shell:        defaultShell,
		shellFlag:    defaultShellFlag,
		drainTimeout: defaultDrainTimeout,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
