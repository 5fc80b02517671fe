// Package fluxterm is the execution core of a shell front-end.
//
// It runs typed command lines as shell processes, streams their output as
// line events, tracks the single active process so it can be killed with
// all of its descendants, and handles cd without spawning a process.
//
// A front-end creates the Service, registers a listener and submits lines:
//
//	srv, _ := fluxterm.New()
//	srv.SetListener(func(e *event.Event[model.Event]) { render(e.Data) })
//	_, err := srv.Submit(ctx, "ls -la")
//	...
//	err = srv.Kill(ctx)
//
// Every spawned command concludes with exactly one model.Terminated event.
package fluxterm
