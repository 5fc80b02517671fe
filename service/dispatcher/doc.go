// Package dispatcher is the entry point of command execution.
//
// Execute either handles the cd pseudo command synchronously against a
// workdir.Store or spawns "<shell> <flag> <command line>" with both output
// streams piped, registers the session and returns without waiting. Three
// goroutines then serve the session: the stdout and stderr forwarders and an
// exit waiter that emits exactly one model.Terminated once the process ended
// and its streams drained.
package dispatcher
