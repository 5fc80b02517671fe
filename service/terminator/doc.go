// Package terminator forcefully ends the session held by the registry
// together with every process it spawned.
//
// Each platform provides a Platform with a primary tree kill and a fallback
// single process kill:
//
//   - unix: SIGKILL to the process group (sessions are spawned as group
//     leaders), then SIGKILL to the pid
//   - windows: taskkill /T /F, then TerminateProcess on the pid
package terminator
