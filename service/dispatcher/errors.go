package dispatcher

import "errors"

// ErrSpawnFailure is returned when the shell process could not be started;
// no session is registered and no event is emitted.
var ErrSpawnFailure = errors.New("failed to spawn process")
