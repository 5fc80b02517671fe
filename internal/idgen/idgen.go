package idgen

import "github.com/google/uuid"

// NewFunc generates event identifiers; tests may stub it.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new opaque identifier
func New() string { return NewFunc() }
