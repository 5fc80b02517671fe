// Package progress keeps aggregated counters of spawned sessions: how many
// started, how many are running and how each finished.
package progress
