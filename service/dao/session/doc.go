// Package session contains journal stores recording spawned sessions and
// their final state: memory keeps snapshots in a map, fs writes one JSON
// document per session through viant/afs.
package session
