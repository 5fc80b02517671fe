// Package event delivers core events to a front-end listener through a
// messaging queue, decoupling the producing process goroutines from the
// consumer.
package event
