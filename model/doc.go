// Package model contains the value types shared by the fluxterm services:
// the process Session tracked by the registry and the Event kinds delivered
// to a Sink while a command runs.
//
// Events are the only data crossing the boundary between the execution core
// and a front-end:
//
//	OutputLine{Stream: Stdout, Text: "hello"}
//	DirectoryChanged{Path: "/tmp"}
//	Terminated{Message: ""}
package model
