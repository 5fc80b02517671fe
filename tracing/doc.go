// Package tracing wraps OpenTelemetry so that services start and end spans
// without importing the upstream packages. Spans are exported by whichever
// exporter was installed last with Init or InitWithExporter.
package tracing
