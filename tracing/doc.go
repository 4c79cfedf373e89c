// Package tracing is a thin wrapper around OpenTelemetry. Evaluation code
// starts spans through StartSpan/EndSpan; until Init or InitWithExporter is
// called the global no-op provider makes every span free.
package tracing
