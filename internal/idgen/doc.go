// Package idgen wraps the UUID generator so that it can be stubbed in tests.
// Run identifiers produced here only label logs, spans and progress trackers;
// callers should treat them as opaque strings.
package idgen
