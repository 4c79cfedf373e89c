// Package output writes evaluation results as JSON payloads:
// {"result": [[...]]} on success, {"error": "..."} on failure.
package output
