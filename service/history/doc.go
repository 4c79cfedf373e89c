// Package history keeps a record of each evaluation run so embedding
// applications can inspect recent runs.
package history
