// Package scheduler provides a fixed pool of persistent workers dispatched by
// fatigue rather than round-robin. A worker's fatigue is its random factor
// multiplied by the cumulative time it spent running tasks; every submission
// goes to the least-fatigued idle worker.
package scheduler
