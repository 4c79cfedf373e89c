// Package progress keeps aggregated counters for a single evaluation run. The
// tracker travels in the context, so every component that receives the
// context can update it without a global registry.
package progress
