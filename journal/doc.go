// Package journal persists profiling runs and per-chunk scoring
// progress in a local SQLite database, so an interrupted upload can
// resume from the last scored chunk instead of starting over.
package journal
