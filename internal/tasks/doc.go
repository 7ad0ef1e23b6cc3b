// Package tasks orchestrates the playlist splitting pipeline with real-time progress reporting.
//
// # Core Operations
//
// The [SplitEngine] interface defines three operations:
//
//  1. [SplitEngine.Run] : Full split of one playlist
//     - Resolves the playlist reference to a canonical ID
//     - Pages through the source playlist until exhausted
//     - Obtains the approved category set (custom or oracle-suggested)
//     - Classifies songs in sequential batches of at most 50
//     - Groups classified songs and creates one destination playlist per category
//     - Returns detailed results including per-category and per-item failures
//
//  2. [SplitEngine.Suggest] : Category suggestion only
//     - Samples the playlist prefix and returns the oracle's labels
//
//  3. [SplitEngine.Items] : Full paginated playlist read
//     - Returns the ordered song list for inspection or export
//
// # Sequencing and Pacing
//
// The pipeline issues at most one outstanding remote request at a time. The two
// mandatory pacing delays (between classification batches and between item
// insertions) are modeled as the [Pacer] capability backed by [rate.Limiter],
// acquired before each paced call. Cancellation is checked before each remote
// call and inside each pacer wait; a cancelled materialization preserves the
// partially materialized result.
//
// # Failure Policy
//
// Errors during extraction, reading, suggestion, or classification abort the
// run: a partial classification could misassign songs, so no playlist output is
// produced from one. During materialization a playlist-creation failure skips
// only that category and an insertion failure skips only that item; every
// failure is recorded in the [SplitResult] with its category and video ID.
//
// # Progress Reporting
//
// All operations send [ProgressUpdate] values on a caller-owned channel using
// select with default, so reporting never blocks the pipeline.
package tasks
