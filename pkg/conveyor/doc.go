// Package conveyor holds the pieces shared by the queue and pipeline
// packages: the error taxonomy and the Result type that reports the outcome
// of a pipeline run.
//
// Subpackages:
// - queue: a bounded, blocking FIFO with timed and context-aware Put/Get
// - pipeline: one producer and one consumer wired around a fresh queue
package conveyor
