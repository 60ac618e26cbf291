// Package pipeline moves a finite Source through a bounded queue using one
// Producer and one Consumer.
//
// The producer puts every item as a Message and finishes the stream with End
// on every exit path, so the consumer terminates even when the source fails.
// The consumer appends payloads to its destination in arrival order and
// stops at End without appending it.
//
// Common usage:
// - Run: wire producer, queue and consumer for one transfer and return the output
// - Execute: same as Run, reported as a conveyor.Result with a run id
// - NewProducer/NewConsumer: drive the two sides by hand around your own queue
package pipeline
