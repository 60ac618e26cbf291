// Package queue provides Queue, a bounded blocking FIFO guarded by a mutex and
// two condition variables.
//
// Blocking flavours:
// - Put/Get: wait indefinitely
// - PutTimeout/GetTimeout: wait up to a duration, then fail with conveyor.ErrTimeout
// - PutContext/GetContext: wait until the context is done
// - TryPut/TryGet: never wait
//
// A call that times out or is cancelled leaves the queue untouched.
package queue
