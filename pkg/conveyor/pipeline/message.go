package pipeline

// Message is what travels through the queue between a Producer and a
// Consumer: either a payload or the end-of-stream marker. The marker is a
// flag rather than a reserved value, so no payload can be mistaken for it.
type Message[T any] struct {
	value T
	end   bool
}

// Of wraps v as a payload message.
func Of[T any](v T) Message[T] {
	return Message[T]{value: v}
}

// End returns the end-of-stream marker.
func End[T any]() Message[T] {
	return Message[T]{end: true}
}

func (m Message[T]) Value() T {
	return m.value
}

func (m Message[T]) IsEnd() bool {
	return m.end
}
