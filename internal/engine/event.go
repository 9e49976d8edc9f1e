package engine

// EventWithArg is a multi-cast event carrying one argument. Listeners run
// synchronously in subscription order.
type EventWithArg[T any] struct {
	listeners []func(T)
}

// AddListener subscribes callback. Nil callbacks are ignored.
func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

// RemoveAllListeners clears all listeners.
func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls every listener with arg.
func (e *EventWithArg[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}

// GetListenerCount returns the number of registered listeners.
func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}
