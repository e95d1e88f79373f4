package doublecheck

// CallAll returns a function that calls every non-nil fn in order.
// A panic in one fn propagates and the remaining fns are not called.
func CallAll(fns ...func()) func() {
	return func() {
		for _, fn := range fns {
			if fn != nil {
				fn()
			}
		}
	}
}

// CallAllWith is CallAll for handlers that take an argument; every fn
// receives the same value.
func CallAllWith[T any](fns ...func(T)) func(T) {
	return func(v T) {
		for _, fn := range fns {
			if fn != nil {
				fn(v)
			}
		}
	}
}
