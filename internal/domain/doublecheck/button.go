package doublecheck

// Button binds a DoubleCheck to the event handlers of a confirmable control.
// User handlers run before the built-in state handling. Button is not safe
// for concurrent use.
type Button struct {
	check DoubleCheck

	// OnConfirm runs when an armed button is activated again.
	OnConfirm func()
	// OnBlur runs on every blur, armed or not.
	OnBlur func()
	// OnKeyUp runs on every key release with the key name.
	OnKeyUp func(key string)
}

// State returns the current confirmation state.
func (b *Button) State() DoubleCheck {
	return b.check
}

// Click handles an activation and reports whether OnConfirm fired.
func (b *Button) Click() bool {
	next, fire := b.check.Activate()
	b.check = next
	if fire && b.OnConfirm != nil {
		b.OnConfirm()
	}
	return fire
}

// Blur handles focus loss.
func (b *Button) Blur() {
	CallAll(b.OnBlur, func() { b.check = b.check.Blur() })()
}

// KeyUp handles a key release.
func (b *Button) KeyUp(key string) {
	CallAllWith(b.OnKeyUp, func(k string) { b.check = b.check.KeyUp(k) })(key)
}
