package unreader

// Unreader keeps a single piece of data pushed back by the consumer, so the next read
// returns it before anything else is fetched from the source.
type Unreader struct {
	pending []byte
}

// PendingOr returns the pushed back data, if any. Otherwise, the source is called.
func (u *Unreader) PendingOr(source func() ([]byte, error)) (data []byte, err error) {
	if len(u.pending) > 0 {
		data, u.pending = u.pending, nil
		return data, nil
	}

	return source()
}

// Unread preserves the data for the next read. Previously preserved data is overridden.
func (u *Unreader) Unread(b []byte) {
	u.pending = b
}

// Pending returns the preserved data without consuming it.
func (u *Unreader) Pending() []byte {
	return u.pending
}

func (u *Unreader) Reset() {
	u.pending = nil
}
