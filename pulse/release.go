package pulse

type Releaser interface {
	Release()
}

// ReleaseGuard releases its delegate unless Keep was called before.
// Use it with defer to clean up handles on early returns.
type ReleaseGuard struct {
	delegate Releaser
}

func NewReleaseGuard(delegate Releaser) ReleaseGuard {
	return ReleaseGuard{delegate: delegate}
}

func (r *ReleaseGuard) Keep() {
	r.delegate = nil
}

func (r *ReleaseGuard) Release() {
	if r.delegate != nil {
		r.delegate.Release()
		r.delegate = nil
	}
}

// release releases each non nil handle in the given order.
func release(handles ...Releaser) {
	for _, handle := range handles {
		if handle != nil {
			handle.Release()
		}
	}
}
