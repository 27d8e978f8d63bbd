package glimpse

import "log/slog"

// KeysState tracks the keyboard of a window across calls to PollEvents.
type KeysState struct {
	// the keys that are currently marked as "pressed"
	Pressed map[Key]bool

	// keys that where just pressed during the last poll
	JustPressed map[Key]bool

	// keys that were just released during the last poll
	JustReleased map[Key]bool
}

func (k *KeysState) IsPressed(key Key) bool {
	return k.Pressed[key]
}

func (k *KeysState) IsJustPressed(key Key) bool {
	return k.JustPressed[key]
}

func (k *KeysState) IsJustReleased(key Key) bool {
	return k.JustReleased[key]
}

func (k *KeysState) apply(ev KeyEvent) {
	switch ev.Action {
	case ActionPress:
		slog.Debug("Key just pressed", slog.String("key", ev.Key.String()))

		setTrue(&k.Pressed, ev.Key)
		setTrue(&k.JustPressed, ev.Key)

	case ActionRelease:
		delete(k.Pressed, ev.Key)
		setTrue(&k.JustReleased, ev.Key)
	}
}

func (k *KeysState) nextTick() {
	clear(k.JustPressed)
	clear(k.JustReleased)
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}
