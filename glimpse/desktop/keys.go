//go:build !js

package desktop

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/triangle/glimpse"
)

var initHints = map[string]glfw.Hint{
	"joystick_hat_buttons":  glfw.JoystickHatButtons,
	"cocoa_chdir_resources": glfw.CocoaChdirResources,
	"cocoa_menubar":         glfw.CocoaMenubar,
}

var glfwToKey = map[glfw.Key]glimpse.Key{
	glfw.KeyEscape:    glimpse.KeyEscape,
	glfw.KeyEnter:     glimpse.KeyEnter,
	glfw.KeyKPEnter:   glimpse.KeyEnter,
	glfw.KeySpace:     glimpse.KeySpace,
	glfw.KeyTab:       glimpse.KeyTab,
	glfw.KeyBackspace: glimpse.KeyBackspace,
	glfw.KeyLeft:      glimpse.KeyLeft,
	glfw.KeyRight:     glimpse.KeyRight,
	glfw.KeyUp:        glimpse.KeyUp,
	glfw.KeyDown:      glimpse.KeyDown,
	glfw.KeyF11:       glimpse.KeyF11,
}

func keyOf(glfwKey glfw.Key) glimpse.Key {
	key, ok := glfwToKey[glfwKey]
	if !ok {
		slog.Debug(
			"Unmapped key code",
			slog.Int("code", int(glfwKey)),
			slog.String("key", glfw.GetKeyName(glfwKey, 0)),
		)

		return glimpse.KeyUnknown
	}

	return key
}

func actionOf(action glfw.Action) glimpse.Action {
	switch action {
	case glfw.Release:
		return glimpse.ActionRelease
	case glfw.Repeat:
		return glimpse.ActionRepeat
	default:
		return glimpse.ActionPress
	}
}
