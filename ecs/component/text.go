package component

import "image/color"

type TextRole int

const (
	RoleNone TextRole = iota
	RoleLives
	RoleTimer
	RoleRestart
	RoleExit
	RoleFinish
)

// Text is a HUD label anchored to the camera center. OffsetX/OffsetY are in
// world units. Width/Height are the last measured size in screen pixels.
type Text struct {
	Value   string
	Role    TextRole
	OffsetX float64
	OffsetY float64
	Color   color.Color
	Scale   float64
	Hidden  bool
	Width   float64
	Height  float64
}

var TextComponent = NewComponent[Text]()

func ParseTextRole(s string) TextRole {
	switch s {
	case "lives":
		return RoleLives
	case "timer":
		return RoleTimer
	case "restart":
		return RoleRestart
	case "exit":
		return RoleExit
	case "finish":
		return RoleFinish
	default:
		return RoleNone
	}
}
