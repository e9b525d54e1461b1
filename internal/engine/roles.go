package engine

import "headmouse/internal/binding"

// Role is a logical function a physical control can be bound to.
type Role int

// Bindings are updated in this order every tick.
const (
	ToggleMouse Role = iota
	MouseLeftClick
	MouseRightClick
	MouseScrollUp
	MouseScrollDown
	Escape
	roleCount
)

var roleNames = [roleCount]string{
	ToggleMouse:     "ToggleMouse",
	MouseLeftClick:  "MouseLeftClick",
	MouseRightClick: "MouseRightClick",
	MouseScrollUp:   "MouseScrollUp",
	MouseScrollDown: "MouseScrollDown",
	Escape:          "Escape",
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return "Unknown"
	}
	return roleNames[r]
}

// Roles lists every role in update order.
func Roles() []Role {
	roles := make([]Role, roleCount)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

// Bindings holds one binding configuration per role.
type Bindings [roleCount]binding.Config

// UnboundBindings returns a set with every role unset.
func UnboundBindings() Bindings {
	var b Bindings
	for i := range b {
		b[i] = binding.NewConfig()
	}
	return b
}
