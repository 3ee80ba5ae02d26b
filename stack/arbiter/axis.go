package arbiter

import "strings"

// Axis is the set of directions a nested region scrolls along.
type Axis uint8

const (
	AxisHorizontal Axis = 1 << iota
	AxisVertical

	// AxisNone means the axis could not be determined. It is arbitrated as
	// vertical, the stacking axis of the container.
	AxisNone Axis = 0
	AxisBoth Axis = AxisHorizontal | AxisVertical
)

// Has reports whether every bit of other is set in a.
func (a Axis) Has(other Axis) bool {
	return other != AxisNone && a&other == other
}

// Normalize maps an undetermined axis to vertical.
func (a Axis) Normalize() Axis {
	if a&AxisBoth == AxisNone {
		return AxisVertical
	}
	return a & AxisBoth
}

func (a Axis) String() string {
	switch a & AxisBoth {
	case AxisNone:
		return "none"
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "both"
	}
}

// ParseAxis accepts the names produced by String. Unknown names parse as
// AxisNone.
func ParseAxis(s string) Axis {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "x":
		return AxisHorizontal
	case "vertical", "v", "y":
		return AxisVertical
	case "both", "xy":
		return AxisBoth
	default:
		return AxisNone
	}
}

// Scrollable is a nested region that scrolls independently and whose
// scrolling can be switched on and off.
type Scrollable interface {
	ScrollAxes() Axis
	SetScrollEnabled(enabled bool)
}

// Directional is implemented by flow-style regions that lay their items out
// along a configured direction and therefore scroll along it.
type Directional interface {
	ScrollDirection() Axis
}

// AxesOf asks v for its scroll axes. An undetermined Scrollable falls back to
// its Directional direction, and anything else is vertical.
func AxesOf(v any) Axis {
	var axes Axis
	if s, ok := v.(Scrollable); ok {
		axes = s.ScrollAxes()
	}
	if axes&AxisBoth == AxisNone {
		if d, ok := v.(Directional); ok {
			axes = d.ScrollDirection()
		}
	}
	return axes.Normalize()
}
