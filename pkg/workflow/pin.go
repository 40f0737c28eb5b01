package workflow

// PinType identifies the value domain of a pin. The set is closed and no
// implicit conversion exists between members: an Execution pin can only be
// linked to another Execution pin, a Vector2 pin to another Vector2 pin,
// and so on.
type PinType int

const (
	// Execution marks control-flow pins that carry no value.
	Execution PinType = iota
	// Vector2 marks pins carrying a 2D world coordinate.
	Vector2
	// Boolean marks pins carrying a true/false condition.
	Boolean
	// Float marks pins carrying a scalar number.
	Float
)

// String returns the engine's wire name for the pin type.
func (t PinType) String() string {
	switch t {
	case Vector2:
		return "Vector2"
	case Boolean:
		return "bool"
	case Float:
		return "float"
	default:
		return "execution"
	}
}

// Pin is a typed, named connection point owned by exactly one node.
// Pins are created only as part of node construction and belong to exactly
// one of the owning node's two pin arrays. IDs are unique across the whole
// graph the node was created in.
type Pin struct {
	ID   int
	Name string
	Type PinType
}

// pinSide reports which of a node's two arrays a resolved pin came from.
type pinSide int

const (
	sideOutput pinSide = iota
	sideInput
)

// findPin performs the unified pin lookup for LinkPins: it scans the
// node's output array first, then the input array, and reports which array
// the match came from. Returns ok=false if no pin with the name exists on
// either side.
func findPin(n *Node, name string) (pin *Pin, side pinSide, ok bool) {
	for i := range n.OutPins {
		if n.OutPins[i].Name == name {
			return &n.OutPins[i], sideOutput, true
		}
	}
	for i := range n.InPins {
		if n.InPins[i].Name == name {
			return &n.InPins[i], sideInput, true
		}
	}
	return nil, 0, false
}
