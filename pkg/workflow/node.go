package workflow

// Kind is the wire tag identifying a node's behavior in the execution
// engine. The vocabulary is closed; every kind has a fixed pin arity
// (see pinTemplate) and a fixed configuration shape (see Config).
type Kind string

// All node kinds understood by the execution engine.
const (
	KindStart          Kind = "Start"
	KindSequence       Kind = "Sequence"
	KindIf             Kind = "If"
	KindPushNode       Kind = "PushNode"
	KindWait           Kind = "Wait"
	KindEnemyList      Kind = "EnemyList"
	KindPlayerPos      Kind = "PlayerPos"
	KindPoint          Kind = "Point"
	KindPointList      Kind = "PointList"
	KindMoveTo         Kind = "MoveTo"
	KindEnterPortal    Kind = "EnterPortal"
	KindMapChange      Kind = "MapChange"
	KindOperator       Kind = "Operator"
	KindComparison     Kind = "Comparison"
	KindSavePos        Kind = "SavePos"
	KindUseItem        Kind = "UseItem"
	KindSendMessage    Kind = "SendMessageL"
	KindReceiveMessage Kind = "ReceivedMessage"
	KindGroup          Kind = "Group"
	KindHotkey         Kind = "Hotkey"
	KindPlayerCount    Kind = "PlayerCount"
	KindStatusLevel    Kind = "StatusLevel"
	KindSwitchServer   Kind = "SwitchServer"
	KindConnectQuest   Kind = "ConnectToQuest"
	KindNexus          Kind = "Nexus"
	KindResetTileCache Kind = "ResetTileCache"
	KindOffsetPos      Kind = "OffsetPos"
)

// Position is a 2D coordinate placing a node in the visual editor.
// It is cosmetic only: neither link validation nor the engine's runtime
// semantics read it, it is merely echoed into the wire format.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a vertex in a workflow graph. Kind, Position and the two pin
// arrays are immutable after creation; Config may be mutated by the owning
// caller (for example to rename a logical state on a Start node) up until
// serialization.
//
// A pin name appears in at most one of the two arrays of a node.
type Node struct {
	Kind     Kind
	Position Position
	InPins   []Pin
	OutPins  []Pin

	// Config carries the kind-specific parameters serialized flatly into
	// the node's wire record. Nil for kinds without configuration.
	Config Config
}

// pinDef declares one pin of a kind's template by name and type.
type pinDef struct {
	name string
	typ  PinType
}

// kindSpec is the registry entry for one node kind: the fixed pin arity
// shared by the factory and the wire reader, plus a constructor for the
// kind's config struct (nil for kinds without configuration).
type kindSpec struct {
	inPins    []pinDef
	outPins   []pinDef
	newConfig func() Config
}

func exec(name string) pinDef { return pinDef{name: name, typ: Execution} }

// kinds is the single source of truth for pin templates. Factories
// allocate exactly these pins; the wire reader uses the template to
// recover pin types, which the wire format does not carry.
var kinds = map[Kind]kindSpec{
	KindStart: {
		inPins:    []pinDef{exec("In")},
		newConfig: func() Config { return &StartConfig{} },
	},
	KindSequence: {
		inPins:  []pinDef{exec("In"), exec("In 2"), exec("In 3"), exec("In 4"), exec("In 5")},
		outPins: []pinDef{exec("Out")},
	},
	KindIf: {
		inPins:  []pinDef{exec("True"), exec("False"), {name: "Condition", typ: Boolean}},
		outPins: []pinDef{exec("Out")},
	},
	KindPushNode: {
		outPins:   []pinDef{exec("Out")},
		newConfig: func() Config { return &PushConfig{} },
	},
	KindWait: {
		inPins:    []pinDef{exec("In")},
		outPins:   []pinDef{exec("Out")},
		newConfig: func() Config { return &WaitConfig{} },
	},
	KindEnemyList: {
		outPins: []pinDef{
			{name: "Pos", typ: Vector2},
			{name: "Exists", typ: Boolean},
			{name: "ID", typ: Float},
		},
		newConfig: func() Config { return &EnemyListConfig{} },
	},
	KindPlayerPos: {
		outPins: []pinDef{{name: "Pos", typ: Vector2}},
	},
	KindPoint: {
		outPins:   []pinDef{{name: "Pos", typ: Vector2}},
		newConfig: func() Config { return &PointConfig{} },
	},
	KindPointList: {
		outPins:   []pinDef{{name: "Pos", typ: Vector2}},
		newConfig: func() Config { return &PointListConfig{} },
	},
	KindMoveTo: {
		inPins:    []pinDef{exec("In"), {name: "Position", typ: Vector2}},
		outPins:   []pinDef{exec("Out")},
		newConfig: func() Config { return &MoveToConfig{} },
	},
	KindEnterPortal: {
		inPins:  []pinDef{exec("In"), {name: "Portal ID", typ: Float}},
		outPins: []pinDef{exec("Out")},
	},
	KindMapChange: {
		inPins:    []pinDef{exec("In")},
		newConfig: func() Config { return &MapChangeConfig{} },
	},
	KindOperator: {
		inPins: []pinDef{
			{name: "A", typ: Vector2},
			{name: "B", typ: Vector2},
			{name: "Val", typ: Float},
		},
		outPins: []pinDef{
			{name: "Result", typ: Vector2},
			{name: "Distance", typ: Float},
		},
		newConfig: func() Config { return &OperatorConfig{} },
	},
	KindComparison: {
		inPins:    []pinDef{{name: "A", typ: Float}},
		outPins:   []pinDef{{name: "Result", typ: Boolean}},
		newConfig: func() Config { return &ComparisonConfig{} },
	},
	KindSavePos: {
		inPins: []pinDef{exec("In"), {name: "Pos", typ: Vector2}},
		outPins: []pinDef{
			exec("Out"),
			{name: "Saved Pos", typ: Vector2},
			{name: "Has Value", typ: Boolean},
		},
		newConfig: func() Config { return &SavePosConfig{} },
	},
	KindUseItem: {
		inPins:    []pinDef{exec("In")},
		outPins:   []pinDef{exec("Out"), {name: "Has", typ: Boolean}},
		newConfig: func() Config { return &UseItemConfig{} },
	},
	KindSendMessage: {
		inPins:    []pinDef{exec("In")},
		outPins:   []pinDef{exec("Out")},
		newConfig: func() Config { return &SendMessageConfig{} },
	},
	KindReceiveMessage: {
		inPins:    []pinDef{exec("In")},
		outPins:   []pinDef{exec("Out")},
		newConfig: func() Config { return &ReceiveMessageConfig{} },
	},
	KindGroup: {
		outPins:   []pinDef{{name: "Center", typ: Vector2}},
		newConfig: func() Config { return &GroupConfig{} },
	},
	KindHotkey: {
		inPins:    []pinDef{exec("None"), exec("Pressed"), exec("Held")},
		outPins:   []pinDef{exec("Out")},
		newConfig: func() Config { return &HotkeyConfig{} },
	},
	KindPlayerCount: {
		outPins:   []pinDef{{name: "Count", typ: Float}},
		newConfig: func() Config { return &PlayerCountConfig{} },
	},
	KindStatusLevel: {
		outPins:   []pinDef{{name: "Level", typ: Float}},
		newConfig: func() Config { return &StatusLevelConfig{} },
	},
	KindSwitchServer: {
		outPins: []pinDef{exec("Out")},
	},
	KindConnectQuest: {
		outPins:   []pinDef{exec("Out")},
		newConfig: func() Config { return &ConnectQuestConfig{} },
	},
	KindNexus: {
		outPins: []pinDef{exec("Out")},
	},
	KindResetTileCache: {
		outPins: []pinDef{exec("Out")},
	},
	KindOffsetPos: {
		inPins:    []pinDef{{name: "Pos", typ: Vector2}},
		outPins:   []pinDef{{name: "Result", typ: Vector2}},
		newConfig: func() Config { return &OffsetPosConfig{} },
	},
}

// KnownKind reports whether k is part of the closed kind vocabulary.
func KnownKind(k Kind) bool {
	_, ok := kinds[k]
	return ok
}

// NewConfig returns a zero-valued config struct for the kind, or nil for
// kinds without configuration or unknown kinds. The wire reader uses this
// to decode flat config fields back into their typed form.
func NewConfig(k Kind) Config {
	spec, ok := kinds[k]
	if !ok || spec.newConfig == nil {
		return nil
	}
	return spec.newConfig()
}

// PinTemplate returns the declared (name, type) arity of the kind's input
// and output pins, in array order. The returned slices are shared and must
// not be modified.
func PinTemplate(k Kind) (in, out []Pin) {
	spec, ok := kinds[k]
	if !ok {
		return nil, nil
	}
	return templatePins(spec.inPins), templatePins(spec.outPins)
}

func templatePins(defs []pinDef) []Pin {
	if len(defs) == 0 {
		return nil
	}
	pins := make([]Pin, len(defs))
	for i, d := range defs {
		pins[i] = Pin{Name: d.name, Type: d.typ}
	}
	return pins
}

// pinTypeFor resolves a pin's type from the kind template by name and
// array side. Unknown names default to Execution; the engine's editor can
// emit pins this package has no template for, and the permissive default
// mirrors its behavior.
func pinTypeFor(k Kind, name string, side pinSide) PinType {
	spec, ok := kinds[k]
	if !ok {
		return Execution
	}
	defs := spec.outPins
	if side == sideInput {
		defs = spec.inPins
	}
	for _, d := range defs {
		if d.name == name {
			return d.typ
		}
	}
	return Execution
}
