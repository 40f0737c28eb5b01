package workflow

// Config is the kind-specific configuration payload of a node. Each kind
// with parameters has its own struct, so a config field can never collide
// with the reserved node-record keys (kind, position, inPins, outPins).
// The serializer merges the struct's JSON fields flatly into the node
// record.
//
// None of the numeric parameters are range-checked here: the engine
// accepts out-of-range values (negative durations, zero thresholds) and
// this package passes them through unchanged.
type Config interface {
	nodeConfig()
}

// StartConfig names the logical state a Start node begins.
type StartConfig struct {
	Name string `json:"nodeName"`
}

// PushConfig names the state a PushNode hands control to.
type PushConfig struct {
	Target string `json:"name"`
}

// WaitConfig holds the delay of a Wait node in milliseconds.
type WaitConfig struct {
	WaitMillis int `json:"waitTime"`
}

// EnemyListConfig parameterizes an entity scan. ObjectType selects the
// scanned category (0 enemies, 1 static objects such as portals) and
// SortType the nearest-match ordering.
type EnemyListConfig struct {
	EnemyIDs    []int `json:"enemyList"`
	ObjectType  int   `json:"objectType"`
	SortType    int   `json:"sortType"`
	IgnoreInvul bool  `json:"ignoreInvul"`
}

// PointConfig holds the static coordinate a Point node produces.
type PointConfig struct {
	Point Position `json:"point"`
}

// PointListConfig holds the waypoint list a PointList node cycles
// through. SwitchDistance is the proximity at which the engine advances
// to the next waypoint.
type PointListConfig struct {
	Points         []Position `json:"pointList"`
	Randomize      bool       `json:"randomize"`
	SwitchDistance float64    `json:"switchDistance"`
}

// MoveToConfig parameterizes a MoveTo node.
type MoveToConfig struct {
	Teleport     bool `json:"teleport"`
	TeleportOnce bool `json:"teleportOnce"`
}

// MapChangeConfig names the map whose load triggers the node.
type MapChangeConfig struct {
	MapName string `json:"mapName"`
}

// OperatorConfig parameterizes an arithmetic Operator node.
type OperatorConfig struct {
	OperatorType    int     `json:"operatorType"`
	TowardsDistance float64 `json:"towardsDistance"`
}

// ComparisonConfig parameterizes a numeric Comparison node.
type ComparisonConfig struct {
	ComparisonType int     `json:"comparisonType"`
	Value          float64 `json:"valToCompare"`
}

// SavePosConfig marks whether a saved position survives engine restarts.
type SavePosConfig struct {
	Persistent bool `json:"persistentPos"`
}

// UseItemConfig names the inventory item a UseItem node consumes.
type UseItemConfig struct {
	ItemID int `json:"itemId"`
}

// SendMessageConfig parameterizes a chat message send.
type SendMessageConfig struct {
	Message       string `json:"message"`
	DelayMillis   int    `json:"delayMs"`
	SendWithDelay bool   `json:"sendWithDelay"`
}

// ReceiveMessageConfig filters incoming chat messages by sender and
// content.
type ReceiveMessageConfig struct {
	From    string `json:"from"`
	Content string `json:"content"`
}

// GroupConfig parameterizes spatial clustering of nearby entities.
type GroupConfig struct {
	Epsilon     float64 `json:"epsilon"`
	MaxDistance float64 `json:"maxDistanceFromPlayer"`
}

// HotkeyBinding describes the key combination of a Hotkey node.
type HotkeyBinding struct {
	Alt   bool `json:"isAlt"`
	Ctrl  bool `json:"isCtrl"`
	Shift bool `json:"isShift"`
	Key   int  `json:"key"`
}

// HotkeyConfig parameterizes a Hotkey trigger node.
type HotkeyConfig struct {
	Name    string        `json:"hotkeyName"`
	Binding HotkeyBinding `json:"nodehotkey"`
}

// PlayerCountConfig parameterizes a PlayerCount query.
type PlayerCountConfig struct {
	ExcludeWhitelisted bool `json:"excludeWLPlayers"`
}

// StatusLevelConfig selects which status a StatusLevel node reads.
type StatusLevelConfig struct {
	StatusType int `json:"statusType"`
}

// ConnectQuestConfig parameterizes a ConnectToQuest node. QuestTypes is
// always serialized, even when empty, because the engine expects the key.
type ConnectQuestConfig struct {
	QuestTypes []int `json:"selectedQuestType"`
	MaxPop     int   `json:"maxRealmPopCount"`
	MinPop     int   `json:"minRealmPopCount"`
}

// OffsetPosConfig holds the standoff distance of an OffsetPos node.
type OffsetPosConfig struct {
	Distance float64 `json:"offsetDist"`
}

func (*StartConfig) nodeConfig()          {}
func (*PushConfig) nodeConfig()           {}
func (*WaitConfig) nodeConfig()           {}
func (*EnemyListConfig) nodeConfig()      {}
func (*PointConfig) nodeConfig()          {}
func (*PointListConfig) nodeConfig()      {}
func (*MoveToConfig) nodeConfig()         {}
func (*MapChangeConfig) nodeConfig()      {}
func (*OperatorConfig) nodeConfig()       {}
func (*ComparisonConfig) nodeConfig()     {}
func (*SavePosConfig) nodeConfig()        {}
func (*UseItemConfig) nodeConfig()        {}
func (*SendMessageConfig) nodeConfig()    {}
func (*ReceiveMessageConfig) nodeConfig() {}
func (*GroupConfig) nodeConfig()          {}
func (*HotkeyConfig) nodeConfig()         {}
func (*PlayerCountConfig) nodeConfig()    {}
func (*StatusLevelConfig) nodeConfig()    {}
func (*ConnectQuestConfig) nodeConfig()   {}
func (*OffsetPosConfig) nodeConfig()      {}
