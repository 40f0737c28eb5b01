package workflow

// Node factories, one per kind. Each factory allocates exactly the pins
// its kind's template requires, builds the typed config payload, appends
// the node to the graph and returns its handle. Parameters are passed
// through without range validation, mirroring the engine's permissiveness.
//
// Node order only affects serialization order; links reference pins by id,
// never by node position.

// ScanOptions tunes an EnemyList entity scan. The zero value scans enemy
// objects nearest-first without invulnerability filtering.
type ScanOptions struct {
	// ObjectType selects the scanned category: 0 enemies, 1 static
	// objects such as portals.
	ObjectType int
	// SortType selects the nearest-match ordering.
	SortType int
	// IgnoreInvul skips invulnerable targets when true.
	IgnoreInvul bool
}

// AddStart appends an entry-point node beginning the named logical state.
func (g *Graph) AddStart(name string, pos Position) *Node {
	return g.addNode(KindStart, pos, &StartConfig{Name: name})
}

// AddSequence appends a sequencer with five execution inputs and one
// output.
func (g *Graph) AddSequence(pos Position) *Node {
	return g.addNode(KindSequence, pos, nil)
}

// AddIf appends a conditional branch. The True and False execution inputs
// trigger the branch taken; Condition carries the boolean decision.
func (g *Graph) AddIf(pos Position) *Node {
	return g.addNode(KindIf, pos, nil)
}

// AddPush appends a sub-workflow call handing control to the named state.
func (g *Graph) AddPush(target string, pos Position) *Node {
	return g.addNode(KindPushNode, pos, &PushConfig{Target: target})
}

// AddWait appends a delay of waitMillis milliseconds.
func (g *Graph) AddWait(waitMillis int, pos Position) *Node {
	return g.addNode(KindWait, pos, &WaitConfig{WaitMillis: waitMillis})
}

// AddEnemyList appends an entity scan over the given entity ids, producing
// the nearest match's position, existence and identifier.
func (g *Graph) AddEnemyList(ids []int, pos Position, opts ScanOptions) *Node {
	if ids == nil {
		ids = []int{}
	}
	return g.addNode(KindEnemyList, pos, &EnemyListConfig{
		EnemyIDs:    ids,
		ObjectType:  opts.ObjectType,
		SortType:    opts.SortType,
		IgnoreInvul: opts.IgnoreInvul,
	})
}

// AddPlayerPos appends a node producing the player's current position.
func (g *Graph) AddPlayerPos(pos Position) *Node {
	return g.addNode(KindPlayerPos, pos, nil)
}

// AddPoint appends a node producing the static coordinate (x, y).
func (g *Graph) AddPoint(x, y float64, pos Position) *Node {
	return g.addNode(KindPoint, pos, &PointConfig{Point: Position{X: x, Y: y}})
}

// AddPointList appends a node cycling through the given waypoints,
// advancing when the player comes within switchDistance of the current
// one.
func (g *Graph) AddPointList(points []Position, pos Position, randomize bool, switchDistance float64) *Node {
	if points == nil {
		points = []Position{}
	}
	return g.addNode(KindPointList, pos, &PointListConfig{
		Points:         points,
		Randomize:      randomize,
		SwitchDistance: switchDistance,
	})
}

// AddMoveTo appends a movement node walking (or teleporting) to the
// position supplied on its Position pin.
func (g *Graph) AddMoveTo(pos Position, teleport, teleportOnce bool) *Node {
	return g.addNode(KindMoveTo, pos, &MoveToConfig{Teleport: teleport, TeleportOnce: teleportOnce})
}

// AddEnterPortal appends a node entering the portal identified on its
// Portal ID pin.
func (g *Graph) AddEnterPortal(pos Position) *Node {
	return g.addNode(KindEnterPortal, pos, nil)
}

// AddMapChange appends a trigger firing when the named map loads.
func (g *Graph) AddMapChange(mapName string, pos Position) *Node {
	return g.addNode(KindMapChange, pos, &MapChangeConfig{MapName: mapName})
}

// AddOperator appends an arithmetic node combining its two vector inputs,
// producing a result vector and the scalar distance between them.
func (g *Graph) AddOperator(pos Position, operatorType int, towardsDistance float64) *Node {
	return g.addNode(KindOperator, pos, &OperatorConfig{
		OperatorType:    operatorType,
		TowardsDistance: towardsDistance,
	})
}

// AddComparison appends a numeric comparison of input A against value.
func (g *Graph) AddComparison(pos Position, comparisonType int, value float64) *Node {
	return g.addNode(KindComparison, pos, &ComparisonConfig{
		ComparisonType: comparisonType,
		Value:          value,
	})
}

// AddSavePos appends a position store. When persistent is true the saved
// position survives engine restarts.
func (g *Graph) AddSavePos(pos Position, persistent bool) *Node {
	return g.addNode(KindSavePos, pos, &SavePosConfig{Persistent: persistent})
}

// AddUseItem appends a node consuming the given inventory item.
func (g *Graph) AddUseItem(itemID int, pos Position) *Node {
	return g.addNode(KindUseItem, pos, &UseItemConfig{ItemID: itemID})
}

// AddSendMessage appends a chat send. A positive delay marks the message
// as delayed for the engine.
func (g *Graph) AddSendMessage(message string, pos Position, delayMillis int) *Node {
	return g.addNode(KindSendMessage, pos, &SendMessageConfig{
		Message:       message,
		DelayMillis:   delayMillis,
		SendWithDelay: delayMillis > 0,
	})
}

// AddReceiveMessage appends a trigger matching incoming chat by sender
// and content.
func (g *Graph) AddReceiveMessage(from, content string, pos Position) *Node {
	return g.addNode(KindReceiveMessage, pos, &ReceiveMessageConfig{From: from, Content: content})
}

// AddGroup appends a spatial clustering node producing the center of the
// densest nearby entity group.
func (g *Graph) AddGroup(pos Position, epsilon, maxDistance float64) *Node {
	return g.addNode(KindGroup, pos, &GroupConfig{Epsilon: epsilon, MaxDistance: maxDistance})
}

// AddHotkey appends a hotkey trigger with an unbound key combination.
// The binding is part of the config and may be set by the caller.
func (g *Graph) AddHotkey(pos Position) *Node {
	return g.addNode(KindHotkey, pos, &HotkeyConfig{})
}

// AddPlayerCount appends a node counting nearby players.
func (g *Graph) AddPlayerCount(pos Position, excludeWhitelisted bool) *Node {
	return g.addNode(KindPlayerCount, pos, &PlayerCountConfig{ExcludeWhitelisted: excludeWhitelisted})
}

// AddStatusLevel appends a node reading the given status's level.
func (g *Graph) AddStatusLevel(pos Position, statusType int) *Node {
	return g.addNode(KindStatusLevel, pos, &StatusLevelConfig{StatusType: statusType})
}

// AddSwitchServer appends a server-switch trigger.
func (g *Graph) AddSwitchServer(pos Position) *Node {
	return g.addNode(KindSwitchServer, pos, nil)
}

// AddConnectQuest appends a quest-connect trigger bounded by the given
// maximum realm population.
func (g *Graph) AddConnectQuest(pos Position, maxPop int) *Node {
	return g.addNode(KindConnectQuest, pos, &ConnectQuestConfig{
		QuestTypes: []int{},
		MaxPop:     maxPop,
	})
}

// AddNexus appends a return-to-hub trigger.
func (g *Graph) AddNexus(pos Position) *Node {
	return g.addNode(KindNexus, pos, nil)
}

// AddResetTileCache appends a tile-cache reset trigger.
func (g *Graph) AddResetTileCache(pos Position) *Node {
	return g.addNode(KindResetTileCache, pos, nil)
}

// AddOffsetPos appends a node offsetting its input position by distance,
// used to keep a standoff gap from a movement target.
func (g *Graph) AddOffsetPos(pos Position, distance float64) *Node {
	return g.addNode(KindOffsetPos, pos, &OffsetPosConfig{Distance: distance})
}
