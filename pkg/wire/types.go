package wire

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/stategraph/pkg/workflow"
)

// Version is the wire-format version emitted in every document.
const Version = "1.0"

// Reserved node-record keys. Config structs use distinct field names by
// construction (they are typed per kind), so collisions cannot occur.
var reservedKeys = []string{"kind", "position", "inPins", "outPins"}

// Document is the top-level wire structure.
type Document struct {
	Links   []LinkRecord `json:"links"`
	Nodes   []NodeRecord `json:"nodes"`
	Version string       `json:"version"`
}

// LinkRecord is one directed edge: leftPinId always references an
// output-array pin, rightPinId an input-array pin.
type LinkRecord struct {
	LeftPinID  int `json:"leftPinId"`
	RightPinID int `json:"rightPinId"`
}

// PinRecord is the wire form of a pin. Types are recovered from the kind
// template on read and are not serialized.
type PinRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NodeRecord is the wire form of a node. Config fields are merged flatly
// alongside the reserved keys; see MarshalJSON/UnmarshalJSON.
type NodeRecord struct {
	Kind     workflow.Kind
	Position workflow.Position
	InPins   []PinRecord
	OutPins  []PinRecord
	Config   workflow.Config
}

// MarshalJSON flattens the record into a single JSON object: the reserved
// keys plus every config field at top level. Empty pin arrays are omitted.
// encoding/json sorts map keys, which keeps the output deterministic.
func (r NodeRecord) MarshalJSON() ([]byte, error) {
	obj := make(map[string]json.RawMessage, 4)

	kind, err := json.Marshal(r.Kind)
	if err != nil {
		return nil, err
	}
	obj["kind"] = kind

	pos, err := json.Marshal(r.Position)
	if err != nil {
		return nil, err
	}
	obj["position"] = pos

	if len(r.InPins) > 0 {
		pins, err := json.Marshal(r.InPins)
		if err != nil {
			return nil, err
		}
		obj["inPins"] = pins
	}
	if len(r.OutPins) > 0 {
		pins, err := json.Marshal(r.OutPins)
		if err != nil {
			return nil, err
		}
		obj["outPins"] = pins
	}

	if r.Config != nil {
		cfg, err := json.Marshal(r.Config)
		if err != nil {
			return nil, fmt.Errorf("marshal %s config: %w", r.Kind, err)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(cfg, &fields); err != nil {
			return nil, fmt.Errorf("flatten %s config: %w", r.Kind, err)
		}
		for k, v := range fields {
			obj[k] = v
		}
	}

	return json.Marshal(obj)
}

// UnmarshalJSON splits a flat node object back into the reserved fields
// and the kind's typed config struct. Unknown kinds decode with a nil
// config; their extra fields are dropped.
func (r *NodeRecord) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	if raw, ok := obj["kind"]; ok {
		if err := json.Unmarshal(raw, &r.Kind); err != nil {
			return fmt.Errorf("kind: %w", err)
		}
	}
	if raw, ok := obj["position"]; ok {
		if err := json.Unmarshal(raw, &r.Position); err != nil {
			return fmt.Errorf("position: %w", err)
		}
	}
	if raw, ok := obj["inPins"]; ok {
		if err := json.Unmarshal(raw, &r.InPins); err != nil {
			return fmt.Errorf("inPins: %w", err)
		}
	}
	if raw, ok := obj["outPins"]; ok {
		if err := json.Unmarshal(raw, &r.OutPins); err != nil {
			return fmt.Errorf("outPins: %w", err)
		}
	}

	cfg := workflow.NewConfig(r.Kind)
	if cfg == nil {
		return nil
	}
	for _, k := range reservedKeys {
		delete(obj, k)
	}
	rest, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(rest, cfg); err != nil {
		return fmt.Errorf("%s config: %w", r.Kind, err)
	}
	r.Config = cfg
	return nil
}
