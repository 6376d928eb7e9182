package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type ActionType string

const (
	MoveNodeAction        ActionType = "moveNode"
	EditNodeAction        ActionType = "editNode"
	DeleteNodeAction      ActionType = "deleteNode"
	AddNodeAction         ActionType = "addNode"
	ConnectNodesAction    ActionType = "connectNodes"
	DisconnectNodesAction ActionType = "disconnectNodes"
)

// Action is one reversible entry of a notebook's history.
type Action struct {
	Type      ActionType `json:"type" yaml:"type"`
	Timestamp time.Time  `json:"timestamp" yaml:"timestamp"`
	Data      ActionData `json:"data" yaml:"data"`
}

// ActionData is implemented only by the payload types below.
type ActionData interface {
	actionType() ActionType
}

type AddNodeData struct {
	Node Node `json:"node" yaml:"node"`
}

type DeleteNodeData struct {
	Node        Node         `json:"node" yaml:"node"`
	Connections []Connection `json:"connections" yaml:"connections"`
}

type EditNodeData struct {
	Before Node `json:"before" yaml:"before"`
	After  Node `json:"after" yaml:"after"`
}

type MoveNodeData struct {
	NodeID        string    `json:"node_id" yaml:"node_id"`
	From          Position  `json:"from" yaml:"from"`
	To            Position  `json:"to" yaml:"to"`
	FromUpdatedAt time.Time `json:"from_updated_at" yaml:"from_updated_at"`
	ToUpdatedAt   time.Time `json:"to_updated_at" yaml:"to_updated_at"`
}

type ConnectNodesData struct {
	Connection Connection `json:"connection" yaml:"connection"`
}

type DisconnectNodesData struct {
	Connection Connection `json:"connection" yaml:"connection"`
}

func (AddNodeData) actionType() ActionType         { return AddNodeAction }
func (DeleteNodeData) actionType() ActionType      { return DeleteNodeAction }
func (EditNodeData) actionType() ActionType        { return EditNodeAction }
func (MoveNodeData) actionType() ActionType        { return MoveNodeAction }
func (ConnectNodesData) actionType() ActionType    { return ConnectNodesAction }
func (DisconnectNodesData) actionType() ActionType { return DisconnectNodesAction }

// NewAction tags data with its action type.
func NewAction(data ActionData, at time.Time) Action {
	return Action{
		Type:      data.actionType(),
		Timestamp: at,
		Data:      data,
	}
}

type rawAction struct {
	Type      ActionType      `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

func (a *Action) UnmarshalJSON(b []byte) error {
	var raw rawAction
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var data ActionData
	switch raw.Type {
	case AddNodeAction:
		var d AddNodeData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("decode %s payload: %w", raw.Type, err)
		}
		data = d
	case DeleteNodeAction:
		var d DeleteNodeData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("decode %s payload: %w", raw.Type, err)
		}
		data = d
	case EditNodeAction:
		var d EditNodeData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("decode %s payload: %w", raw.Type, err)
		}
		data = d
	case MoveNodeAction:
		var d MoveNodeData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("decode %s payload: %w", raw.Type, err)
		}
		data = d
	case ConnectNodesAction:
		var d ConnectNodesData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("decode %s payload: %w", raw.Type, err)
		}
		data = d
	case DisconnectNodesAction:
		var d DisconnectNodesData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("decode %s payload: %w", raw.Type, err)
		}
		data = d
	default:
		return fmt.Errorf("unknown action type %q", raw.Type)
	}

	*a = Action{Type: raw.Type, Timestamp: raw.Timestamp, Data: data}
	return nil
}
