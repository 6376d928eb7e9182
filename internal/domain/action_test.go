package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionJSONKeepsVariant(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	node := Node{
		ID:         "n1",
		NotebookID: "nb1",
		Type:       CodeNode,
		Content:    "fmt.Println()",
		Position:   Position{X: 1, Y: 2},
		Size:       Size{Width: 3, Height: 4},
		Tag:        TagBug,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	conn := Connection{ID: "c1", NotebookID: "nb1", SourceNodeID: "n1", TargetNodeID: "n2", CreatedAt: at}
	stack := []Action{
		NewAction(AddNodeData{Node: node}, at),
		NewAction(DeleteNodeData{Node: node, Connections: []Connection{conn}}, at),
		NewAction(MoveNodeData{NodeID: "n1", From: Position{}, To: Position{X: 5}, FromUpdatedAt: at, ToUpdatedAt: at}, at),
		NewAction(DisconnectNodesData{Connection: conn}, at),
	}

	raw, err := json.Marshal(stack)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"deleteNode"`)

	var decoded []Action
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, stack, decoded)

	_, isDelete := decoded[1].Data.(DeleteNodeData)
	assert.True(t, isDelete, "Payload decodes into the concrete variant")
}

func TestActionJSONRejectsUnknownType(t *testing.T) {
	var a Action
	err := json.Unmarshal([]byte(`{"type":"resizeNode","timestamp":"2024-03-01T09:00:00Z","data":{}}`), &a)
	assert.Error(t, err)
}

func TestErrorHelpersSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("moving node: %w", NewNotFound("node %s", "n1"))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsInvalidInput(err))
	assert.Equal(t, "moving node: NOT_FOUND: node n1", err.Error())

	internal := NewInternal("replay moveNode", NewNotFound("node n1"))
	assert.True(t, IsInternal(internal))
	assert.True(t, errors.Is(internal, internal.(*AppError).Err))
}

func TestNotebookStateOnly(t *testing.T) {
	state := NotebookState{
		Notebooks:          []Notebook{{ID: "a"}, {ID: "b"}},
		Nodes:              []Node{{ID: "n1", NotebookID: "a"}, {ID: "n2", NotebookID: "b"}},
		Connections:        []Connection{{ID: "c1", NotebookID: "b"}},
		SelectedNotebookID: "b",
		UndoStacks:         map[string][]Action{"a": {NewAction(AddNodeData{}, time.Time{})}},
		RedoStacks:         map[string][]Action{},
	}

	only := state.Only("b")
	assert.Equal(t, []Notebook{{ID: "b"}}, only.Notebooks)
	assert.Equal(t, []Node{{ID: "n2", NotebookID: "b"}}, only.Nodes)
	assert.Len(t, only.Connections, 1)
	assert.Equal(t, "b", only.SelectedNotebookID)
	assert.Empty(t, only.UndoStacks)
}
