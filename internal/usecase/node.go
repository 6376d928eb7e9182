package usecase

import (
	"github.com/AndrivA89/brain-dump/internal/domain"
)

func (uc *NotebookUseCase) AddNode(notebookID string, draft domain.NodeDraft) (domain.Node, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	n, err := uc.store.AddNode(notebookID, draft)
	if err != nil {
		return domain.Node{}, err
	}
	uc.record(notebookID, domain.AddNodeData{Node: n})
	return n, nil
}

// EditNode changes content, type, tag, pin state or size.
func (uc *NotebookUseCase) EditNode(nodeID string, patch domain.NodePatch) (domain.Node, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	before, ok := uc.store.Node(nodeID)
	if !ok {
		return domain.Node{}, domain.NewNotFound("node %s", nodeID)
	}
	after, err := uc.store.UpdateNode(nodeID, patch)
	if err != nil {
		return domain.Node{}, err
	}
	uc.record(before.NotebookID, domain.EditNodeData{Before: before, After: after})
	return after, nil
}

func (uc *NotebookUseCase) SetPinned(nodeID string, pinned bool) (domain.Node, error) {
	return uc.EditNode(nodeID, domain.NodePatch{Pinned: &pinned})
}

func (uc *NotebookUseCase) MoveNode(nodeID string, to domain.Position) (domain.Node, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	before, ok := uc.store.Node(nodeID)
	if !ok {
		return domain.Node{}, domain.NewNotFound("node %s", nodeID)
	}
	after, err := uc.store.MoveNode(nodeID, to)
	if err != nil {
		return domain.Node{}, err
	}
	uc.record(before.NotebookID, domain.MoveNodeData{
		NodeID:        nodeID,
		From:          before.Position,
		To:            after.Position,
		FromUpdatedAt: before.UpdatedAt,
		ToUpdatedAt:   after.UpdatedAt,
	})
	return after, nil
}

// DeleteNode removes the node and its connections as one undoable step.
func (uc *NotebookUseCase) DeleteNode(nodeID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	n, conns, err := uc.store.DeleteNode(nodeID)
	if err != nil {
		return err
	}
	uc.record(n.NotebookID, domain.DeleteNodeData{Node: n, Connections: conns})
	return nil
}

func (uc *NotebookUseCase) ConnectNodes(sourceNodeID, targetNodeID string) (domain.Connection, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	c, err := uc.store.AddConnection(sourceNodeID, targetNodeID)
	if err != nil {
		return domain.Connection{}, err
	}
	uc.record(c.NotebookID, domain.ConnectNodesData{Connection: c})
	return c, nil
}

func (uc *NotebookUseCase) DisconnectNodes(connectionID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	c, err := uc.store.DeleteConnection(connectionID)
	if err != nil {
		return err
	}
	uc.record(c.NotebookID, domain.DisconnectNodesData{Connection: c})
	return nil
}

func (uc *NotebookUseCase) Node(nodeID string) (domain.Node, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	n, ok := uc.store.Node(nodeID)
	if !ok {
		return domain.Node{}, domain.NewNotFound("node %s", nodeID)
	}
	return n, nil
}

func (uc *NotebookUseCase) Nodes(notebookID string) ([]domain.Node, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.store.HasNotebook(notebookID) {
		return nil, domain.NewNotFound("notebook %s", notebookID)
	}
	return uc.store.NodesByNotebook(notebookID), nil
}

func (uc *NotebookUseCase) Connections(notebookID string) ([]domain.Connection, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.store.HasNotebook(notebookID) {
		return nil, domain.NewNotFound("notebook %s", notebookID)
	}
	return uc.store.ConnectionsByNotebook(notebookID), nil
}
