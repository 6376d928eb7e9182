package usecase

import (
	"fmt"
	"time"

	"github.com/AndrivA89/brain-dump/internal/domain"
	"github.com/AndrivA89/brain-dump/internal/history"
)

// atomically rolls the store back if a replay fails halfway.
func (uc *NotebookUseCase) atomically(apply history.ApplyFunc) history.ApplyFunc {
	return func(a domain.Action) error {
		before := uc.store.Snapshot()
		if err := apply(a); err != nil {
			if restoreErr := uc.store.Restore(before); restoreErr != nil {
				return domain.NewInternal("roll back failed replay", restoreErr)
			}
			return domain.NewInternal(fmt.Sprintf("replay %s", a.Type), err)
		}
		return nil
	}
}

// revert applies the inverse of a recorded action.
func (uc *NotebookUseCase) revert(a domain.Action) error {
	switch d := a.Data.(type) {
	case domain.AddNodeData:
		return uc.store.RemoveNode(d.Node.ID)
	case domain.DeleteNodeData:
		return uc.restoreNode(d.Node, d.Connections)
	case domain.EditNodeData:
		return uc.store.PutNode(d.Before)
	case domain.MoveNodeData:
		return uc.placeNode(d.NodeID, d.From, d.FromUpdatedAt)
	case domain.ConnectNodesData:
		_, err := uc.store.DeleteConnection(d.Connection.ID)
		return err
	case domain.DisconnectNodesData:
		return uc.store.PutConnection(d.Connection)
	default:
		return fmt.Errorf("unsupported action payload %T", a.Data)
	}
}

// reapply performs a recorded action again after it was undone.
func (uc *NotebookUseCase) reapply(a domain.Action) error {
	switch d := a.Data.(type) {
	case domain.AddNodeData:
		return uc.store.PutNode(d.Node)
	case domain.DeleteNodeData:
		for _, c := range d.Connections {
			if _, err := uc.store.DeleteConnection(c.ID); err != nil {
				return err
			}
		}
		return uc.store.RemoveNode(d.Node.ID)
	case domain.EditNodeData:
		return uc.store.PutNode(d.After)
	case domain.MoveNodeData:
		return uc.placeNode(d.NodeID, d.To, d.ToUpdatedAt)
	case domain.ConnectNodesData:
		return uc.store.PutConnection(d.Connection)
	case domain.DisconnectNodesData:
		_, err := uc.store.DeleteConnection(d.Connection.ID)
		return err
	default:
		return fmt.Errorf("unsupported action payload %T", a.Data)
	}
}

func (uc *NotebookUseCase) restoreNode(n domain.Node, conns []domain.Connection) error {
	if _, exists := uc.store.Node(n.ID); exists {
		return domain.NewInvalidInput("node %s already exists", n.ID)
	}
	if err := uc.store.PutNode(n); err != nil {
		return err
	}
	for _, c := range conns {
		if err := uc.store.PutConnection(c); err != nil {
			return err
		}
	}
	return nil
}

func (uc *NotebookUseCase) placeNode(nodeID string, pos domain.Position, updatedAt time.Time) error {
	n, ok := uc.store.Node(nodeID)
	if !ok {
		return domain.NewNotFound("node %s", nodeID)
	}
	n.Position = pos
	n.UpdatedAt = updatedAt
	return uc.store.PutNode(n)
}
