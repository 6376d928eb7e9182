package store

import (
	"github.com/AndrivA89/brain-dump/internal/domain"
)

func (s *Store) AddNode(notebookID string, draft domain.NodeDraft) (domain.Node, error) {
	if !s.HasNotebook(notebookID) {
		return domain.Node{}, domain.NewNotFound("notebook %s", notebookID)
	}
	if err := validateStruct(draft); err != nil {
		return domain.Node{}, err
	}

	now := s.clock.Now()
	n := domain.Node{
		ID:         s.ids.NewID(),
		NotebookID: notebookID,
		Type:       draft.Type,
		Content:    draft.Content,
		Position:   draft.Position,
		Size:       draft.Size,
		Tag:        draft.Tag,
		Pinned:     draft.Pinned,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.nodes[n.ID] = n
	return n, nil
}

func (s *Store) UpdateNode(nodeID string, patch domain.NodePatch) (domain.Node, error) {
	n, ok := s.nodes[nodeID]
	if !ok {
		return domain.Node{}, domain.NewNotFound("node %s", nodeID)
	}
	if patch.IsEmpty() {
		return domain.Node{}, domain.NewInvalidInput("nothing to update on node %s", nodeID)
	}
	if err := validateStruct(patch); err != nil {
		return domain.Node{}, err
	}
	if patch.Tag != nil && !patch.Tag.Valid() {
		return domain.Node{}, domain.NewInvalidInput("unknown tag %q", *patch.Tag)
	}

	n = patch.Apply(n)
	n.UpdatedAt = s.clock.Now()
	s.nodes[nodeID] = n
	return n, nil
}

func (s *Store) MoveNode(nodeID string, to domain.Position) (domain.Node, error) {
	n, ok := s.nodes[nodeID]
	if !ok {
		return domain.Node{}, domain.NewNotFound("node %s", nodeID)
	}
	if err := validatePosition(to); err != nil {
		return domain.Node{}, err
	}

	n.Position = to
	n.UpdatedAt = s.clock.Now()
	s.nodes[nodeID] = n
	return n, nil
}

// DeleteNode removes the node and returns the connections that went with it.
func (s *Store) DeleteNode(nodeID string) (domain.Node, []domain.Connection, error) {
	n, ok := s.nodes[nodeID]
	if !ok {
		return domain.Node{}, nil, domain.NewNotFound("node %s", nodeID)
	}

	removed := s.ConnectionsOfNode(nodeID)
	for _, c := range removed {
		delete(s.connections, c.ID)
	}
	delete(s.nodes, nodeID)
	return n, removed, nil
}

// PutNode inserts or replaces an exact node snapshot.
func (s *Store) PutNode(n domain.Node) error {
	if !s.HasNotebook(n.NotebookID) {
		return domain.NewNotFound("notebook %s", n.NotebookID)
	}
	if err := validateNode(n); err != nil {
		return err
	}
	s.nodes[n.ID] = n
	return nil
}

// RemoveNode deletes a node that has no connections left.
func (s *Store) RemoveNode(nodeID string) error {
	if _, ok := s.nodes[nodeID]; !ok {
		return domain.NewNotFound("node %s", nodeID)
	}
	if len(s.ConnectionsOfNode(nodeID)) > 0 {
		return domain.NewInvalidConnection("node %s still has connections", nodeID)
	}
	delete(s.nodes, nodeID)
	return nil
}

func (s *Store) Node(id string) (domain.Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

func (s *Store) NodesByNotebook(notebookID string) []domain.Node {
	var out []domain.Node
	for _, n := range s.nodes {
		if n.NotebookID == notebookID {
			out = append(out, n)
		}
	}
	sortNodes(out)
	return out
}

func validateNode(n domain.Node) error {
	if n.ID == "" {
		return domain.NewInvalidInput("node id is required")
	}
	return validateStruct(domain.NodeDraft{
		Type:     n.Type,
		Content:  n.Content,
		Position: n.Position,
		Size:     n.Size,
		Tag:      n.Tag,
		Pinned:   n.Pinned,
	})
}
