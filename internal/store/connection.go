package store

import (
	"github.com/AndrivA89/brain-dump/internal/domain"
)

func (s *Store) AddConnection(sourceNodeID, targetNodeID string) (domain.Connection, error) {
	notebookID, err := s.checkEndpoints(sourceNodeID, targetNodeID)
	if err != nil {
		return domain.Connection{}, err
	}

	c := domain.Connection{
		ID:           s.ids.NewID(),
		NotebookID:   notebookID,
		SourceNodeID: sourceNodeID,
		TargetNodeID: targetNodeID,
		CreatedAt:    s.clock.Now(),
	}
	s.connections[c.ID] = c
	return c, nil
}

func (s *Store) DeleteConnection(id string) (domain.Connection, error) {
	c, ok := s.connections[id]
	if !ok {
		return domain.Connection{}, domain.NewNotFound("connection %s", id)
	}
	delete(s.connections, id)
	return c, nil
}

// PutConnection restores an exact connection snapshot.
func (s *Store) PutConnection(c domain.Connection) error {
	if c.ID == "" {
		return domain.NewInvalidInput("connection id is required")
	}
	if _, exists := s.connections[c.ID]; exists {
		return domain.NewInvalidConnection("connection %s already exists", c.ID)
	}
	notebookID, err := s.checkEndpoints(c.SourceNodeID, c.TargetNodeID)
	if err != nil {
		return err
	}
	if notebookID != c.NotebookID {
		return domain.NewInvalidConnection("connection %s belongs to notebook %s, endpoints to %s",
			c.ID, c.NotebookID, notebookID)
	}
	s.connections[c.ID] = c
	return nil
}

func (s *Store) Connection(id string) (domain.Connection, bool) {
	c, ok := s.connections[id]
	return c, ok
}

func (s *Store) ConnectionsByNotebook(notebookID string) []domain.Connection {
	var out []domain.Connection
	for _, c := range s.connections {
		if c.NotebookID == notebookID {
			out = append(out, c)
		}
	}
	sortConnections(out)
	return out
}

func (s *Store) ConnectionsOfNode(nodeID string) []domain.Connection {
	var out []domain.Connection
	for _, c := range s.connections {
		if c.Touches(nodeID) {
			out = append(out, c)
		}
	}
	sortConnections(out)
	return out
}

// checkEndpoints returns the notebook shared by both endpoints.
func (s *Store) checkEndpoints(sourceNodeID, targetNodeID string) (string, error) {
	if sourceNodeID == targetNodeID {
		return "", domain.NewInvalidConnection("node %s cannot connect to itself", sourceNodeID)
	}
	source, ok := s.nodes[sourceNodeID]
	if !ok {
		return "", domain.NewInvalidConnection("source node %s does not exist", sourceNodeID)
	}
	target, ok := s.nodes[targetNodeID]
	if !ok {
		return "", domain.NewInvalidConnection("target node %s does not exist", targetNodeID)
	}
	if source.NotebookID != target.NotebookID {
		return "", domain.NewInvalidConnection("nodes %s and %s are in different notebooks",
			sourceNodeID, targetNodeID)
	}
	for _, c := range s.connections {
		if c.SourceNodeID == sourceNodeID && c.TargetNodeID == targetNodeID {
			return "", domain.NewInvalidConnection("nodes %s and %s are already connected",
				sourceNodeID, targetNodeID)
		}
	}
	return source.NotebookID, nil
}
