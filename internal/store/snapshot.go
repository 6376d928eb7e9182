package store

import (
	"sort"

	"github.com/AndrivA89/brain-dump/internal/domain"
)

// Collections is a copy of everything the store holds, in stable order.
type Collections struct {
	Notebooks   []domain.Notebook
	Nodes       []domain.Node
	Connections []domain.Connection
}

func (s *Store) Snapshot() Collections {
	out := Collections{
		Notebooks:   s.Notebooks(),
		Nodes:       make([]domain.Node, 0, len(s.nodes)),
		Connections: make([]domain.Connection, 0, len(s.connections)),
	}
	for _, n := range s.nodes {
		out.Nodes = append(out.Nodes, n)
	}
	for _, c := range s.connections {
		out.Connections = append(out.Connections, c)
	}
	sortNodes(out.Nodes)
	sortConnections(out.Connections)
	return out
}

// Restore replaces the store contents. Nothing changes if any node or
// connection refers to something missing.
func (s *Store) Restore(c Collections) error {
	next := New(s.ids, s.clock)
	for _, nb := range c.Notebooks {
		if nb.ID == "" {
			return domain.NewInvalidInput("notebook id is required")
		}
		next.notebooks[nb.ID] = nb
	}
	for _, n := range c.Nodes {
		if err := next.PutNode(n); err != nil {
			return err
		}
	}
	for _, conn := range c.Connections {
		if err := next.PutConnection(conn); err != nil {
			return err
		}
	}

	s.notebooks = next.notebooks
	s.nodes = next.nodes
	s.connections = next.connections
	return nil
}

func sortNotebooks(nbs []domain.Notebook) {
	sort.Slice(nbs, func(i, j int) bool {
		if !nbs[i].CreatedAt.Equal(nbs[j].CreatedAt) {
			return nbs[i].CreatedAt.Before(nbs[j].CreatedAt)
		}
		return nbs[i].ID < nbs[j].ID
	})
}

func sortNodes(nodes []domain.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		if !nodes[i].CreatedAt.Equal(nodes[j].CreatedAt) {
			return nodes[i].CreatedAt.Before(nodes[j].CreatedAt)
		}
		return nodes[i].ID < nodes[j].ID
	})
}

func sortConnections(conns []domain.Connection) {
	sort.Slice(conns, func(i, j int) bool {
		if !conns[i].CreatedAt.Equal(conns[j].CreatedAt) {
			return conns[i].CreatedAt.Before(conns[j].CreatedAt)
		}
		return conns[i].ID < conns[j].ID
	})
}
