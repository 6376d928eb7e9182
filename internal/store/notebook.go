package store

import (
	"strings"

	"github.com/AndrivA89/brain-dump/internal/domain"
)

func (s *Store) CreateNotebook(label, color, description string) (domain.Notebook, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.Notebook{}, domain.NewInvalidInput("notebook label is required")
	}

	now := s.clock.Now()
	nb := domain.Notebook{
		ID:          s.ids.NewID(),
		Label:       label,
		Color:       color,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.notebooks[nb.ID] = nb
	return nb, nil
}

func (s *Store) UpdateNotebook(id string, patch domain.NotebookPatch) (domain.Notebook, error) {
	nb, ok := s.notebooks[id]
	if !ok {
		return domain.Notebook{}, domain.NewNotFound("notebook %s", id)
	}
	if patch.IsEmpty() {
		return domain.Notebook{}, domain.NewInvalidInput("nothing to update on notebook %s", id)
	}

	if patch.Label != nil {
		label := strings.TrimSpace(*patch.Label)
		if label == "" {
			return domain.Notebook{}, domain.NewInvalidInput("notebook label is required")
		}
		nb.Label = label
	}
	if patch.Color != nil {
		nb.Color = *patch.Color
	}
	if patch.Description != nil {
		nb.Description = *patch.Description
	}
	nb.UpdatedAt = s.clock.Now()
	s.notebooks[id] = nb
	return nb, nil
}

// DeleteNotebook removes the notebook together with its nodes and connections.
func (s *Store) DeleteNotebook(id string) error {
	if _, ok := s.notebooks[id]; !ok {
		return domain.NewNotFound("notebook %s", id)
	}

	for cid, c := range s.connections {
		if c.NotebookID == id {
			delete(s.connections, cid)
		}
	}
	for nid, n := range s.nodes {
		if n.NotebookID == id {
			delete(s.nodes, nid)
		}
	}
	delete(s.notebooks, id)
	return nil
}

func (s *Store) Notebook(id string) (domain.Notebook, bool) {
	nb, ok := s.notebooks[id]
	return nb, ok
}

func (s *Store) HasNotebook(id string) bool {
	_, ok := s.notebooks[id]
	return ok
}

func (s *Store) Notebooks() []domain.Notebook {
	out := make([]domain.Notebook, 0, len(s.notebooks))
	for _, nb := range s.notebooks {
		out = append(out, nb)
	}
	sortNotebooks(out)
	return out
}
