package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/AndrivA89/brain-dump/internal/domain"
	"github.com/AndrivA89/brain-dump/internal/history"
	"github.com/AndrivA89/brain-dump/internal/store"
)

// NotebookUseCase is the mutation API of the canvas. Every forward change to
// nodes and connections is recorded in the notebook's history.
type NotebookUseCase struct {
	mu       sync.Mutex
	store    *store.Store
	history  *history.Log
	repo     StateRepository
	selected string
}

func NewNotebookUseCase(st *store.Store, log *history.Log, repo StateRepository) *NotebookUseCase {
	return &NotebookUseCase{
		store:   st,
		history: log,
		repo:    repo,
	}
}

func (uc *NotebookUseCase) CreateNotebook(label, color, description string) (domain.Notebook, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	nb, err := uc.store.CreateNotebook(label, color, description)
	if err != nil {
		return domain.Notebook{}, err
	}
	if uc.selected == "" {
		uc.selected = nb.ID
	}
	return nb, nil
}

// UpdateNotebook renames, recolors or redescribes a notebook. It is not part
// of the node history.
func (uc *NotebookUseCase) UpdateNotebook(id string, patch domain.NotebookPatch) (domain.Notebook, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.store.UpdateNotebook(id, patch)
}

func (uc *NotebookUseCase) DeleteNotebook(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.store.DeleteNotebook(id); err != nil {
		return err
	}
	uc.history.Clear(id)
	if uc.selected == id {
		uc.selected = ""
	}
	return nil
}

func (uc *NotebookUseCase) SelectNotebook(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if id != "" && !uc.store.HasNotebook(id) {
		return domain.NewNotFound("notebook %s", id)
	}
	uc.selected = id
	return nil
}

func (uc *NotebookUseCase) SelectedNotebook() (domain.Notebook, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.store.Notebook(uc.selected)
}

func (uc *NotebookUseCase) Notebooks() []domain.Notebook {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.store.Notebooks()
}

// Undo reverts the latest change in the notebook. It returns false when the
// history is empty.
func (uc *NotebookUseCase) Undo(notebookID string) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.store.HasNotebook(notebookID) {
		return false, domain.NewNotFound("notebook %s", notebookID)
	}
	return uc.history.Undo(notebookID, uc.atomically(uc.revert))
}

func (uc *NotebookUseCase) Redo(notebookID string) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.store.HasNotebook(notebookID) {
		return false, domain.NewNotFound("notebook %s", notebookID)
	}
	return uc.history.Redo(notebookID, uc.atomically(uc.reapply))
}

// HistoryDepths reports how many undo and redo steps are available.
func (uc *NotebookUseCase) HistoryDepths(notebookID string) (undo, redo int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.history.Depths(notebookID)
}

// State returns a copy of everything, including both history stacks.
func (uc *NotebookUseCase) State() domain.NotebookState {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.state()
}

func (uc *NotebookUseCase) state() domain.NotebookState {
	snap := uc.store.Snapshot()
	undo, redo := uc.history.Stacks()
	return domain.NotebookState{
		Notebooks:          snap.Notebooks,
		Nodes:              snap.Nodes,
		Connections:        snap.Connections,
		SelectedNotebookID: uc.selected,
		UndoStacks:         undo,
		RedoStacks:         redo,
	}
}

// Replace swaps in a complete state, e.g. one read from storage.
func (uc *NotebookUseCase) Replace(state domain.NotebookState) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	err := uc.store.Restore(store.Collections{
		Notebooks:   state.Notebooks,
		Nodes:       state.Nodes,
		Connections: state.Connections,
	})
	if err != nil {
		return fmt.Errorf("restore notebook state: %w", err)
	}

	uc.history.Restore(liveStacks(uc.store, state.UndoStacks), liveStacks(uc.store, state.RedoStacks))
	uc.selected = ""
	if uc.store.HasNotebook(state.SelectedNotebookID) {
		uc.selected = state.SelectedNotebookID
	}
	return nil
}

func (uc *NotebookUseCase) Load(ctx context.Context) error {
	if uc.repo == nil {
		return domain.NewInternal("no state repository configured", nil)
	}
	state, err := uc.repo.Load(ctx, "")
	if err != nil {
		return fmt.Errorf("load notebook state: %w", err)
	}
	return uc.Replace(*state)
}

func (uc *NotebookUseCase) Save(ctx context.Context) error {
	if uc.repo == nil {
		return domain.NewInternal("no state repository configured", nil)
	}
	state := uc.State()
	if err := uc.repo.Save(ctx, &state); err != nil {
		return fmt.Errorf("save notebook state: %w", err)
	}
	return nil
}

func (uc *NotebookUseCase) record(notebookID string, data domain.ActionData) {
	uc.history.Record(notebookID, domain.NewAction(data, uc.store.Now()))
}

func liveStacks(st *store.Store, stacks map[string][]domain.Action) map[string][]domain.Action {
	out := make(map[string][]domain.Action, len(stacks))
	for id, stack := range stacks {
		if st.HasNotebook(id) {
			out[id] = stack
		}
	}
	return out
}
