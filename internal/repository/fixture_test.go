package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AndrivA89/brain-dump/internal/domain"
	"github.com/AndrivA89/brain-dump/internal/history"
	"github.com/AndrivA89/brain-dump/internal/store"
	"github.com/AndrivA89/brain-dump/internal/store/storetest"
	"github.com/AndrivA89/brain-dump/internal/usecase"
)

func newUseCase(repo usecase.StateRepository) *usecase.NotebookUseCase {
	st := store.New(&storetest.SequenceIDs{Prefix: "id-"}, storetest.NewStepClock())
	return usecase.NewNotebookUseCase(st, history.New(0), repo)
}

// buildState creates two notebooks with nodes, connections and history in both
// directions.
func buildState(t *testing.T, uc *usecase.NotebookUseCase) (work, home domain.Notebook) {
	t.Helper()

	work, err := uc.CreateNotebook("Work", "#336699", "sprint notes")
	require.NoError(t, err)
	home, err = uc.CreateNotebook("Home", "", "")
	require.NoError(t, err)

	a, err := uc.AddNode(work.ID, domain.NodeDraft{
		Type:     domain.TextNode,
		Content:  "ship it",
		Position: domain.Position{X: 10.5, Y: -3},
		Size:     domain.Size{Width: 120, Height: 40},
		Tag:      domain.TagDecision,
	})
	require.NoError(t, err)
	b, err := uc.AddNode(work.ID, domain.NodeDraft{
		Type:    domain.CodeNode,
		Content: "go test ./...",
		Size:    domain.Size{Width: 80, Height: 20},
		Pinned:  true,
	})
	require.NoError(t, err)
	c, err := uc.AddNode(work.ID, domain.NodeDraft{Type: domain.LinkNode, Content: "https://go.dev"})
	require.NoError(t, err)

	_, err = uc.ConnectNodes(a.ID, b.ID)
	require.NoError(t, err)
	_, err = uc.ConnectNodes(b.ID, c.ID)
	require.NoError(t, err)
	_, err = uc.MoveNode(c.ID, domain.Position{X: 7, Y: 7})
	require.NoError(t, err)
	require.NoError(t, uc.DeleteNode(a.ID))
	_, err = uc.Undo(work.ID)
	require.NoError(t, err)
	_, err = uc.Undo(work.ID)
	require.NoError(t, err)

	_, err = uc.AddNode(home.ID, domain.NodeDraft{Type: domain.TextNode, Content: "groceries"})
	require.NoError(t, err)
	require.NoError(t, uc.SelectNotebook(home.ID))
	return work, home
}
