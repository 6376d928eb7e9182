package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrivA89/brain-dump/internal/domain"
	"github.com/AndrivA89/brain-dump/internal/history"
	"github.com/AndrivA89/brain-dump/internal/store"
	"github.com/AndrivA89/brain-dump/internal/store/storetest"
)

func newTestUseCase(repo StateRepository) *NotebookUseCase {
	st := store.New(&storetest.SequenceIDs{Prefix: "id-"}, storetest.NewStepClock())
	return NewNotebookUseCase(st, history.New(0), repo)
}

func draftAt(content string, x, y float64) domain.NodeDraft {
	return domain.NodeDraft{
		Type:     domain.TextNode,
		Content:  content,
		Position: domain.Position{X: x, Y: y},
		Size:     domain.Size{Width: 10, Height: 10},
	}
}

// entities drops the history so states can be compared before and after undo.
func entities(s domain.NotebookState) domain.NotebookState {
	s.UndoStacks = nil
	s.RedoStacks = nil
	return s
}

func TestAddMoveUndoRedoScenario(t *testing.T) {
	uc := newTestUseCase(nil)

	nb, err := uc.CreateNotebook("Work", "", "")
	require.NoError(t, err)

	n, err := uc.AddNode(nb.ID, draftAt("hi", 0, 0))
	require.NoError(t, err)

	_, err = uc.MoveNode(n.ID, domain.Position{X: 5, Y: 5})
	require.NoError(t, err)

	ok, err := uc.Undo(nb.ID)
	require.NoError(t, err)
	require.True(t, ok)
	got, err := uc.Node(n.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Position{X: 0, Y: 0}, got.Position, "First undo restores the position")

	ok, err = uc.Undo(nb.ID)
	require.NoError(t, err)
	require.True(t, ok)
	_, err = uc.Node(n.ID)
	assert.True(t, domain.IsNotFound(err), "Second undo removes the node")

	_, err = uc.Redo(nb.ID)
	require.NoError(t, err)
	_, err = uc.Redo(nb.ID)
	require.NoError(t, err)
	got, err = uc.Node(n.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Position{X: 5, Y: 5}, got.Position, "Both redos bring back add and move")

	undo, redo := uc.HistoryDepths(nb.ID)
	assert.Equal(t, 2, undo)
	assert.Equal(t, 0, redo)
}

func TestUndoRedoIsIdentity(t *testing.T) {
	uc := newTestUseCase(nil)
	nb, _ := uc.CreateNotebook("Work", "", "")
	a, _ := uc.AddNode(nb.ID, draftAt("a", 0, 0))
	b, _ := uc.AddNode(nb.ID, draftAt("b", 0, 0))
	_, err := uc.ConnectNodes(a.ID, b.ID)
	require.NoError(t, err)

	content := "edited"
	_, err = uc.EditNode(a.ID, domain.NodePatch{Content: &content})
	require.NoError(t, err)

	before := uc.State()
	_, err = uc.Undo(nb.ID)
	require.NoError(t, err)
	_, err = uc.Redo(nb.ID)
	require.NoError(t, err)
	assert.Equal(t, before, uc.State(), "undo then redo changes nothing, history included")
}

func TestNewActionDiscardsRedo(t *testing.T) {
	uc := newTestUseCase(nil)
	nb, _ := uc.CreateNotebook("Work", "", "")
	n, _ := uc.AddNode(nb.ID, draftAt("a", 0, 0))
	require.NoError(t, uc.DeleteNode(n.ID))

	_, err := uc.Undo(nb.ID)
	require.NoError(t, err)
	_, redo := uc.HistoryDepths(nb.ID)
	require.Equal(t, 1, redo)

	_, err = uc.AddNode(nb.ID, draftAt("other", 1, 1))
	require.NoError(t, err)
	_, redo = uc.HistoryDepths(nb.ID)
	assert.Equal(t, 0, redo)

	ok, err := uc.Redo(nb.ID)
	assert.NoError(t, err)
	assert.False(t, ok, "Redo after a new action is a no-op")
}

func TestDeleteNodeUndoRestoresConnections(t *testing.T) {
	uc := newTestUseCase(nil)
	nb, _ := uc.CreateNotebook("Work", "", "")
	a, _ := uc.AddNode(nb.ID, draftAt("a", 0, 0))
	b, _ := uc.AddNode(nb.ID, draftAt("b", 0, 0))
	c, _ := uc.AddNode(nb.ID, draftAt("c", 0, 0))
	ab, _ := uc.ConnectNodes(a.ID, b.ID)
	ca, _ := uc.ConnectNodes(c.ID, a.ID)
	bc, _ := uc.ConnectNodes(b.ID, c.ID)

	before := entities(uc.State())

	require.NoError(t, uc.DeleteNode(a.ID))
	conns, err := uc.Connections(nb.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Connection{bc}, conns, "Only the unrelated connection survives")

	_, err = uc.Undo(nb.ID)
	require.NoError(t, err)
	conns, _ = uc.Connections(nb.ID)
	assert.ElementsMatch(t, []domain.Connection{ab, ca, bc}, conns)
	assert.Equal(t, before, entities(uc.State()))

	_, err = uc.Redo(nb.ID)
	require.NoError(t, err)
	conns, _ = uc.Connections(nb.ID)
	assert.Equal(t, []domain.Connection{bc}, conns)
}

func TestDeleteNotebookRemovesEverything(t *testing.T) {
	uc := newTestUseCase(nil)
	work, _ := uc.CreateNotebook("Work", "", "")
	home, _ := uc.CreateNotebook("Home", "", "")

	w1, _ := uc.AddNode(work.ID, draftAt("w1", 0, 0))
	w2, _ := uc.AddNode(work.ID, draftAt("w2", 0, 0))
	_, _ = uc.ConnectNodes(w1.ID, w2.ID)
	_, _ = uc.Undo(work.ID)

	h1, _ := uc.AddNode(home.ID, draftAt("h1", 0, 0))
	_, _ = uc.MoveNode(h1.ID, domain.Position{X: 3, Y: 3})
	homeBefore := uc.State().Only(home.ID)

	require.NoError(t, uc.DeleteNotebook(work.ID))

	state := uc.State()
	for _, n := range state.Nodes {
		assert.NotEqual(t, work.ID, n.NotebookID)
	}
	for _, c := range state.Connections {
		assert.NotEqual(t, work.ID, c.NotebookID)
	}
	assert.NotContains(t, state.UndoStacks, work.ID)
	assert.NotContains(t, state.RedoStacks, work.ID)
	assert.Equal(t, homeBefore, state.Only(home.ID), "Unrelated notebook is untouched")

	_, err := uc.Undo(work.ID)
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, domain.IsNotFound(uc.DeleteNotebook(work.ID)))
}

func TestDeleteSelectedNotebookClearsSelection(t *testing.T) {
	uc := newTestUseCase(nil)
	work, _ := uc.CreateNotebook("Work", "", "")
	home, _ := uc.CreateNotebook("Home", "", "")

	selected, ok := uc.SelectedNotebook()
	require.True(t, ok)
	assert.Equal(t, work.ID, selected.ID, "First notebook is selected by default")

	require.NoError(t, uc.SelectNotebook(home.ID))
	require.NoError(t, uc.DeleteNotebook(home.ID))
	_, ok = uc.SelectedNotebook()
	assert.False(t, ok)

	assert.True(t, domain.IsNotFound(uc.SelectNotebook(home.ID)))
}

func TestConnectAcrossNotebooksFails(t *testing.T) {
	uc := newTestUseCase(nil)
	work, _ := uc.CreateNotebook("Work", "", "")
	home, _ := uc.CreateNotebook("Home", "", "")
	w, _ := uc.AddNode(work.ID, draftAt("w", 0, 0))
	h, _ := uc.AddNode(home.ID, draftAt("h", 0, 0))

	before := uc.State()
	_, err := uc.ConnectNodes(w.ID, h.ID)
	assert.True(t, domain.IsInvalidConnection(err))
	assert.Equal(t, before, uc.State(), "Failed connect records nothing")
	assert.Empty(t, uc.State().Connections)
}

func TestFailedMutationsRecordNothing(t *testing.T) {
	uc := newTestUseCase(nil)
	nb, _ := uc.CreateNotebook("Work", "", "")
	n, _ := uc.AddNode(nb.ID, draftAt("a", 0, 0))
	before := uc.State()

	_, err := uc.AddNode("missing", draftAt("x", 0, 0))
	assert.True(t, domain.IsNotFound(err))

	_, err = uc.MoveNode(n.ID, domain.Position{X: math.NaN()})
	assert.True(t, domain.IsInvalidInput(err))

	_, err = uc.MoveNode("missing", domain.Position{})
	assert.True(t, domain.IsNotFound(err))

	_, err = uc.EditNode("missing", domain.NodePatch{})
	assert.True(t, domain.IsNotFound(err))

	bad := domain.NodeType("image")
	_, err = uc.EditNode(n.ID, domain.NodePatch{Type: &bad})
	assert.True(t, domain.IsInvalidInput(err))

	assert.True(t, domain.IsNotFound(uc.DeleteNode("missing")))
	assert.True(t, domain.IsNotFound(uc.DisconnectNodes("missing")))

	_, err = uc.ConnectNodes(n.ID, n.ID)
	assert.True(t, domain.IsInvalidConnection(err))

	assert.Equal(t, before, uc.State())
}

func TestEmptyHistoryIsNoop(t *testing.T) {
	uc := newTestUseCase(nil)
	nb, _ := uc.CreateNotebook("Work", "", "")

	ok, err := uc.Undo(nb.ID)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.Redo(nb.ID)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPinAndEditAreUndoable(t *testing.T) {
	uc := newTestUseCase(nil)
	nb, _ := uc.CreateNotebook("Work", "", "")
	n, _ := uc.AddNode(nb.ID, draftAt("a", 0, 0))

	pinned, err := uc.SetPinned(n.ID, true)
	require.NoError(t, err)
	assert.True(t, pinned.Pinned)

	tag := domain.TagDecision
	size := domain.Size{Width: 30, Height: 20}
	kind := domain.CodeNode
	edited, err := uc.EditNode(n.ID, domain.NodePatch{Tag: &tag, Size: &size, Type: &kind})
	require.NoError(t, err)
	assert.Equal(t, domain.TagDecision, edited.Tag)
	assert.Equal(t, size, edited.Size)

	_, _ = uc.Undo(nb.ID)
	_, _ = uc.Undo(nb.ID)
	got, _ := uc.Node(n.ID)
	assert.Equal(t, n, got, "Node is back to its original snapshot")
}

func TestClearTagIsUndoable(t *testing.T) {
	uc := newTestUseCase(nil)
	nb, _ := uc.CreateNotebook("Work", "", "")
	draft := draftAt("a", 0, 0)
	draft.Tag = domain.TagIdea
	n, err := uc.AddNode(nb.ID, draft)
	require.NoError(t, err)

	none := domain.NoTag
	cleared, err := uc.EditNode(n.ID, domain.NodePatch{Tag: &none})
	require.NoError(t, err)
	assert.Equal(t, domain.NoTag, cleared.Tag)

	ok, err := uc.Undo(nb.ID)
	require.NoError(t, err)
	require.True(t, ok)
	got, _ := uc.Node(n.ID)
	assert.Equal(t, domain.TagIdea, got.Tag, "Undo should bring the tag back")
	assert.Equal(t, n, got)

	ok, err = uc.Redo(nb.ID)
	require.NoError(t, err)
	require.True(t, ok)
	got, _ = uc.Node(n.ID)
	assert.Equal(t, cleared, got)
}

func TestDisconnectUndo(t *testing.T) {
	uc := newTestUseCase(nil)
	nb, _ := uc.CreateNotebook("Work", "", "")
	a, _ := uc.AddNode(nb.ID, draftAt("a", 0, 0))
	b, _ := uc.AddNode(nb.ID, draftAt("b", 0, 0))
	conn, _ := uc.ConnectNodes(a.ID, b.ID)

	require.NoError(t, uc.DisconnectNodes(conn.ID))
	conns, _ := uc.Connections(nb.ID)
	assert.Empty(t, conns)

	_, err := uc.Undo(nb.ID)
	require.NoError(t, err)
	conns, _ = uc.Connections(nb.ID)
	assert.Equal(t, []domain.Connection{conn}, conns)
}

func TestRandomSequenceUndoesToStart(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		t.Run(fmt.Sprintf("round %d", round), func(t *testing.T) {
			uc := newTestUseCase(nil)
			nb, _ := uc.CreateNotebook("Work", "", "")
			_, err := uc.AddNode(nb.ID, draftAt("seed", 0, 0))
			require.NoError(t, err)

			start := entities(uc.State())
			depthStart, _ := uc.HistoryDepths(nb.ID)

			ops := 0
			for ops < 15 {
				if performRandomOp(t, uc, nb.ID, rng) {
					ops++
				}
			}
			for i := 0; i < ops; i++ {
				ok, err := uc.Undo(nb.ID)
				require.NoError(t, err)
				require.True(t, ok)
			}

			assert.Equal(t, start, entities(uc.State()))
			depth, _ := uc.HistoryDepths(nb.ID)
			assert.Equal(t, depthStart, depth)
		})
	}
}

// performRandomOp runs one mutation and reports whether it was recorded.
func performRandomOp(t *testing.T, uc *NotebookUseCase, notebookID string, rng *rand.Rand) bool {
	t.Helper()

	nodes, err := uc.Nodes(notebookID)
	require.NoError(t, err)
	conns, err := uc.Connections(notebookID)
	require.NoError(t, err)

	pick := func() domain.Node { return nodes[rng.Intn(len(nodes))] }

	switch rng.Intn(6) {
	case 0:
		_, err = uc.AddNode(notebookID, draftAt("n", float64(rng.Intn(100)), float64(rng.Intn(100))))
	case 1:
		if len(nodes) == 0 {
			return false
		}
		err = uc.DeleteNode(pick().ID)
	case 2:
		if len(nodes) == 0 {
			return false
		}
		content := fmt.Sprintf("c%d", rng.Intn(1000))
		_, err = uc.EditNode(pick().ID, domain.NodePatch{Content: &content})
	case 3:
		if len(nodes) == 0 {
			return false
		}
		_, err = uc.MoveNode(pick().ID, domain.Position{X: rng.Float64(), Y: rng.Float64()})
	case 4:
		if len(nodes) < 2 {
			return false
		}
		_, err = uc.ConnectNodes(pick().ID, pick().ID)
		if domain.IsInvalidConnection(err) {
			return false
		}
	case 5:
		if len(conns) == 0 {
			return false
		}
		err = uc.DisconnectNodes(conns[rng.Intn(len(conns))].ID)
	}
	require.NoError(t, err)
	return true
}

type memoryRepo struct {
	saved   *domain.NotebookState
	loadErr error
}

func (m *memoryRepo) Load(_ context.Context, notebookID string) (*domain.NotebookState, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.saved == nil {
		return &domain.NotebookState{}, nil
	}
	if notebookID != "" {
		only := m.saved.Only(notebookID)
		return &only, nil
	}
	return m.saved, nil
}

func (m *memoryRepo) Save(_ context.Context, state *domain.NotebookState) error {
	m.saved = state
	return nil
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := &memoryRepo{}
	uc := newTestUseCase(repo)
	nb, _ := uc.CreateNotebook("Work", "#00ff00", "")
	a, _ := uc.AddNode(nb.ID, draftAt("a", 0, 0))
	b, _ := uc.AddNode(nb.ID, draftAt("b", 0, 0))
	_, _ = uc.ConnectNodes(a.ID, b.ID)
	_, _ = uc.Undo(nb.ID)

	require.NoError(t, uc.Save(context.Background()))

	reloaded := newTestUseCase(repo)
	require.NoError(t, reloaded.Load(context.Background()))
	assert.Equal(t, uc.State(), reloaded.State())

	_, err := reloaded.Redo(nb.ID)
	require.NoError(t, err, "Restored history is usable")
	conns, _ := reloaded.Connections(nb.ID)
	assert.Len(t, conns, 1)
}

func TestLoadErrors(t *testing.T) {
	uc := newTestUseCase(nil)
	assert.True(t, domain.IsInternal(uc.Load(context.Background())), "Missing repository")

	failing := newTestUseCase(&memoryRepo{loadErr: errors.New("disk gone")})
	assert.Error(t, failing.Load(context.Background()))
}
