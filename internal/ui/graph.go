package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/AndrivA89/brain-dump/internal/domain"
	"github.com/AndrivA89/brain-dump/internal/usecase"
)

// Canvas renders the selected notebook and forwards every user action to the use case.
type Canvas struct {
	useCase *usecase.NotebookUseCase
	window  fyne.Window
	logger  *zap.Logger

	notebookSelect *widget.Select
	notebookIDs    []string
	addNodeButton  *widget.Button
	connectButton  *widget.Button
	disconnectBtn  *widget.Button
	undoButton     *widget.Button
	redoButton     *widget.Button
	graph          *fyne.Container
	scroll         *container.Scroll
	content        fyne.CanvasObject
}

func NewCanvas(uc *usecase.NotebookUseCase, w fyne.Window, logger *zap.Logger) *Canvas {
	c := &Canvas{
		useCase: uc,
		window:  w,
		logger:  logger,
		graph:   container.NewWithoutLayout(),
	}

	c.notebookSelect = widget.NewSelect(nil, c.onNotebookChanged)
	c.notebookSelect.PlaceHolder = "No notebook"
	newNotebookButton := widget.NewButton("New Notebook", c.showNewNotebookDialog)
	c.addNodeButton = widget.NewButton("Add Node", c.showAddNodeDialog)
	c.connectButton = widget.NewButton("Connect", c.showConnectDialog)
	c.disconnectBtn = widget.NewButton("Disconnect", c.showDisconnectDialog)
	c.undoButton = widget.NewButton("Undo", c.undo)
	c.redoButton = widget.NewButton("Redo", c.redo)

	c.scroll = container.NewScroll(c.graph)
	c.scroll.SetMinSize(fyne.NewSize(800, 600))

	buttons := container.NewHBox(
		c.notebookSelect, newNotebookButton,
		widget.NewSeparator(),
		c.addNodeButton, c.connectButton, c.disconnectBtn,
		widget.NewSeparator(),
		c.undoButton, c.redoButton,
	)
	c.content = container.NewBorder(buttons, nil, nil, nil, c.scroll)

	c.Refresh()
	return c
}

func (c *Canvas) Content() fyne.CanvasObject {
	return c.content
}

// Refresh redraws the notebook selector, the graph and the toolbar state.
func (c *Canvas) Refresh() {
	selected, hasSelection := c.useCase.SelectedNotebook()

	notebooks := c.useCase.Notebooks()
	options := make([]string, len(notebooks))
	c.notebookIDs = make([]string, len(notebooks))
	current := ""
	for i, nb := range notebooks {
		options[i] = fmt.Sprintf("%d. %s", i+1, nb.Label)
		c.notebookIDs[i] = nb.ID
		if hasSelection && nb.ID == selected.ID {
			current = options[i]
		}
	}
	c.notebookSelect.Options = options
	c.notebookSelect.Selected = current
	c.notebookSelect.Refresh()

	c.graph.Objects = nil
	if hasSelection {
		c.drawNotebook(selected.ID)
	}
	c.graph.Refresh()

	c.setEnabled(c.addNodeButton, hasSelection)
	c.setEnabled(c.connectButton, hasSelection)
	c.setEnabled(c.disconnectBtn, hasSelection)
	undoDepth, redoDepth := 0, 0
	if hasSelection {
		undoDepth, redoDepth = c.useCase.HistoryDepths(selected.ID)
	}
	c.setEnabled(c.undoButton, undoDepth > 0)
	c.setEnabled(c.redoButton, redoDepth > 0)
}

func (c *Canvas) setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

func (c *Canvas) drawNotebook(notebookID string) {
	nodes, err := c.useCase.Nodes(notebookID)
	if err != nil {
		c.showError("load nodes", err)
		return
	}
	conns, err := c.useCase.Connections(notebookID)
	if err != nil {
		c.showError("load connections", err)
		return
	}

	centers := make(map[string]fyne.Position, len(nodes))
	for _, n := range nodes {
		size := nodeSize(n)
		centers[n.ID] = fyne.NewPos(
			float32(n.Position.X)+size.Width/2,
			float32(n.Position.Y)+size.Height/2,
		)
	}

	for _, conn := range conns {
		from, ok1 := centers[conn.SourceNodeID]
		to, ok2 := centers[conn.TargetNodeID]
		if !ok1 || !ok2 {
			continue
		}
		line := canvas.NewLine(color.Black)
		line.Position1 = from
		line.Position2 = to
		line.StrokeWidth = 2
		c.graph.Add(line)
	}

	for _, n := range nodes {
		c.graph.Add(NewNodeWidget(n, c.moveNode, c.showEditNodeDialog))
	}
}

func (c *Canvas) onNotebookChanged(option string) {
	idx := indexOf(c.notebookSelect.Options, option)
	if idx < 0 {
		return
	}
	if err := c.useCase.SelectNotebook(c.notebookIDs[idx]); err != nil {
		c.showError("select notebook", err)
	}
	c.Refresh()
}

func (c *Canvas) moveNode(nodeID string, to domain.Position) {
	if _, err := c.useCase.MoveNode(nodeID, to); err != nil {
		c.showError("move node", err)
	}
	c.Refresh()
}

func (c *Canvas) undo() {
	c.step("undo", c.useCase.Undo)
}

func (c *Canvas) redo() {
	c.step("redo", c.useCase.Redo)
}

func (c *Canvas) step(name string, fn func(string) (bool, error)) {
	nb, ok := c.useCase.SelectedNotebook()
	if !ok {
		return
	}
	if _, err := fn(nb.ID); err != nil {
		c.showError(name, err)
	}
	c.Refresh()
}

func (c *Canvas) showError(op string, err error) {
	c.logger.Warn("canvas operation failed", zap.String("op", op), zap.Error(err))
	dialog.ShowError(err, c.window)
}

// Run opens the canvas window and blocks until it is closed.
func Run(uc *usecase.NotebookUseCase, logger *zap.Logger) {
	a := app.New()
	w := a.NewWindow("Brain Dump")
	w.Resize(fyne.NewSize(1000, 700))

	c := NewCanvas(uc, w, logger)
	w.SetContent(c.Content())
	w.ShowAndRun()
}

func indexOf(arr []string, val string) int {
	for i, v := range arr {
		if v == val {
			return i
		}
	}
	return -1
}
