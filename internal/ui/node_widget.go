package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/AndrivA89/brain-dump/internal/domain"
)

const (
	defaultNodeWidth  = 160
	defaultNodeHeight = 40
)

var tagColors = map[domain.NodeTag]color.Color{
	domain.NoTag:       color.RGBA{R: 0x3a, G: 0x5b, B: 0xa0, A: 0xff},
	domain.TagIdea:     color.RGBA{R: 0xf2, G: 0xb1, B: 0x34, A: 0xff},
	domain.TagBug:      color.RGBA{R: 0xd6, G: 0x45, B: 0x45, A: 0xff},
	domain.TagFollowup: color.RGBA{R: 0x4a, G: 0x9d, B: 0xd9, A: 0xff},
	domain.TagDecision: color.RGBA{R: 0x3f, G: 0xa3, B: 0x6b, A: 0xff},
	domain.TagNeutral:  color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
}

// NodeWidget draws one node at its stored position and reports drags and taps.
type NodeWidget struct {
	widget.BaseWidget
	Node     domain.Node
	OnMoved  func(nodeID string, to domain.Position)
	OnTapped func(node domain.Node)

	dragStart fyne.Position
	dragging  bool
}

func NewNodeWidget(n domain.Node, onMoved func(string, domain.Position), onTapped func(domain.Node)) *NodeWidget {
	nw := &NodeWidget{
		Node:     n,
		OnMoved:  onMoved,
		OnTapped: onTapped,
	}
	nw.ExtendBaseWidget(nw)
	nw.Move(fyne.NewPos(float32(n.Position.X), float32(n.Position.Y)))
	nw.Resize(nodeSize(n))
	return nw
}

func nodeSize(n domain.Node) fyne.Size {
	w, h := float32(n.Size.Width), float32(n.Size.Height)
	if w <= 0 {
		w = defaultNodeWidth
	}
	if h <= 0 {
		h = defaultNodeHeight
	}
	return fyne.NewSize(w, h)
}

func (nw *NodeWidget) CreateRenderer() fyne.WidgetRenderer {
	fill, ok := tagColors[nw.Node.Tag]
	if !ok {
		fill = tagColors[domain.NoTag]
	}
	box := canvas.NewRectangle(fill)
	box.StrokeWidth = 2
	box.StrokeColor = color.White
	box.CornerRadius = 6
	if nw.Node.Pinned {
		box.StrokeColor = color.Black
		box.StrokeWidth = 3
	}

	text := nw.Node.Content
	if nw.Node.Type != domain.TextNode {
		text = "[" + string(nw.Node.Type) + "] " + text
	}
	label := widget.NewLabel(text)
	label.Truncation = fyne.TextTruncateEllipsis

	return &nodeWidgetRenderer{box: box, label: label, objects: []fyne.CanvasObject{box, label}}
}

type nodeWidgetRenderer struct {
	box     *canvas.Rectangle
	label   *widget.Label
	objects []fyne.CanvasObject
}

func (r *nodeWidgetRenderer) Layout(size fyne.Size) {
	r.box.Resize(size)
	r.box.Move(fyne.NewPos(0, 0))
	r.label.Resize(size)
	r.label.Move(fyne.NewPos(0, 0))
}

func (r *nodeWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(40, 20)
}

func (r *nodeWidgetRenderer) Refresh() {
	for _, obj := range r.objects {
		obj.Refresh()
	}
}

func (r *nodeWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *nodeWidgetRenderer) Destroy() {}

func (nw *NodeWidget) Tapped(_ *fyne.PointEvent) {
	if nw.OnTapped != nil {
		nw.OnTapped(nw.Node)
	}
}

func (nw *NodeWidget) TappedSecondary(_ *fyne.PointEvent) {}

func (nw *NodeWidget) Dragged(ev *fyne.DragEvent) {
	if !nw.dragging {
		nw.dragging = true
		nw.dragStart = nw.Position()
	}
	nw.Move(nw.Position().Add(ev.Dragged))
}

// DragEnd commits the new position once the pointer is released.
func (nw *NodeWidget) DragEnd() {
	if !nw.dragging {
		return
	}
	nw.dragging = false

	pos := nw.Position()
	if pos == nw.dragStart || nw.OnMoved == nil {
		return
	}
	nw.OnMoved(nw.Node.ID, domain.Position{X: float64(pos.X), Y: float64(pos.Y)})
}
