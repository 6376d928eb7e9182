package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/AndrivA89/brain-dump/internal/domain"
)

const noTagOption = "none"

var (
	nodeTypeOptions = []string{string(domain.TextNode), string(domain.CodeNode), string(domain.LinkNode)}
	nodeTagOptions  = []string{
		noTagOption,
		string(domain.TagIdea), string(domain.TagBug), string(domain.TagFollowup),
		string(domain.TagDecision), string(domain.TagNeutral),
	}
)

func tagFromOption(option string) domain.NodeTag {
	if option == noTagOption {
		return domain.NoTag
	}
	return domain.NodeTag(option)
}

func optionFromTag(tag domain.NodeTag) string {
	if tag == domain.NoTag {
		return noTagOption
	}
	return string(tag)
}

func (c *Canvas) showNewNotebookDialog() {
	labelEntry := widget.NewEntry()
	labelEntry.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("label is required")
		}
		return nil
	}
	colorEntry := widget.NewEntry()
	colorEntry.SetPlaceHolder("#336699")
	descEntry := widget.NewMultiLineEntry()

	formItems := []*widget.FormItem{
		widget.NewFormItem("Label", labelEntry),
		widget.NewFormItem("Color", colorEntry),
		widget.NewFormItem("Description", descEntry),
	}

	dialog.ShowForm("New Notebook", "Create", "Cancel", formItems, func(valid bool) {
		if !valid {
			return
		}
		nb, err := c.useCase.CreateNotebook(labelEntry.Text, colorEntry.Text, descEntry.Text)
		if err != nil {
			c.showError("create notebook", err)
			return
		}
		if err := c.useCase.SelectNotebook(nb.ID); err != nil {
			c.showError("select notebook", err)
		}
		c.Refresh()
	}, c.window)
}

func (c *Canvas) showAddNodeDialog() {
	nb, ok := c.useCase.SelectedNotebook()
	if !ok {
		return
	}

	contentEntry := widget.NewMultiLineEntry()
	typeSelect := widget.NewSelect(nodeTypeOptions, nil)
	typeSelect.SetSelected(string(domain.TextNode))
	tagSelect := widget.NewSelect(nodeTagOptions, nil)
	tagSelect.SetSelected(noTagOption)
	xEntry := widget.NewEntry()
	xEntry.SetText("50")
	yEntry := widget.NewEntry()
	yEntry.SetText("50")
	pinnedCheck := widget.NewCheck("", nil)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Content", contentEntry),
		widget.NewFormItem("Type", typeSelect),
		widget.NewFormItem("Tag", tagSelect),
		widget.NewFormItem("X", xEntry),
		widget.NewFormItem("Y", yEntry),
		widget.NewFormItem("Pinned", pinnedCheck),
	}

	dialog.ShowForm("Add Node", "Add", "Cancel", formItems, func(valid bool) {
		if !valid {
			return
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(xEntry.Text), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(yEntry.Text), 64)
		if err := errors.Join(errX, errY); err != nil {
			c.showError("add node", fmt.Errorf("invalid position: %w", err))
			return
		}
		_, err := c.useCase.AddNode(nb.ID, domain.NodeDraft{
			Type:     domain.NodeType(typeSelect.Selected),
			Content:  contentEntry.Text,
			Position: domain.Position{X: x, Y: y},
			Size:     domain.Size{Width: defaultNodeWidth, Height: defaultNodeHeight},
			Tag:      tagFromOption(tagSelect.Selected),
			Pinned:   pinnedCheck.Checked,
		})
		if err != nil {
			c.showError("add node", err)
		}
		c.Refresh()
	}, c.window)
}

// editPatch collects the fields of the edit form that differ from the node.
func editPatch(n domain.Node, content, nodeType, tagOption string, pinned bool) domain.NodePatch {
	var patch domain.NodePatch
	if content != n.Content {
		patch.Content = &content
	}
	if t := domain.NodeType(nodeType); t != n.Type {
		patch.Type = &t
	}
	if tag := tagFromOption(tagOption); tag != n.Tag {
		patch.Tag = &tag
	}
	if pinned != n.Pinned {
		patch.Pinned = &pinned
	}
	return patch
}

func (c *Canvas) showEditNodeDialog(n domain.Node) {
	var pop dialog.Dialog

	contentEntry := widget.NewMultiLineEntry()
	contentEntry.SetText(n.Content)
	typeSelect := widget.NewSelect(nodeTypeOptions, nil)
	typeSelect.SetSelected(string(n.Type))
	tagSelect := widget.NewSelect(nodeTagOptions, nil)
	tagSelect.SetSelected(optionFromTag(n.Tag))
	pinnedCheck := widget.NewCheck("", nil)
	pinnedCheck.SetChecked(n.Pinned)

	form := widget.NewForm(
		widget.NewFormItem("Content", contentEntry),
		widget.NewFormItem("Type", typeSelect),
		widget.NewFormItem("Tag", tagSelect),
		widget.NewFormItem("Pinned", pinnedCheck),
	)

	updateBtn := widget.NewButton("Update", func() {
		patch := editPatch(n, contentEntry.Text, typeSelect.Selected, tagSelect.Selected, pinnedCheck.Checked)
		if !patch.IsEmpty() {
			if _, err := c.useCase.EditNode(n.ID, patch); err != nil {
				c.showError("edit node", err)
				return
			}
		}
		pop.Hide()
		c.Refresh()
	})

	deleteBtn := widget.NewButton("Delete", func() {
		dialog.ShowConfirm("Delete Node", "Delete this node and its connections?", func(confirm bool) {
			if !confirm {
				return
			}
			if err := c.useCase.DeleteNode(n.ID); err != nil {
				c.showError("delete node", err)
			}
			pop.Hide()
			c.Refresh()
		}, c.window)
	})

	cancelBtn := widget.NewButton("Cancel", func() {
		pop.Hide()
	})

	btnBar := container.New(layout.NewGridLayoutWithColumns(3), updateBtn, deleteBtn, cancelBtn)
	pop = dialog.NewCustomWithoutButtons("Edit Node", container.NewVBox(form, btnBar), c.window)
	pop.Show()
}

func nodeOptions(nodes []domain.Node) []string {
	options := make([]string, len(nodes))
	for i, n := range nodes {
		content := []rune(n.Content)
		if len(content) > 30 {
			content = append(content[:30], []rune("...")...)
		}
		options[i] = fmt.Sprintf("[%d] %s", i, string(content))
	}
	return options
}

func (c *Canvas) showConnectDialog() {
	nb, ok := c.useCase.SelectedNotebook()
	if !ok {
		return
	}
	nodes, err := c.useCase.Nodes(nb.ID)
	if err != nil {
		c.showError("connect nodes", err)
		return
	}
	if len(nodes) < 2 {
		dialog.ShowInformation("Not enough nodes", "A connection needs two nodes", c.window)
		return
	}

	options := nodeOptions(nodes)
	sourceSelect := widget.NewSelect(options, nil)
	sourceSelect.SetSelected(options[0])
	targetSelect := widget.NewSelect(options, nil)
	targetSelect.SetSelected(options[1])

	formItems := []*widget.FormItem{
		widget.NewFormItem("Source", sourceSelect),
		widget.NewFormItem("Target", targetSelect),
	}

	dialog.ShowForm("Connect Nodes", "Connect", "Cancel", formItems, func(valid bool) {
		if !valid {
			return
		}
		src := indexOf(options, sourceSelect.Selected)
		dst := indexOf(options, targetSelect.Selected)
		if src < 0 || dst < 0 {
			return
		}
		if _, err := c.useCase.ConnectNodes(nodes[src].ID, nodes[dst].ID); err != nil {
			c.showError("connect nodes", err)
		}
		c.Refresh()
	}, c.window)
}

func (c *Canvas) showDisconnectDialog() {
	nb, ok := c.useCase.SelectedNotebook()
	if !ok {
		return
	}
	conns, err := c.useCase.Connections(nb.ID)
	if err != nil {
		c.showError("disconnect nodes", err)
		return
	}
	if len(conns) == 0 {
		dialog.ShowInformation("No connections", "No connections to remove", c.window)
		return
	}
	nodes, err := c.useCase.Nodes(nb.ID)
	if err != nil {
		c.showError("disconnect nodes", err)
		return
	}
	names := make(map[string]string, len(nodes))
	for i, option := range nodeOptions(nodes) {
		names[nodes[i].ID] = option
	}

	options := make([]string, len(conns))
	for i, conn := range conns {
		options[i] = fmt.Sprintf("%d: %s -> %s", i, names[conn.SourceNodeID], names[conn.TargetNodeID])
	}
	connSelect := widget.NewSelect(options, nil)
	connSelect.SetSelected(options[0])

	formItems := []*widget.FormItem{
		widget.NewFormItem("Connection", connSelect),
	}

	dialog.ShowForm("Disconnect Nodes", "Delete", "Cancel", formItems, func(valid bool) {
		if !valid {
			return
		}
		idx := indexOf(options, connSelect.Selected)
		if idx < 0 {
			return
		}
		if err := c.useCase.DisconnectNodes(conns[idx].ID); err != nil {
			c.showError("disconnect nodes", err)
		}
		c.Refresh()
	}, c.window)
}
