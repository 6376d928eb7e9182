package domain

// NotebookState is the aggregate handed to persistence and rendering.
type NotebookState struct {
	Notebooks          []Notebook          `json:"notebooks" yaml:"notebooks"`
	Nodes              []Node              `json:"nodes" yaml:"nodes"`
	Connections        []Connection        `json:"connections" yaml:"connections"`
	SelectedNotebookID string              `json:"selected_notebook_id,omitempty" yaml:"selected_notebook_id,omitempty"`
	UndoStacks         map[string][]Action `json:"undo_stacks" yaml:"undo_stacks"`
	RedoStacks         map[string][]Action `json:"redo_stacks" yaml:"redo_stacks"`
}

// Only returns the part of the state owned by a single notebook.
func (s NotebookState) Only(notebookID string) NotebookState {
	out := NotebookState{
		UndoStacks: map[string][]Action{},
		RedoStacks: map[string][]Action{},
	}
	for _, nb := range s.Notebooks {
		if nb.ID == notebookID {
			out.Notebooks = append(out.Notebooks, nb)
		}
	}
	for _, n := range s.Nodes {
		if n.NotebookID == notebookID {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, c := range s.Connections {
		if c.NotebookID == notebookID {
			out.Connections = append(out.Connections, c)
		}
	}
	if stack, ok := s.UndoStacks[notebookID]; ok {
		out.UndoStacks[notebookID] = stack
	}
	if stack, ok := s.RedoStacks[notebookID]; ok {
		out.RedoStacks[notebookID] = stack
	}
	if s.SelectedNotebookID == notebookID {
		out.SelectedNotebookID = notebookID
	}
	return out
}
