package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/AndrivA89/brain-dump/internal/domain"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// notebookLister is the part of the use case the summary needs.
type notebookLister interface {
	Notebooks() []domain.Notebook
	SelectedNotebook() (domain.Notebook, bool)
	Nodes(notebookID string) ([]domain.Node, error)
	Connections(notebookID string) ([]domain.Connection, error)
	HistoryDepths(notebookID string) (undo, redo int)
}

func writeSummary(w io.Writer, uc notebookLister) error {
	selected, _ := uc.SelectedNotebook()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tLABEL\tNODES\tCONNECTIONS\tUNDO\tREDO")
	for _, nb := range uc.Notebooks() {
		nodes, err := uc.Nodes(nb.ID)
		if err != nil {
			return err
		}
		conns, err := uc.Connections(nb.ID)
		if err != nil {
			return err
		}
		undo, redo := uc.HistoryDepths(nb.ID)

		marker := ""
		if nb.ID == selected.ID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			marker, nb.ID, nb.Label, len(nodes), len(conns), undo, redo)
	}
	return tw.Flush()
}

// exportState narrows state to one notebook when notebookID is set.
func exportState(state domain.NotebookState, notebookID string) (domain.NotebookState, error) {
	if notebookID == "" {
		return state, nil
	}
	only := state.Only(notebookID)
	if len(only.Notebooks) == 0 {
		return domain.NotebookState{}, domain.NewNotFound("notebook %s", notebookID)
	}
	return only, nil
}

func writeExport(w io.Writer, state domain.NotebookState, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(state); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
