package domain

import "time"

// Connection is a directed edge between two nodes of the same notebook.
type Connection struct {
	ID           string    `json:"id" yaml:"id"`
	NotebookID   string    `json:"notebook_id" yaml:"notebook_id"`
	SourceNodeID string    `json:"source_node_id" yaml:"source_node_id"`
	TargetNodeID string    `json:"target_node_id" yaml:"target_node_id"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

func (c Connection) Touches(nodeID string) bool {
	return c.SourceNodeID == nodeID || c.TargetNodeID == nodeID
}
