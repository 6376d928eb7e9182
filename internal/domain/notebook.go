package domain

import "time"

type Notebook struct {
	ID          string    `json:"id" yaml:"id"`
	Label       string    `json:"label" yaml:"label"`
	Color       string    `json:"color,omitempty" yaml:"color,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

type NotebookPatch struct {
	Label       *string
	Color       *string
	Description *string
}

func (p NotebookPatch) IsEmpty() bool {
	return p.Label == nil && p.Color == nil && p.Description == nil
}
