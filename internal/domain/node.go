package domain

import (
	"time"
)

type NodeType string

const (
	TextNode NodeType = "text"
	CodeNode NodeType = "code"
	LinkNode NodeType = "link"
)

type NodeTag string

const (
	NoTag       NodeTag = ""
	TagIdea     NodeTag = "idea"
	TagBug      NodeTag = "bug"
	TagFollowup NodeTag = "followup"
	TagDecision NodeTag = "decision"
	TagNeutral  NodeTag = "neutral"
)

// Valid reports whether t is a known tag. NoTag is valid and clears the tag.
func (t NodeTag) Valid() bool {
	switch t {
	case NoTag, TagIdea, TagBug, TagFollowup, TagDecision, TagNeutral:
		return true
	}
	return false
}

type Position struct {
	X float64 `json:"x" yaml:"x" validate:"finite"`
	Y float64 `json:"y" yaml:"y" validate:"finite"`
}

type Size struct {
	Width  float64 `json:"width" yaml:"width" validate:"finite,gte=0"`
	Height float64 `json:"height" yaml:"height" validate:"finite,gte=0"`
}

type Node struct {
	ID         string    `json:"id" yaml:"id"`
	NotebookID string    `json:"notebook_id" yaml:"notebook_id"`
	Type       NodeType  `json:"type" yaml:"type"`
	Content    string    `json:"content" yaml:"content"`
	Position   Position  `json:"position" yaml:"position"`
	Size       Size      `json:"size" yaml:"size"`
	Tag        NodeTag   `json:"tag,omitempty" yaml:"tag,omitempty"`
	Pinned     bool      `json:"pinned" yaml:"pinned"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"updated_at"`
}

// NodeDraft is the caller-supplied part of a new node.
type NodeDraft struct {
	Type     NodeType `validate:"required,oneof=text code link"`
	Content  string
	Position Position
	Size     Size
	Tag      NodeTag `validate:"omitempty,oneof=idea bug followup decision neutral"`
	Pinned   bool
}

// NodePatch carries the fields an edit changes; nil fields are left alone.
type NodePatch struct {
	Type    *NodeType `validate:"omitempty,oneof=text code link"`
	Content *string
	Size    *Size
	Tag     *NodeTag
	Pinned  *bool
}

func (p NodePatch) IsEmpty() bool {
	return p.Type == nil && p.Content == nil && p.Size == nil && p.Tag == nil && p.Pinned == nil
}

// Apply returns n with the patch applied. UpdatedAt is left to the caller.
func (p NodePatch) Apply(n Node) Node {
	if p.Type != nil {
		n.Type = *p.Type
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Size != nil {
		n.Size = *p.Size
	}
	if p.Tag != nil {
		n.Tag = *p.Tag
	}
	if p.Pinned != nil {
		n.Pinned = *p.Pinned
	}
	return n
}
