package usecase

import (
	"context"

	"github.com/AndrivA89/brain-dump/internal/domain"
)

// StateRepository persists the whole notebook state. Last write wins.
// Load with an empty notebookID returns every notebook.
type StateRepository interface {
	Load(ctx context.Context, notebookID string) (*domain.NotebookState, error)
	Save(ctx context.Context, state *domain.NotebookState) error
}
