// Package store keeps notebooks, nodes and connections in memory.
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/AndrivA89/brain-dump/internal/domain"
)

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// SystemClock reports wall time at millisecond precision in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.UnixMilli(time.Now().UnixMilli()).UTC()
}

type Store struct {
	ids   IDGenerator
	clock Clock

	notebooks   map[string]domain.Notebook
	nodes       map[string]domain.Node
	connections map[string]domain.Connection
}

func New(ids IDGenerator, clock Clock) *Store {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Store{
		ids:         ids,
		clock:       clock,
		notebooks:   make(map[string]domain.Notebook),
		nodes:       make(map[string]domain.Node),
		connections: make(map[string]domain.Connection),
	}
}

func (s *Store) Now() time.Time {
	return s.clock.Now()
}
