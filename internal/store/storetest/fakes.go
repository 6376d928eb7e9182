// Package storetest has deterministic id and clock fakes for tests.
package storetest

import (
	"fmt"
	"time"
)

type SequenceIDs struct {
	Prefix string
	next   int
}

func (g *SequenceIDs) NewID() string {
	g.next++
	return fmt.Sprintf("%s%d", g.Prefix, g.next)
}

// StepClock advances by Step on every call, starting at Start.
type StepClock struct {
	Start time.Time
	Step  time.Duration
	calls int
}

func NewStepClock() *StepClock {
	return &StepClock{
		Start: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Step:  time.Millisecond,
	}
}

func (c *StepClock) Now() time.Time {
	t := c.Start.Add(time.Duration(c.calls) * c.Step)
	c.calls++
	return t
}
