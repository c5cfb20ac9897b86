package ingest

import "context"

// walkerState tracks where a pagination walker is in its loop. Both
// walkers step fetching -> processing -> advancing until something
// terminates them: an exhausted bound, a 404 on the catalog index, or
// context cancellation.
type walkerState int

const (
	stateFetching walkerState = iota
	stateProcessing
	stateAdvancing
	stateTerminated
)

// walker is one bounded pass over a paged upstream resource.
type walker interface {
	run(ctx context.Context, sum *Summary) error
}
